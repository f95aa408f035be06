package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/warehouse-ledger/internal/domain"
	"github.com/tu-usuario/warehouse-ledger/internal/domain/entity"
	"github.com/tu-usuario/warehouse-ledger/internal/domain/repository"
	"github.com/tu-usuario/warehouse-ledger/pkg/logger"
)

// AdjustmentUseCase flujo de conciliación por conteo físico:
// create (solo metadata) -> approve/reject (mutación atómica + auditoría).
type AdjustmentUseCase struct {
	txRunner       TxRunner
	adjustmentRepo repository.AdjustmentRequestRepository // atado al pool, para create/listados
	stockRepo      repository.StockLineRepository         // atado al pool, para el snapshot en create
	productRepo    repository.ProductRepository
	locationRepo   repository.LocationRepository
	tolerance      int64
	log            *logger.Logger
}

// NewAdjustmentUseCase construye el caso de uso. tolerance es la diferencia
// absoluta a partir de la cual una solicitud queda flagged (0 = deshabilitado).
func NewAdjustmentUseCase(
	txRunner TxRunner,
	adjustmentRepo repository.AdjustmentRequestRepository,
	stockRepo repository.StockLineRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	tolerance int64,
	log *logger.Logger,
) *AdjustmentUseCase {
	return &AdjustmentUseCase{
		txRunner:       txRunner,
		adjustmentRepo: adjustmentRepo,
		stockRepo:      stockRepo,
		productRepo:    productRepo,
		locationRepo:   locationRepo,
		tolerance:      tolerance,
		log:            log,
	}
}

// CreateAdjustmentInput entrada para crear una solicitud de ajuste.
type CreateAdjustmentInput struct {
	ProductID        string
	LocationID       string
	PhysicalQuantity int64
	Reason           string
	AttachmentURL    string
}

// Create registra la solicitud en pending: toma el snapshot del stock actual
// como system_quantity, calcula el delta y marca flagged si supera la
// tolerancia. No toca el ledger.
func (uc *AdjustmentUseCase) Create(ctx context.Context, in CreateAdjustmentInput, actor entity.Actor) (*entity.AdjustmentRequest, error) {
	if !actor.CanOperate() {
		return nil, domain.ErrForbidden
	}
	if in.ProductID == "" || in.LocationID == "" || in.Reason == "" {
		return nil, domain.ErrValidation
	}
	if in.PhysicalQuantity < 0 {
		return nil, domain.ErrValidation
	}
	if _, err := uc.productRepo.GetByID(in.ProductID); err != nil {
		return nil, catalogAsValidation(err, "producto", in.ProductID)
	}
	if _, err := uc.locationRepo.GetByID(in.LocationID); err != nil {
		return nil, catalogAsValidation(err, "ubicación", in.LocationID)
	}

	line, err := uc.stockRepo.Get(in.ProductID, in.LocationID)
	if err != nil {
		return nil, err
	}
	systemQty := line.Quantity
	delta := in.PhysicalQuantity - systemQty

	req := &entity.AdjustmentRequest{
		ID:               uuid.New().String(),
		ProductID:        in.ProductID,
		LocationID:       in.LocationID,
		SystemQuantity:   systemQty,
		PhysicalQuantity: in.PhysicalQuantity,
		Delta:            delta,
		Reason:           in.Reason,
		AttachmentURL:    in.AttachmentURL,
		Status:           entity.StatusPending,
		Flagged:          uc.exceedsTolerance(delta),
		CreatedBy:        actor.ID,
		CreatedAt:        time.Now(),
	}
	if err := uc.adjustmentRepo.Create(req); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("adjustment_id", req.ID).
		Str("product_id", req.ProductID).
		Int64("delta", req.Delta).
		Bool("flagged", req.Flagged).
		Msg("solicitud de ajuste creada")
	return req, nil
}

// Approve aplica el ajuste en una sola transacción: CAS pending->approved,
// bloqueo de la fila de stock, delta sobre la cantidad actual y un registro
// de auditoría. Si el stock cambió desde la creación, la solicitud queda
// force-flagged y la divergencia documentada, en vez de escribir a ciegas el
// valor absoluto desactualizado.
func (uc *AdjustmentUseCase) Approve(ctx context.Context, id string, actor entity.Actor, comment string) (*entity.AdjustmentRequest, error) {
	if !actor.CanApprove() {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	var result *entity.AdjustmentRequest
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockLineRepository,
		auditRepo repository.AuditRecordRepository,
		adjustmentRepo repository.AdjustmentRequestRepository,
		_ repository.InternalTransferRepository,
	) error {
		req, err := adjustmentRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if !req.IsPending() {
			return domain.ErrInvalidState
		}

		prev, newQty, err := applyDelta(stockRepo, req.ProductID, req.LocationID, req.Delta, now)
		if err != nil {
			return err
		}

		observations := req.Reason
		flagged := req.Flagged
		if prev != req.SystemQuantity {
			// El stock se movió entre la creación y la aprobación: se aplica
			// el delta sobre la cantidad actual y se deja rastro explícito.
			flagged = true
			observations = fmt.Sprintf("%s | stock divergió del snapshot: %d ahora, %d al crear",
				observations, prev, req.SystemQuantity)
		}
		if comment != "" {
			observations = observations + " | " + comment
		}

		rec := newAuditRecord(req.ProductID, req.LocationID, actor.ID, entity.MovementAdjustment,
			req.Delta, prev, newQty, observations, now)
		if err := auditRepo.Create(rec); err != nil {
			return err
		}

		ok, err := adjustmentRepo.Resolve(id, entity.StatusApproved, actor.ID, comment, now, flagged)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidState
		}

		result = req
		result.Status = entity.StatusApproved
		result.Flagged = flagged
		result.ProcessedBy = &actor.ID
		result.ProcessedAt = &now
		result.ResolutionComment = comment
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("adjustment_id", id).
		Str("actor", actor.ID).
		Msg("ajuste aprobado")
	return result, nil
}

// Reject descarta la solicitud sin mutar el ledger. Deja igualmente un
// registro de auditoría con previous_stock = new_stock (trazabilidad sobre
// optimización de no-escritura).
func (uc *AdjustmentUseCase) Reject(ctx context.Context, id string, actor entity.Actor, reason string) (*entity.AdjustmentRequest, error) {
	if !actor.CanApprove() {
		return nil, domain.ErrForbidden
	}
	if reason == "" {
		return nil, domain.ErrValidation
	}

	now := time.Now()
	var result *entity.AdjustmentRequest
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockLineRepository,
		auditRepo repository.AuditRecordRepository,
		adjustmentRepo repository.AdjustmentRequestRepository,
		_ repository.InternalTransferRepository,
	) error {
		req, err := adjustmentRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if !req.IsPending() {
			return domain.ErrInvalidState
		}

		line, err := stockRepo.Get(req.ProductID, req.LocationID)
		if err != nil {
			return err
		}

		rec := newAuditRecord(req.ProductID, req.LocationID, actor.ID, entity.MovementRejection,
			0, line.Quantity, line.Quantity, reason, now)
		if err := auditRepo.Create(rec); err != nil {
			return err
		}

		ok, err := adjustmentRepo.Resolve(id, entity.StatusRejected, actor.ID, reason, now, req.Flagged)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidState
		}

		result = req
		result.Status = entity.StatusRejected
		result.ProcessedBy = &actor.ID
		result.ProcessedAt = &now
		result.ResolutionComment = reason
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("adjustment_id", id).
		Str("actor", actor.ID).
		Msg("ajuste rechazado")
	return result, nil
}

// GetByID devuelve la solicitud o ErrNotFound.
func (uc *AdjustmentUseCase) GetByID(ctx context.Context, id string) (*entity.AdjustmentRequest, error) {
	req, err := uc.adjustmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	return req, nil
}

// List devuelve las solicitudes según los filtros.
func (uc *AdjustmentUseCase) List(ctx context.Context, filter repository.AdjustmentFilter) ([]*entity.AdjustmentRequest, error) {
	return uc.adjustmentRepo.List(filter)
}

func (uc *AdjustmentUseCase) exceedsTolerance(delta int64) bool {
	if uc.tolerance <= 0 {
		return false
	}
	if delta < 0 {
		delta = -delta
	}
	return delta > uc.tolerance
}
