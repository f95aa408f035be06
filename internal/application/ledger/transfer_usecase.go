package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/warehouse-ledger/internal/domain"
	"github.com/tu-usuario/warehouse-ledger/internal/domain/entity"
	"github.com/tu-usuario/warehouse-ledger/internal/domain/repository"
	"github.com/tu-usuario/warehouse-ledger/pkg/logger"
)

// TransferUseCase flujo de traslados internos entre dos ubicaciones.
// Estructuralmente igual al de ajustes, pero la aprobación muta dos filas del
// ledger en la misma transacción: el modo de fallo que este código existe
// para impedir es que el stock salga del origen y nunca llegue al destino.
type TransferUseCase struct {
	txRunner     TxRunner
	transferRepo repository.InternalTransferRepository // atado al pool, para create/listados
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	log          *logger.Logger
}

// NewTransferUseCase construye el caso de uso de traslados.
func NewTransferUseCase(
	txRunner TxRunner,
	transferRepo repository.InternalTransferRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	log *logger.Logger,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:     txRunner,
		transferRepo: transferRepo,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		log:          log,
	}
}

// CreateTransferInput entrada para crear un traslado interno.
type CreateTransferInput struct {
	ProductID             string
	Quantity              int64
	OriginLocationID      string
	DestinationLocationID string
	Reason                string
}

// Create registra el traslado en pending. La disponibilidad NO se valida aquí:
// se re-verifica al aprobar para evitar decidir sobre un snapshot viejo.
func (uc *TransferUseCase) Create(ctx context.Context, in CreateTransferInput, actor entity.Actor) (*entity.InternalTransfer, error) {
	if !actor.CanOperate() {
		return nil, domain.ErrForbidden
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrValidation
	}
	if in.ProductID == "" || in.OriginLocationID == "" || in.DestinationLocationID == "" {
		return nil, domain.ErrValidation
	}
	if in.OriginLocationID == in.DestinationLocationID {
		return nil, domain.ErrValidation
	}

	if _, err := uc.productRepo.GetByID(in.ProductID); err != nil {
		return nil, catalogAsValidation(err, "producto", in.ProductID)
	}
	origin, err := uc.locationRepo.GetByID(in.OriginLocationID)
	if err != nil {
		return nil, catalogAsValidation(err, "ubicación origen", in.OriginLocationID)
	}
	destination, err := uc.locationRepo.GetByID(in.DestinationLocationID)
	if err != nil {
		return nil, catalogAsValidation(err, "ubicación destino", in.DestinationLocationID)
	}
	if !origin.IsActive || !destination.IsActive {
		return nil, domain.ErrValidation
	}

	tr := &entity.InternalTransfer{
		ID:                    uuid.New().String(),
		ProductID:             in.ProductID,
		Quantity:              in.Quantity,
		OriginLocationID:      in.OriginLocationID,
		DestinationLocationID: in.DestinationLocationID,
		Reason:                in.Reason,
		Status:                entity.StatusPending,
		CreatedBy:             actor.ID,
		CreatedAt:             time.Now(),
	}
	if err := uc.transferRepo.Create(tr); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("transfer_id", tr.ID).
		Str("product_id", tr.ProductID).
		Int64("quantity", tr.Quantity).
		Msg("traslado interno creado")
	return tr, nil
}

// Approve ejecuta el traslado en una sola transacción: bloquea las filas de
// origen y destino en orden lexicográfico de ubicación (mismo orden para
// cualquier par, así traslados opuestos no se bloquean en cruz), verifica
// disponibilidad y capacidad, aplica
// -cantidad/+cantidad y escribe los dos registros de auditoría
// (transfer-out y transfer-in). Si el origen no alcanza, toda la operación
// aborta con ErrInsufficientStock y el traslado sigue pending.
func (uc *TransferUseCase) Approve(ctx context.Context, id string, actor entity.Actor, comment string) (*entity.InternalTransfer, error) {
	if !actor.CanApprove() {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	var result *entity.InternalTransfer
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockLineRepository,
		auditRepo repository.AuditRecordRepository,
		_ repository.AdjustmentRequestRepository,
		transferRepo repository.InternalTransferRepository,
	) error {
		tr, err := transferRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if tr == nil {
			return domain.ErrNotFound
		}
		if !tr.IsPending() {
			return domain.ErrInvalidState
		}

		destination, err := uc.locationRepo.GetByID(tr.DestinationLocationID)
		if err != nil {
			return err
		}
		if destination == nil {
			return domain.ErrNotFound
		}

		// Bloquea las dos filas de stock en orden lexicográfico de ubicación:
		// traslados opuestos concurrentes (A->B y B->A) toman los locks en el
		// mismo orden y no se esperan en cruz.
		first, second := tr.OriginLocationID, tr.DestinationLocationID
		if second < first {
			first, second = second, first
		}
		if _, err := stockRepo.GetForUpdate(tr.ProductID, first); err != nil {
			return err
		}
		if _, err := stockRepo.GetForUpdate(tr.ProductID, second); err != nil {
			return err
		}

		originPrev, originNew, err := applyDelta(stockRepo, tr.ProductID, tr.OriginLocationID, -tr.Quantity, now)
		if err != nil {
			return err
		}

		if err := checkCapacity(stockRepo, destination, tr.Quantity); err != nil {
			return err
		}
		destPrev, destNew, err := applyDelta(stockRepo, tr.ProductID, tr.DestinationLocationID, tr.Quantity, now)
		if err != nil {
			return err
		}

		observations := tr.Reason
		if comment != "" {
			observations = observations + " | " + comment
		}
		outRec := newAuditRecord(tr.ProductID, tr.OriginLocationID, actor.ID, entity.MovementTransferOut,
			tr.Quantity, originPrev, originNew, observations, now)
		if err := auditRepo.Create(outRec); err != nil {
			return err
		}
		inRec := newAuditRecord(tr.ProductID, tr.DestinationLocationID, actor.ID, entity.MovementTransferIn,
			tr.Quantity, destPrev, destNew, observations, now)
		if err := auditRepo.Create(inRec); err != nil {
			return err
		}

		ok, err := transferRepo.Resolve(id, entity.StatusApproved, actor.ID, comment, now)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidState
		}

		result = tr
		result.Status = entity.StatusApproved
		result.ProcessedBy = &actor.ID
		result.ProcessedAt = &now
		result.ResolutionComment = comment
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("transfer_id", id).
		Str("actor", actor.ID).
		Msg("traslado aprobado")
	return result, nil
}

// Reject descarta el traslado sin mutar el ledger; queda un registro de
// auditoría de rechazo en el origen.
func (uc *TransferUseCase) Reject(ctx context.Context, id string, actor entity.Actor, reason string) (*entity.InternalTransfer, error) {
	if !actor.CanApprove() {
		return nil, domain.ErrForbidden
	}
	if reason == "" {
		return nil, domain.ErrValidation
	}

	now := time.Now()
	var result *entity.InternalTransfer
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockLineRepository,
		auditRepo repository.AuditRecordRepository,
		_ repository.AdjustmentRequestRepository,
		transferRepo repository.InternalTransferRepository,
	) error {
		tr, err := transferRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if tr == nil {
			return domain.ErrNotFound
		}
		if !tr.IsPending() {
			return domain.ErrInvalidState
		}

		line, err := stockRepo.Get(tr.ProductID, tr.OriginLocationID)
		if err != nil {
			return err
		}

		rec := newAuditRecord(tr.ProductID, tr.OriginLocationID, actor.ID, entity.MovementRejection,
			0, line.Quantity, line.Quantity, reason, now)
		if err := auditRepo.Create(rec); err != nil {
			return err
		}

		ok, err := transferRepo.Resolve(id, entity.StatusRejected, actor.ID, reason, now)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidState
		}

		result = tr
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
		Str("transfer_id", id).
		Str("actor", actor.ID).
		Msg("traslado rechazado")
	return result, nil
}

// GetByID devuelve el traslado o ErrNotFound.
func (uc *TransferUseCase) GetByID(ctx context.Context, id string) (*entity.InternalTransfer, error) {
	tr, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tr == nil {
		return nil, domain.ErrNotFound
	}
	return tr, nil
}

// List devuelve los traslados según los filtros.
func (uc *TransferUseCase) List(ctx context.Context, filter repository.TransferFilter) ([]*entity.InternalTransfer, error) {
	return uc.transferRepo.List(filter)
}
