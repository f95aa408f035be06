package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/warehouse-ledger/internal/domain"
	"github.com/tu-usuario/warehouse-ledger/internal/domain/entity"
	"github.com/tu-usuario/warehouse-ledger/internal/domain/repository"
	"github.com/tu-usuario/warehouse-ledger/pkg/logger"
)

// Engine registra entradas y salidas directas de mercancía de forma
// transaccional, con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
// Es el único escritor de StockLine junto con los flujos de ajuste y traslado,
// que comparten sus primitivas.
type Engine struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	log          *logger.Logger
}

// NewEngine construye el motor de entradas/salidas.
func NewEngine(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	log *logger.Logger,
) *Engine {
	return &Engine{
		txRunner:     txRunner,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		log:          log,
	}
}

// MovementInput entrada para registrar un ingreso o egreso directo.
type MovementInput struct {
	ProductID    string
	LocationID   string
	Quantity     int64 // siempre > 0; el signo lo decide la operación
	Observations string
}

// RegisterIngress suma stock en una ubicación: bloquea (o crea) la fila,
// verifica capacidad de la ubicación y escribe el registro de auditoría en la
// misma transacción.
func (e *Engine) RegisterIngress(ctx context.Context, in MovementInput, actor entity.Actor) (*entity.AuditRecord, error) {
	loc, err := e.validateMovement(in, actor)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var rec *entity.AuditRecord
	err = e.txRunner.Run(ctx, func(
		stockRepo repository.StockLineRepository,
		auditRepo repository.AuditRecordRepository,
		_ repository.AdjustmentRequestRepository,
		_ repository.InternalTransferRepository,
	) error {
		if err := checkCapacity(stockRepo, loc, in.Quantity); err != nil {
			return err
		}
		prev, newQty, err := applyDelta(stockRepo, in.ProductID, in.LocationID, in.Quantity, now)
		if err != nil {
			return err
		}
		rec = newAuditRecord(in.ProductID, in.LocationID, actor.ID, entity.MovementIngress,
			in.Quantity, prev, newQty, in.Observations, now)
		return auditRepo.Create(rec)
	})
	if err != nil {
		return nil, err
	}
	e.log.Info().
		Str("product_id", in.ProductID).
		Str("location_id", in.LocationID).
		Int64("quantity", in.Quantity).
		Str("actor", actor.ID).
		Msg("ingreso registrado")
	return rec, nil
}

// RegisterEgress resta stock en una ubicación. Falla con ErrInsufficientStock
// si la cantidad resultante sería negativa, dejando el estado intacto.
func (e *Engine) RegisterEgress(ctx context.Context, in MovementInput, actor entity.Actor) (*entity.AuditRecord, error) {
	if _, err := e.validateMovement(in, actor); err != nil {
		return nil, err
	}

	now := time.Now()
	var rec *entity.AuditRecord
	err := e.txRunner.Run(ctx, func(
		stockRepo repository.StockLineRepository,
		auditRepo repository.AuditRecordRepository,
		_ repository.AdjustmentRequestRepository,
		_ repository.InternalTransferRepository,
	) error {
		prev, newQty, err := applyDelta(stockRepo, in.ProductID, in.LocationID, -in.Quantity, now)
		if err != nil {
			return err
		}
		rec = newAuditRecord(in.ProductID, in.LocationID, actor.ID, entity.MovementEgress,
			in.Quantity, prev, newQty, in.Observations, now)
		return auditRepo.Create(rec)
	})
	if err != nil {
		return nil, err
	}
	e.log.Info().
		Str("product_id", in.ProductID).
		Str("location_id", in.LocationID).
		Int64("quantity", in.Quantity).
		Str("actor", actor.ID).
		Msg("egreso registrado")
	return rec, nil
}

// validateMovement valida actor, cantidad y existencia de producto/ubicación.
func (e *Engine) validateMovement(in MovementInput, actor entity.Actor) (*entity.Location, error) {
	if !actor.CanOperate() {
		return nil, domain.ErrForbidden
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrValidation
	}
	if in.ProductID == "" || in.LocationID == "" {
		return nil, domain.ErrValidation
	}
	if _, err := e.productRepo.GetByID(in.ProductID); err != nil {
		return nil, err
	}
	loc, err := e.locationRepo.GetByID(in.LocationID)
	if err != nil {
		return nil, err
	}
	if !loc.IsActive {
		return nil, domain.ErrValidation
	}
	return loc, nil
}

// applyDelta bloquea la fila de stock, aplica el delta y persiste.
// Invariante del ledger: la cantidad resultante nunca es negativa.
func applyDelta(stockRepo repository.StockLineRepository, productID, locationID string, delta int64, now time.Time) (prev, newQty int64, err error) {
	line, err := stockRepo.GetForUpdate(productID, locationID)
	if err != nil {
		return 0, 0, err
	}
	prev = line.Quantity
	newQty = prev + delta
	if newQty < 0 {
		return 0, 0, domain.ErrInsufficientStock
	}
	line.Quantity = newQty
	line.UpdatedAt = now
	if err := stockRepo.Upsert(line); err != nil {
		return 0, 0, err
	}
	return prev, newQty, nil
}

// catalogAsValidation traduce el no-encontrado de un lookup de catálogo a
// error de validación: una solicitud que referencia un producto o ubicación
// inexistente es entrada inválida, no un recurso ausente.
func catalogAsValidation(err error, kind, id string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: %s %s no existe", domain.ErrValidation, kind, id)
	}
	return err
}

// checkCapacity verifica que la ocupación proyectada de la ubicación no supere
// su capacidad. Capacity 0 = sin límite. Usa un snapshot bloqueado de todas
// las filas de la ubicación, por lo que debe llamarse dentro de la tx.
func checkCapacity(stockRepo repository.StockLineRepository, loc *entity.Location, addQty int64) error {
	if loc == nil || loc.Capacity <= 0 {
		return nil
	}
	total, err := stockRepo.TotalAtLocationForUpdate(loc.ID)
	if err != nil {
		return err
	}
	if total+addQty > loc.Capacity {
		return fmt.Errorf("%w: ubicación %s (%d + %d > %d)",
			domain.ErrCapacityExceeded, loc.Code, total, addQty, loc.Capacity)
	}
	return nil
}

// newAuditRecord arma un registro de auditoría con magnitud siempre >= 0.
func newAuditRecord(productID, locationID, userID, movementType string, quantity, prev, newQty int64, observations string, now time.Time) *entity.AuditRecord {
	if quantity < 0 {
		quantity = -quantity
	}
	return &entity.AuditRecord{
		ID:            uuid.New().String(),
		ProductID:     productID,
		LocationID:    locationID,
		UserID:        userID,
		MovementType:  movementType,
		Quantity:      quantity,
		PreviousStock: prev,
		NewStock:      newQty,
		Observations:  observations,
		CreatedAt:     now,
	}
}
