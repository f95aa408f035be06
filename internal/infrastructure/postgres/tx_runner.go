package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/warehouse-ledger/internal/application/alerts"
	"github.com/tu-usuario/warehouse-ledger/internal/application/ledger"
	"github.com/tu-usuario/warehouse-ledger/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner and alerts.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)
var _ alerts.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Es el límite atómico del motor de consistencia: la
// mutación de stock, el registro de auditoría y la transición de estado
// o se confirman juntos o no se confirma ninguno.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockLineRepository,
	auditRepo repository.AuditRecordRepository,
	adjustmentRepo repository.AdjustmentRequestRepository,
	transferRepo repository.InternalTransferRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stockRepo := NewStockLineRepository(tx)
	auditRepo := NewAuditRecordRepository(tx)
	adjustmentRepo := NewAdjustmentRequestRepository(tx)
	transferRepo := NewInternalTransferRepository(tx)

	if err := fn(stockRepo, auditRepo, adjustmentRepo, transferRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAlerts inicia una transacción con los repos que necesita el evaluador de
// alertas (lectura del ledger + upsert de la alerta en un snapshot único).
func (r *TxRunner) RunAlerts(ctx context.Context, fn func(
	stockRepo repository.StockLineRepository,
	alertRepo repository.StockAlertRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stockRepo := NewStockLineRepository(tx)
	alertRepo := NewStockAlertRepository(tx)

	if err := fn(stockRepo, alertRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
