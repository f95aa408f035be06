package ledger

import (
	"context"

	"github.com/tu-usuario/warehouse-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la única disciplina de concurrencia que el
// motor exige: toda mutación de stock + auditoría + transición de estado
// ocurre dentro de un Run, o ambas quedan o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockLineRepository,
		auditRepo repository.AuditRecordRepository,
		adjustmentRepo repository.AdjustmentRequestRepository,
		transferRepo repository.InternalTransferRepository,
	) error) error
}
