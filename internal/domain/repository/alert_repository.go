package repository

import (
	"time"

	"github.com/tu-usuario/warehouse-ledger/internal/domain/entity"
)

// StockAlertRepository puerto de persistencia de alertas de reorden.
// A lo sumo una alerta open por producto (índice único parcial en la tabla).
type StockAlertRepository interface {
	GetOpenByProduct(productID string) (*entity.StockAlert, error)
	Create(alert *entity.StockAlert) error
	// Refresh actualiza triggered_at, mensaje y déficit de una alerta open
	// ya existente (política de idempotencia del evaluador).
	Refresh(id string, triggeredAt time.Time, message string, deficit int64) error
	// Close cierra la alerta open del producto. closedBy vacío = cierre
	// automático del evaluador. Devuelve false si no había alerta open.
	Close(productID, closedBy string, closedAt time.Time) (bool, error)
	ListOpen(limit, offset int) ([]*entity.StockAlert, error)
}
