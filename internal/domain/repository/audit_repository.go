package repository

import (
	"time"

	"github.com/tu-usuario/warehouse-ledger/internal/domain/entity"
)

// AuditFilter filtros para el listado de movimientos auditados.
type AuditFilter struct {
	DateFrom     *time.Time
	DateTo       *time.Time
	UserID       string
	ProductID    string
	LocationID   string
	MovementType string
	Limit        int
	Offset       int
}

// AuditRecordRepository puerto de persistencia del log de auditoría.
// Create es append-only y participa en la misma transacción que la mutación
// de stock que lo origina.
type AuditRecordRepository interface {
	Create(rec *entity.AuditRecord) error
	List(filter AuditFilter) ([]*entity.AuditRecord, error)
	Count(filter AuditFilter) (int, error)
}
