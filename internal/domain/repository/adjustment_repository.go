package repository

import (
	"time"

	"github.com/tu-usuario/warehouse-ledger/internal/domain/entity"
)

// AdjustmentFilter filtros para listar solicitudes de ajuste.
type AdjustmentFilter struct {
	Status     string
	ProductID  string
	LocationID string
	Flagged    *bool
	Limit      int
	Offset     int
}

// AdjustmentRequestRepository puerto de persistencia de solicitudes de ajuste.
type AdjustmentRequestRepository interface {
	Create(req *entity.AdjustmentRequest) error
	GetByID(id string) (*entity.AdjustmentRequest, error)
	// GetForUpdate bloquea la solicitud (SELECT FOR UPDATE) dentro de la tx.
	GetForUpdate(id string) (*entity.AdjustmentRequest, error)
	List(filter AdjustmentFilter) ([]*entity.AdjustmentRequest, error)
	// Resolve transiciona pending -> status con compare-and-swap sobre el
	// estado (UPDATE ... WHERE status = 'pending'). Devuelve false si la
	// solicitud ya no estaba pending: el caller debe tratarlo como conflicto.
	Resolve(id, status, processedBy, comment string, processedAt time.Time, flagged bool) (bool, error)
}
