package repository

import (
	"time"

	"github.com/tu-usuario/warehouse-ledger/internal/domain/entity"
)

// TransferFilter filtros para listar traslados internos.
type TransferFilter struct {
	Status        string
	ProductID     string
	OriginID      string
	DestinationID string
	Limit         int
	Offset        int
}

// InternalTransferRepository puerto de persistencia de traslados internos.
type InternalTransferRepository interface {
	Create(tr *entity.InternalTransfer) error
	GetByID(id string) (*entity.InternalTransfer, error)
	GetForUpdate(id string) (*entity.InternalTransfer, error)
	List(filter TransferFilter) ([]*entity.InternalTransfer, error)
	// Resolve transiciona pending -> status con compare-and-swap sobre el
	// estado. Devuelve false si el traslado ya no estaba pending.
	Resolve(id, status, processedBy, comment string, processedAt time.Time) (bool, error)
}
