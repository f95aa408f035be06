package repository

import "github.com/tu-usuario/warehouse-ledger/internal/domain/entity"

// StockLineRepository define el puerto para consultar/actualizar el ledger
// por producto+ubicación. Las mutaciones se usan dentro de transacciones para
// garantizar consistencia; fila ausente se lee como cantidad 0.
type StockLineRepository interface {
	Get(productID, locationID string) (*entity.StockLine, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(productID, locationID string) (*entity.StockLine, error)
	Upsert(line *entity.StockLine) error
	// SumByProduct suma el stock del producto en todas las ubicaciones.
	SumByProduct(productID string) (int64, error)
	// ListByProduct desglose por ubicación (solo filas con cantidad > 0).
	ListByProduct(productID string) ([]*entity.StockLine, error)
	// TotalAtLocationForUpdate suma el stock de la ubicación bloqueando las
	// filas (snapshot consistente para el chequeo de capacidad).
	TotalAtLocationForUpdate(locationID string) (int64, error)
}
