package repository

import "github.com/tu-usuario/warehouse-ledger/internal/domain/entity"

// ProductRepository puerto de persistencia del catálogo de productos.
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(p *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	// ListWithReorderPoint productos con punto de reorden > 0 (barrido de alertas).
	ListWithReorderPoint() ([]*entity.Product, error)
}
