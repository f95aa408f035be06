package repository

import "github.com/tu-usuario/warehouse-ledger/internal/domain/entity"

// LocationRepository puerto de persistencia del catálogo de ubicaciones.
type LocationRepository interface {
	Create(l *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	GetByCode(code string) (*entity.Location, error)
	Update(l *entity.Location) error
	List(limit, offset int) ([]*entity.Location, error)
}
