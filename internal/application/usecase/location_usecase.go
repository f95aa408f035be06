package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/warehouse-ledger/internal/application/dto"
	"github.com/tu-usuario/warehouse-ledger/internal/domain"
	"github.com/tu-usuario/warehouse-ledger/internal/domain/entity"
	"github.com/tu-usuario/warehouse-ledger/internal/domain/repository"
)

// LocationUseCase CRUD delgado del catálogo de ubicaciones.
type LocationUseCase struct {
	locationRepo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(locationRepo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{locationRepo: locationRepo}
}

// Create registra una ubicación nueva. Código único; Capacity 0 = sin límite.
func (uc *LocationUseCase) Create(in dto.LocationRequest) (*entity.Location, error) {
	if in.Code == "" {
		return nil, domain.ErrValidation
	}
	if in.Capacity < 0 {
		return nil, domain.ErrValidation
	}
	existing, _ := uc.locationRepo.GetByCode(in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}
	now := time.Now()
	l := &entity.Location{
		ID:          uuid.New().String(),
		Code:        in.Code,
		Description: in.Description,
		Capacity:    in.Capacity,
		IsActive:    isActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.locationRepo.Create(l); err != nil {
		return nil, err
	}
	return l, nil
}

// GetByID devuelve la ubicación o ErrNotFound.
func (uc *LocationUseCase) GetByID(id string) (*entity.Location, error) {
	l, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	return l, nil
}

// Update modifica descripción, capacidad y estado activo.
func (uc *LocationUseCase) Update(id string, in dto.LocationRequest) (*entity.Location, error) {
	l, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	l.Description = in.Description
	if in.Capacity < 0 {
		return nil, domain.ErrValidation
	}
	l.Capacity = in.Capacity
	if in.IsActive != nil {
		l.IsActive = *in.IsActive
	}
	l.UpdatedAt = time.Now()
	if err := uc.locationRepo.Update(l); err != nil {
		return nil, err
	}
	return l, nil
}

// List devuelve la página de ubicaciones.
func (uc *LocationUseCase) List(limit, offset int) ([]*entity.Location, error) {
	return uc.locationRepo.List(limit, offset)
}
