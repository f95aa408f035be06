package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/warehouse-ledger/internal/application/dto"
	"github.com/tu-usuario/warehouse-ledger/internal/domain"
	"github.com/tu-usuario/warehouse-ledger/internal/domain/entity"
	"github.com/tu-usuario/warehouse-ledger/internal/domain/repository"
)

// ProductUseCase CRUD delgado del catálogo de productos. Sin lógica de
// inventario: el stock vive en el ledger y solo lo escribe el motor.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// Create registra un producto nuevo. SKU único.
func (uc *ProductUseCase) Create(in dto.ProductRequest) (*entity.Product, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrValidation
	}
	if in.ReorderPoint < 0 {
		return nil, domain.ErrValidation
	}
	existing, _ := uc.productRepo.GetBySKU(in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	category := in.Category
	if category == "" {
		category = entity.CategoryStandard
	}
	now := time.Now()
	p := &entity.Product{
		ID:           uuid.New().String(),
		SKU:          in.SKU,
		Name:         in.Name,
		Description:  in.Description,
		ReorderPoint: in.ReorderPoint,
		Category:     category,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.productRepo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID devuelve el producto o ErrNotFound.
func (uc *ProductUseCase) GetByID(id string) (*entity.Product, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// Update modifica nombre, descripción, punto de reorden y categoría.
func (uc *ProductUseCase) Update(id string, in dto.ProductRequest) (*entity.Product, error) {
	p, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		p.Name = in.Name
	}
	p.Description = in.Description
	if in.ReorderPoint < 0 {
		return nil, domain.ErrValidation
	}
	p.ReorderPoint = in.ReorderPoint
	if in.Category != "" {
		p.Category = in.Category
	}
	p.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// List devuelve la página de productos.
func (uc *ProductUseCase) List(limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.List(limit, offset)
}
