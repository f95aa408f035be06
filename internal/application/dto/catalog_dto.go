package dto

import (
	"time"

	"github.com/tu-usuario/warehouse-ledger/internal/domain/entity"
)

// ProductRequest body para crear/actualizar productos.
type ProductRequest struct {
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	ReorderPoint int64  `json:"reorder_point"`
	Category     string `json:"category,omitempty"`
}

// ProductResponse un producto del catálogo.
type ProductResponse struct {
	ID           string    `json:"id"`
	SKU          string    `json:"sku"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	ReorderPoint int64     `json:"reorder_point"`
	Category     string    `json:"category"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToProductResponse mapea la entidad al DTO de respuesta.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		ReorderPoint: p.ReorderPoint,
		Category:     p.Category,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// LocationRequest body para crear/actualizar ubicaciones.
type LocationRequest struct {
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
	Capacity    int64  `json:"capacity"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

// LocationResponse una ubicación de almacenamiento.
type LocationResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Description string    `json:"description,omitempty"`
	Capacity    int64     `json:"capacity"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToLocationResponse mapea la entidad al DTO de respuesta.
func ToLocationResponse(l *entity.Location) LocationResponse {
	return LocationResponse{
		ID:          l.ID,
		Code:        l.Code,
		Description: l.Description,
		Capacity:    l.Capacity,
		IsActive:    l.IsActive,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}
