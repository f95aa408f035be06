package entity

import "time"

// Categorías de producto.
const (
	CategoryStandard   = "standard"
	CategoryPerishable = "perishable"
	CategoryFragile    = "fragile"
	CategoryBulk       = "bulk"
	CategoryHazardous  = "hazardous"
)

// Product representa un producto o SKU del catálogo.
// ReorderPoint es el umbral bajo el cual el producto se considera desabastecido
// (lo consume el evaluador de alertas).
type Product struct {
	ID           string
	SKU          string // código único
	Name         string
	Description  string
	ReorderPoint int64
	Category     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
