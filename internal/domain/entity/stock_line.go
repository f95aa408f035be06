package entity

import "time"

// StockLine representa la cantidad actual de un producto en una ubicación.
// Única fuente de verdad del inventario en mano; solo el motor de consistencia
// la escribe. Invariante: Quantity >= 0 en todo momento.
type StockLine struct {
	ProductID  string
	LocationID string
	Quantity   int64
	UpdatedAt  time.Time
}
