package entity

import "time"

// Estados de una alerta de reorden. Estado explícito en vez de inferirlo del
// último mensaje: una alerta open por producto como máximo.
const (
	AlertOpen   = "open"
	AlertClosed = "closed"
)

// StockAlert alerta de producto bajo punto de reorden. No es autoritativa:
// siempre re-derivable de StockLine + Product.ReorderPoint.
type StockAlert struct {
	ID          string
	ProductID   string
	Status      string
	TriggeredAt time.Time
	Message     string
	Deficit     int64 // reorder_point - stock total al momento de evaluar
	ClosedAt    *time.Time
	ClosedBy    *string
}
