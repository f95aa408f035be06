package entity

import "time"

// Location representa una ubicación de almacenamiento (bodega, estante, zona).
// Capacity 0 = sin límite; si es > 0, entradas y traslados re-verifican la
// ocupación proyectada dentro de la misma transacción.
type Location struct {
	ID          string
	Code        string // código único
	Description string
	Capacity    int64
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
