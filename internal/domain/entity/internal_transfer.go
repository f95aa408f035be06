package entity

import "time"

// InternalTransfer solicitud de traslado de stock entre dos ubicaciones.
// Misma máquina de estados que AdjustmentRequest. La disponibilidad NO se
// valida al crear: se re-verifica al aprobar, con la fila de origen bloqueada.
type InternalTransfer struct {
	ID                    string
	ProductID             string
	Quantity              int64 // siempre > 0
	OriginLocationID      string
	DestinationLocationID string
	Reason                string
	Status                string
	CreatedBy             string
	CreatedAt             time.Time
	ProcessedBy           *string
	ProcessedAt           *time.Time
	ResolutionComment     string
}

// IsPending indica si el traslado todavía admite aprobar/rechazar.
func (t *InternalTransfer) IsPending() bool {
	return t.Status == StatusPending
}
