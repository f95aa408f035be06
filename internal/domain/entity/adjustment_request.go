package entity

import "time"

// Estados de una solicitud (ajuste o traslado). Transición única:
// pending -> approved | rejected; terminal después.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// AdjustmentRequest solicitud de conciliación de stock por conteo físico.
// SystemQuantity es el snapshot del stock al momento de crearla;
// Delta = PhysicalQuantity - SystemQuantity. La creación no toca el ledger:
// la mutación ocurre solo al aprobar.
type AdjustmentRequest struct {
	ID                string
	ProductID         string
	LocationID        string
	SystemQuantity    int64
	PhysicalQuantity  int64
	Delta             int64
	Reason            string
	AttachmentURL     string
	Status            string
	Flagged           bool // |Delta| superó la tolerancia configurada
	CreatedBy         string
	CreatedAt         time.Time
	ProcessedBy       *string
	ProcessedAt       *time.Time
	ResolutionComment string
}

// IsPending indica si la solicitud todavía admite aprobar/rechazar.
func (r *AdjustmentRequest) IsPending() bool {
	return r.Status == StatusPending
}
