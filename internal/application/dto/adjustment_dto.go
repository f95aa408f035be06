package dto

import (
	"time"

	"github.com/tu-usuario/warehouse-ledger/internal/domain/entity"
)

// CreateAdjustmentRequest body para POST /api/inventory/adjustments.
type CreateAdjustmentRequest struct {
	ProductID        string `json:"product_id"`
	LocationID       string `json:"location_id"`
	PhysicalQuantity int64  `json:"physical_quantity"`
	Reason           string `json:"reason"`
	AttachmentURL    string `json:"attachment_url,omitempty"`
}

// ResolveRequest body para PATCH .../approve y .../reject.
// Comment es opcional al aprobar y obligatorio (como motivo) al rechazar.
type ResolveRequest struct {
	Comment string `json:"comment"`
}

// AdjustmentResponse una solicitud de ajuste.
type AdjustmentResponse struct {
	ID                string     `json:"id"`
	ProductID         string     `json:"product_id"`
	LocationID        string     `json:"location_id"`
	SystemQuantity    int64      `json:"system_quantity"`
	PhysicalQuantity  int64      `json:"physical_quantity"`
	Delta             int64      `json:"delta"`
	Reason            string     `json:"reason"`
	AttachmentURL     string     `json:"attachment_url,omitempty"`
	Status            string     `json:"status"`
	Flagged           bool       `json:"flagged"`
	CreatedBy         string     `json:"created_by"`
	CreatedAt         time.Time  `json:"created_at"`
	ProcessedBy       *string    `json:"processed_by,omitempty"`
	ProcessedAt       *time.Time `json:"processed_at,omitempty"`
	ResolutionComment string     `json:"resolution_comment,omitempty"`
}

// ToAdjustmentResponse mapea la entidad al DTO de respuesta.
func ToAdjustmentResponse(r *entity.AdjustmentRequest) AdjustmentResponse {
	return AdjustmentResponse{
		ID:                r.ID,
		ProductID:         r.ProductID,
		LocationID:        r.LocationID,
		SystemQuantity:    r.SystemQuantity,
		PhysicalQuantity:  r.PhysicalQuantity,
		Delta:             r.Delta,
		Reason:            r.Reason,
		AttachmentURL:     r.AttachmentURL,
		Status:            r.Status,
		Flagged:           r.Flagged,
		CreatedBy:         r.CreatedBy,
		CreatedAt:         r.CreatedAt,
		ProcessedBy:       r.ProcessedBy,
		ProcessedAt:       r.ProcessedAt,
		ResolutionComment: r.ResolutionComment,
	}
}
