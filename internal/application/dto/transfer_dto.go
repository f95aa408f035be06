package dto

import (
	"time"

	"github.com/tu-usuario/warehouse-ledger/internal/domain/entity"
)

// CreateTransferRequest body para POST /api/transfers/internal.
type CreateTransferRequest struct {
	ProductID             string `json:"product_id"`
	Quantity              int64  `json:"quantity"`
	OriginLocationID      string `json:"origin_location_id"`
	DestinationLocationID string `json:"destination_location_id"`
	Reason                string `json:"reason,omitempty"`
}

// TransferResponse un traslado interno.
type TransferResponse struct {
	ID                    string     `json:"id"`
	ProductID             string     `json:"product_id"`
	Quantity              int64      `json:"quantity"`
	OriginLocationID      string     `json:"origin_location_id"`
	DestinationLocationID string     `json:"destination_location_id"`
	Reason                string     `json:"reason,omitempty"`
	Status                string     `json:"status"`
	CreatedBy             string     `json:"created_by"`
	CreatedAt             time.Time  `json:"created_at"`
	ProcessedBy           *string    `json:"processed_by,omitempty"`
	ProcessedAt           *time.Time `json:"processed_at,omitempty"`
	ResolutionComment     string     `json:"resolution_comment,omitempty"`
}

// ToTransferResponse mapea la entidad al DTO de respuesta.
func ToTransferResponse(t *entity.InternalTransfer) TransferResponse {
	return TransferResponse{
		ID:                    t.ID,
		ProductID:             t.ProductID,
		Quantity:              t.Quantity,
		OriginLocationID:      t.OriginLocationID,
		DestinationLocationID: t.DestinationLocationID,
		Reason:                t.Reason,
		Status:                t.Status,
		CreatedBy:             t.CreatedBy,
		CreatedAt:             t.CreatedAt,
		ProcessedBy:           t.ProcessedBy,
		ProcessedAt:           t.ProcessedAt,
		ResolutionComment:     t.ResolutionComment,
	}
}
