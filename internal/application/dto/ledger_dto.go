package dto

import (
	"time"

	"github.com/tu-usuario/warehouse-ledger/internal/domain/entity"
)

// MovementRequest body para POST /api/inventory/ingress y /api/inventory/egress.
type MovementRequest struct {
	ProductID    string `json:"product_id"`
	LocationID   string `json:"location_id"`
	Quantity     int64  `json:"quantity"`
	Observations string `json:"observations,omitempty"`
}

// AuditRecordResponse un movimiento auditado.
type AuditRecordResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	LocationID    string    `json:"location_id"`
	UserID        string    `json:"user_id"`
	MovementType  string    `json:"movement_type"`
	Quantity      int64     `json:"quantity"`
	PreviousStock int64     `json:"previous_stock"`
	NewStock      int64     `json:"new_stock"`
	Observations  string    `json:"observations,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToAuditRecordResponse mapea la entidad al DTO de respuesta.
func ToAuditRecordResponse(rec *entity.AuditRecord) AuditRecordResponse {
	return AuditRecordResponse{
		ID:            rec.ID,
		ProductID:     rec.ProductID,
		LocationID:    rec.LocationID,
		UserID:        rec.UserID,
		MovementType:  rec.MovementType,
		Quantity:      rec.Quantity,
		PreviousStock: rec.PreviousStock,
		NewStock:      rec.NewStock,
		Observations:  rec.Observations,
		CreatedAt:     rec.CreatedAt,
	}
}

// AuditQuery query params para GET /api/audit/movements.
type AuditQuery struct {
	DateFrom     string `query:"date_from"`
	DateTo       string `query:"date_to"`
	UserID       string `query:"user_id"`
	ProductID    string `query:"product"`
	LocationID   string `query:"location"`
	MovementType string `query:"action"`
	PageRequest
}
