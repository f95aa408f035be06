package dto

import (
	"time"

	"github.com/tu-usuario/warehouse-ledger/internal/domain/entity"
)

// AlertResponse una alerta de reorden.
type AlertResponse struct {
	ID          string     `json:"id"`
	ProductID   string     `json:"product_id"`
	Status      string     `json:"status"`
	TriggeredAt time.Time  `json:"triggered_at"`
	Message     string     `json:"message"`
	Deficit     int64      `json:"deficit"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
	ClosedBy    *string    `json:"closed_by,omitempty"`
}

// ToAlertResponse mapea la entidad al DTO de respuesta.
func ToAlertResponse(a *entity.StockAlert) AlertResponse {
	return AlertResponse{
		ID:          a.ID,
		ProductID:   a.ProductID,
		Status:      a.Status,
		TriggeredAt: a.TriggeredAt,
		Message:     a.Message,
		Deficit:     a.Deficit,
		ClosedAt:    a.ClosedAt,
		ClosedBy:    a.ClosedBy,
	}
}
