package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/warehouse-ledger/internal/application/alerts"
	"github.com/tu-usuario/warehouse-ledger/internal/application/dto"
)

// AlertHandler maneja las alertas de reorden (protegido).
type AlertHandler struct {
	evaluator *alerts.Evaluator
}

// NewAlertHandler construye el handler.
func NewAlertHandler(evaluator *alerts.Evaluator) *AlertHandler {
	return &AlertHandler{evaluator: evaluator}
}

// ListOpen godoc
// @Summary      Listar alertas activas
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AlertResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) ListOpen(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	list, err := h.evaluator.ListOpen(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AlertResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.ToAlertResponse(a))
	}
	return c.JSON(fiber.Map{"total": len(out), "alerts": out})
}

// Evaluate godoc
// @Summary      Disparar la evaluación de alertas
// @Description  Re-evalúa todos los productos con punto de reorden. El mismo
//
//	barrido corre periódicamente por cron; este endpoint permite
//	forzarlo después de una mutación.
//
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/alerts/evaluate [post]
func (h *AlertHandler) Evaluate(c *fiber.Ctx) error {
	open, err := h.evaluator.EvaluateAll(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"open_alerts": open})
}

// Close godoc
// @Summary      Cerrar la alerta activa de un producto (supervisor+)
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        productID  path  string  true  "UUID del producto"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/{productID}/close [patch]
func (h *AlertHandler) Close(c *fiber.Ctx) error {
	if err := h.evaluator.Close(c.Context(), c.Params("productID"), GetActor(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "alerta cerrada"})
}
