package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/warehouse-ledger/internal/application/dto"
	"github.com/tu-usuario/warehouse-ledger/internal/application/ledger"
)

// LedgerHandler maneja entradas y salidas directas de mercancía (protegido).
type LedgerHandler struct {
	engine *ledger.Engine
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(engine *ledger.Engine) *LedgerHandler {
	return &LedgerHandler{engine: engine}
}

// RegisterIngress godoc
// @Summary      Registrar entrada de mercancía
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "product_id, location_id, quantity, observations"
// @Success      201   {object}  dto.AuditRecordResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/ingress [post]
func (h *LedgerHandler) RegisterIngress(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rec, err := h.engine.RegisterIngress(c.Context(), ledger.MovementInput{
		ProductID:    in.ProductID,
		LocationID:   in.LocationID,
		Quantity:     in.Quantity,
		Observations: in.Observations,
	}, GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToAuditRecordResponse(rec))
}

// RegisterEgress godoc
// @Summary      Registrar salida de mercancía
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "product_id, location_id, quantity, observations"
// @Success      201   {object}  dto.AuditRecordResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/egress [post]
func (h *LedgerHandler) RegisterEgress(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rec, err := h.engine.RegisterEgress(c.Context(), ledger.MovementInput{
		ProductID:    in.ProductID,
		LocationID:   in.LocationID,
		Quantity:     in.Quantity,
		Observations: in.Observations,
	}, GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToAuditRecordResponse(rec))
}
