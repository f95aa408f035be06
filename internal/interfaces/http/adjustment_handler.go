package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/warehouse-ledger/internal/application/dto"
	"github.com/tu-usuario/warehouse-ledger/internal/application/ledger"
	"github.com/tu-usuario/warehouse-ledger/internal/domain/repository"
)

// AdjustmentHandler maneja el flujo de solicitudes de ajuste (protegido).
type AdjustmentHandler struct {
	uc *ledger.AdjustmentUseCase
}

// NewAdjustmentHandler construye el handler.
func NewAdjustmentHandler(uc *ledger.AdjustmentUseCase) *AdjustmentHandler {
	return &AdjustmentHandler{uc: uc}
}

// Create godoc
// @Summary      Crear solicitud de ajuste por conteo físico
// @Tags         adjustments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAdjustmentRequest  true  "product_id, location_id, physical_quantity, reason, attachment_url"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *AdjustmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req, err := h.uc.Create(c.Context(), ledger.CreateAdjustmentInput{
		ProductID:        in.ProductID,
		LocationID:       in.LocationID,
		PhysicalQuantity: in.PhysicalQuantity,
		Reason:           in.Reason,
		AttachmentURL:    in.AttachmentURL,
	}, GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToAdjustmentResponse(req))
}

// List godoc
// @Summary      Listar solicitudes de ajuste
// @Tags         adjustments
// @Security     Bearer
// @Produce      json
// @Param        status    query  string  false  "pending|approved|rejected"
// @Param        product   query  string  false  "UUID de producto"
// @Param        location  query  string  false  "UUID de ubicación"
// @Param        flagged   query  bool    false  "solo solicitudes marcadas"
// @Success      200  {array}  dto.AdjustmentResponse
// @Router       /api/inventory/adjustments [get]
func (h *AdjustmentHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	filter := repository.AdjustmentFilter{
		Status:     c.Query("status"),
		ProductID:  c.Query("product"),
		LocationID: c.Query("location"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	}
	if raw := c.Query("flagged"); raw != "" {
		flagged, err := strconv.ParseBool(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "flagged debe ser booleano"})
		}
		filter.Flagged = &flagged
	}
	list, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AdjustmentResponse, 0, len(list))
	for _, req := range list {
		out = append(out, dto.ToAdjustmentResponse(req))
	}
	return c.JSON(fiber.Map{"total": len(out), "adjustments": out})
}

// GetByID godoc
// @Summary      Obtener solicitud de ajuste
// @Tags         adjustments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID de la solicitud"
// @Success      200  {object}  dto.AdjustmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments/{id} [get]
func (h *AdjustmentHandler) GetByID(c *fiber.Ctx) error {
	req, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToAdjustmentResponse(req))
}

// Approve godoc
// @Summary      Aprobar solicitud de ajuste (supervisor+)
// @Description  Aplica el delta sobre el stock actual bloqueado, escribe el
//
//	registro de auditoría y marca la solicitud como approved, todo
//	en una sola transacción.
//
// @Tags         adjustments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true   "UUID de la solicitud"
// @Param        body  body  dto.ResolveRequest  false  "comment opcional"
// @Success      200   {object}  dto.AdjustmentResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments/{id}/approve [patch]
func (h *AdjustmentHandler) Approve(c *fiber.Ctx) error {
	var in dto.ResolveRequest
	_ = c.BodyParser(&in) // body opcional
	req, err := h.uc.Approve(c.Context(), c.Params("id"), GetActor(c), in.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToAdjustmentResponse(req))
}

// Reject godoc
// @Summary      Rechazar solicitud de ajuste (supervisor+)
// @Tags         adjustments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "UUID de la solicitud"
// @Param        body  body  dto.ResolveRequest  true  "comment = motivo del rechazo (obligatorio)"
// @Success      200   {object}  dto.AdjustmentResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments/{id}/reject [patch]
func (h *AdjustmentHandler) Reject(c *fiber.Ctx) error {
	var in dto.ResolveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req, err := h.uc.Reject(c.Context(), c.Params("id"), GetActor(c), in.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToAdjustmentResponse(req))
}
