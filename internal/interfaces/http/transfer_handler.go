package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/warehouse-ledger/internal/application/dto"
	"github.com/tu-usuario/warehouse-ledger/internal/application/ledger"
	"github.com/tu-usuario/warehouse-ledger/internal/domain/repository"
)

// TransferHandler maneja el flujo de traslados internos (protegido).
type TransferHandler struct {
	uc *ledger.TransferUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *ledger.TransferUseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create godoc
// @Summary      Crear traslado interno
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "product_id, quantity, origin_location_id, destination_location_id, reason"
// @Success      201   {object}  dto.TransferResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/transfers/internal [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	tr, err := h.uc.Create(c.Context(), ledger.CreateTransferInput{
		ProductID:             in.ProductID,
		Quantity:              in.Quantity,
		OriginLocationID:      in.OriginLocationID,
		DestinationLocationID: in.DestinationLocationID,
		Reason:                in.Reason,
	}, GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToTransferResponse(tr))
}

// List godoc
// @Summary      Listar traslados internos
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        status       query  string  false  "pending|approved|rejected"
// @Param        product      query  string  false  "UUID de producto"
// @Param        origin       query  string  false  "UUID de ubicación origen"
// @Param        destination  query  string  false  "UUID de ubicación destino"
// @Success      200  {array}  dto.TransferResponse
// @Router       /api/transfers/internal [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), repository.TransferFilter{
		Status:        c.Query("status"),
		ProductID:     c.Query("product"),
		OriginID:      c.Query("origin"),
		DestinationID: c.Query("destination"),
		Limit:         page.Limit,
		Offset:        page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.TransferResponse, 0, len(list))
	for _, tr := range list {
		out = append(out, dto.ToTransferResponse(tr))
	}
	return c.JSON(fiber.Map{"total": len(out), "transfers": out})
}

// GetByID godoc
// @Summary      Obtener traslado interno
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/internal/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	tr, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToTransferResponse(tr))
}

// Approve godoc
// @Summary      Aprobar traslado interno (supervisor+)
// @Description  Mueve la cantidad de origen a destino en una sola transacción:
//
//	si el origen no alcanza responde 409 y el traslado sigue pending.
//
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true   "UUID del traslado"
// @Param        body  body  dto.ResolveRequest  false  "comment opcional"
// @Success      200   {object}  dto.TransferResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/internal/{id}/approve [patch]
func (h *TransferHandler) Approve(c *fiber.Ctx) error {
	var in dto.ResolveRequest
	_ = c.BodyParser(&in) // body opcional
	tr, err := h.uc.Approve(c.Context(), c.Params("id"), GetActor(c), in.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToTransferResponse(tr))
}

// Reject godoc
// @Summary      Rechazar traslado interno (supervisor+)
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "UUID del traslado"
// @Param        body  body  dto.ResolveRequest  true  "comment = motivo del rechazo (obligatorio)"
// @Success      200   {object}  dto.TransferResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/transfers/internal/{id}/reject [patch]
func (h *TransferHandler) Reject(c *fiber.Ctx) error {
	var in dto.ResolveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	tr, err := h.uc.Reject(c.Context(), c.Params("id"), GetActor(c), in.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToTransferResponse(tr))
}
