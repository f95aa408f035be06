package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/warehouse-ledger/internal/application/audit"
	"github.com/tu-usuario/warehouse-ledger/internal/application/dto"
	"github.com/tu-usuario/warehouse-ledger/internal/domain/repository"
)

// AuditHandler consultas de solo lectura del log de auditoría (protegido).
type AuditHandler struct {
	uc *audit.QueryUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *audit.QueryUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List godoc
// @Summary      Consultar movimientos auditados
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        date_from  query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        date_to    query  string  false  "RFC3339 o YYYY-MM-DD"
// @Param        user_id    query  string  false  "UUID de usuario"
// @Param        product    query  string  false  "UUID de producto"
// @Param        location   query  string  false  "UUID de ubicación"
// @Param        action     query  string  false  "ingress|egress|adjustment|transfer-out|transfer-in|rejection"
// @Success      200  {array}  dto.AuditRecordResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/audit/movements [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	filter, err := h.parseFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}
	records, total, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AuditRecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, dto.ToAuditRecordResponse(rec))
	}
	return c.JSON(fiber.Map{
		"total":     total,
		"limit":     filter.Limit,
		"offset":    filter.Offset,
		"movements": out,
	})
}

// Export godoc
// @Summary      Exportar movimientos auditados como PDF
// @Description  Mismo conjunto filtrado que el listado, serializado como
//
//	archivo descargable.
//
// @Tags         audit
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/audit/movements/export [get]
func (h *AuditHandler) Export(c *fiber.Ctx) error {
	filter, err := h.parseFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}
	pdfBytes, err := h.uc.Export(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	filename := "auditoria-" + time.Now().Format("20060102-150405") + ".pdf"
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// parseFilter arma el AuditFilter desde los query params, validando fechas.
func (h *AuditHandler) parseFilter(c *fiber.Ctx) (repository.AuditFilter, error) {
	var q dto.AuditQuery
	if err := c.QueryParser(&q); err != nil {
		return repository.AuditFilter{}, fmt.Errorf("query inválida")
	}
	q.DefaultPage()
	filter := repository.AuditFilter{
		UserID:       q.UserID,
		ProductID:    q.ProductID,
		LocationID:   q.LocationID,
		MovementType: q.MovementType,
		Limit:        q.Limit,
		Offset:       q.Offset,
	}
	if q.DateFrom != "" {
		t, err := parseDate(q.DateFrom)
		if err != nil {
			return repository.AuditFilter{}, fmt.Errorf("date_from inválido: %s", q.DateFrom)
		}
		filter.DateFrom = &t
	}
	if q.DateTo != "" {
		t, err := parseDate(q.DateTo)
		if err != nil {
			return repository.AuditFilter{}, fmt.Errorf("date_to inválido: %s", q.DateTo)
		}
		filter.DateTo = &t
	}
	return filter, nil
}

// parseDate acepta RFC3339 o fecha simple YYYY-MM-DD.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
