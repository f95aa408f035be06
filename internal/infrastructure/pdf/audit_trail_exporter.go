// Package pdf implementa la exportación del trail de auditoría como PDF.
//
// Layout de la página A4 (apaisada no: el trail cabe en vertical):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación + total de filas       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Producto | Ubicación | Cant | Antes → Después │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda de integridad del log                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/warehouse-ledger/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// AuditTrailExporter implementa audit.Exporter usando Maroto v2.
type AuditTrailExporter struct{}

// NewAuditTrailExporter construye el exportador.
func NewAuditTrailExporter() *AuditTrailExporter { return &AuditTrailExporter{} }

// Render genera el PDF del conjunto de movimientos y devuelve sus bytes.
func (e *AuditTrailExporter) Render(records []*entity.AuditRecord) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Auditoría de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(len(records)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, rec := range records {
		m.AddRows(recordRow(rec))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación + total de filas (der).
func headerRow(total int) core.Row {
	return row.New(14).Add(
		col.New(7).Add(
			text.New("AUDITORÍA DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Registro de movimientos del ledger", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(fmt.Sprintf("Movimientos: %d", total), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 8,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de movimientos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 2, align.Left),
		h("Producto", 2, align.Left),
		h("Ubicación", 2, align.Left),
		h("Cant.", 1, align.Right),
		h("Antes → Después", 3, align.Right),
	)
}

// recordRow: una fila por movimiento.
func recordRow(rec *entity.AuditRecord) core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Size: 7, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		cell(rec.CreatedAt.Format("02/01/2006 15:04"), 2, align.Left),
		cell(movementLabel(rec.MovementType), 2, align.Left),
		cell(shortID(rec.ProductID), 2, align.Left),
		cell(shortID(rec.LocationID), 2, align.Left),
		cell(strconv.FormatInt(rec.Quantity, 10), 1, align.Right),
		cell(fmt.Sprintf("%d → %d", rec.PreviousStock, rec.NewStock), 3, align.Right),
	)
}

// footerRow: leyenda de integridad.
func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Log de auditoría append-only: cada mutación de stock queda registrada "+
				"con el nivel anterior y posterior. Conserve este documento como soporte.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// movementLabel etiqueta legible del tipo de movimiento.
func movementLabel(t string) string {
	switch t {
	case entity.MovementIngress:
		return "Entrada"
	case entity.MovementEgress:
		return "Salida"
	case entity.MovementAdjustment:
		return "Ajuste"
	case entity.MovementTransferOut:
		return "Traslado (salida)"
	case entity.MovementTransferIn:
		return "Traslado (entrada)"
	case entity.MovementRejection:
		return "Rechazo"
	}
	return t
}

// shortID primeros 8 caracteres de un UUID, suficiente para lectura humana.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
