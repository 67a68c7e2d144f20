// Package pdf implementa la generación de la representación impresa de los
// documentos de inventario (nota de recepción, entrega o traslado).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título de la nota + N° documento + Fecha            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PARTES: Proveedor / Cliente / Bodegas según el tipo         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Categoría | Bodega | Cant | Cumpl   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Líneas / Solicitado / Cumplido + Estado            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el ID del documento + leyenda                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jvillada/almacen-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa workflow.PrintoutGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateDocumentPDF genera la nota impresa y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateDocumentPDF(_ context.Context, doc *entity.Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(kindTitle(doc.Kind), true).
		Build()

	m := maroto.New(cfg)

	// Header principal
	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de líneas
	m.AddRows(tableHeaderRow(doc.Kind))
	for _, r := range tableItemRows(doc) {
		m.AddRows(r)
	}

	// Totales + estado
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc))

	// Footer con QR
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(doc) {
		m.AddRows(r)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título de la nota (izq) y N° documento + fecha (der).
func headerRow(doc *entity.Document) core.Row {
	fecha := doc.DocumentDate.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(kindTitle(doc.Kind), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Documento de inventario", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("N° "+shortID(doc.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 3,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

// partiesRow: contraparte y bodegas según el tipo de documento.
func partiesRow(doc *entity.Document) core.Row {
	var detail string
	switch doc.Kind {
	case entity.DocReceipt:
		detail = fmt.Sprintf("Proveedor: %s   |   Bodega destino: %s",
			nonEmpty(doc.Supplier, "—"),
			nonEmpty(doc.WarehouseName, "—"),
		)
	case entity.DocDelivery:
		detail = fmt.Sprintf("Cliente: %s   |   Bodega por línea", nonEmpty(doc.Customer, "—"))
	case entity.DocTransfer:
		detail = fmt.Sprintf("Bodega origen: %s   |   Bodega destino: %s",
			nonEmpty(doc.FromWarehouseName, "—"),
			nonEmpty(doc.ToWarehouseName, "—"),
		)
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("PARTES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(detail, props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow(kind string) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	whLabel := "Bodega"
	if kind != entity.DocDelivery {
		whLabel = ""
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Categoría", 2, align.Left),
		h(whLabel, 2, align.Left),
		h("Cant.", 1, align.Right),
		h("Cumpl.", 1, align.Right),
	)
}

// tableItemRows: una fila por línea del documento.
func tableItemRows(doc *entity.Document) []core.Row {
	result := make([]core.Row, 0, len(doc.Items))
	for _, it := range doc.Items {
		wh := ""
		if doc.Kind == entity.DocDelivery {
			wh = nonEmpty(it.WarehouseName, "—")
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				it.ProductSKU,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				it.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				it.CategoryName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				wh,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				strconv.FormatInt(it.Quantity, 10),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				strconv.FormatInt(it.FulfilledQty, 10),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales + estado, alineado a la derecha.
func totalsRow(doc *entity.Document) core.Row {
	var requested, fulfilled int64
	for _, it := range doc.Items {
		requested += it.Quantity
		fulfilled += it.FulfilledQty
	}

	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	return row.New(26).Add(
		col.New(4).Add(
			text.New("Estado: "+statusLabel(doc.Status), props.Text{
				Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(2),
		col.New(3).Add(
			label("Líneas:"),
			label("Solicitado:"),
			label("Cumplido:"),
		),
		col.New(3).Add(
			value(strconv.Itoa(len(doc.Items))),
			value(strconv.FormatInt(requested, 10)),
			value(strconv.FormatInt(fulfilled, 10)),
		),
	)
}

// footerRows: código QR con el ID del documento + leyenda.
func footerRows(doc *entity.Document) []core.Row {
	return []core.Row{
		row.New(40).Add(
			col.New(4).Add(code.NewQr(doc.ID, props.Rect{
				Percent: 95,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Escanea el código QR para ubicar\neste documento en el sistema.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New("ID: "+doc.ID, props.Text{
					Size: 7, Top: 20, Left: 3, Color: colorGray,
				}),
			),
		),
		row.New(8).Add(col.New(12).Add(
			text.New(
				"Nota generada por el sistema de inventario. "+
					"Conserve este documento como soporte de la operación.",
				props.Text{Size: 6.5, Color: colorGray, Top: 2},
			),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func kindTitle(kind string) string {
	switch kind {
	case entity.DocReceipt:
		return "NOTA DE RECEPCIÓN"
	case entity.DocDelivery:
		return "NOTA DE ENTREGA"
	case entity.DocTransfer:
		return "NOTA DE TRASLADO"
	}
	return "DOCUMENTO DE INVENTARIO"
}

func statusLabel(status string) string {
	switch status {
	case entity.StatusDraft:
		return "BORRADOR"
	case entity.StatusValidated:
		return "VALIDADO"
	case entity.StatusCompleted:
		return "COMPLETADO"
	}
	return status
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortID devuelve el primer segmento del UUID para el encabezado.
func shortID(id string) string {
	for i := 0; i < len(id); i++ {
		if id[i] == '-' {
			return id[:i]
		}
	}
	return id
}
