// Package pdf genera el informe de pedido en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Informe de Pedido #id          │  Fecha            │
//	│  Cliente / Vendedor                                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Cantidad | Precio | Total                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL                                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gestorventas/deposito-api/internal/application/ports"
	"github.com/gestorventas/deposito-api/pkg/money"
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
	"github.com/shopspring/decimal"
)

var _ ports.OrderReportRenderer = (*MarotoOrderReport)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 31, Green: 78, Blue: 121}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoOrderReport implementa ports.OrderReportRenderer usando Maroto v2.
type MarotoOrderReport struct {
	author string
}

// NewMarotoOrderReport construye el generador. author aparece en los metadatos del PDF.
func NewMarotoOrderReport(author string) *MarotoOrderReport {
	return &MarotoOrderReport{author: author}
}

// RenderOrderReport genera el PDF y devuelve sus bytes. El total se recalcula con los subtotales.
func (g *MarotoOrderReport) RenderOrderReport(_ context.Context, r ports.OrderReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Informe de Pedido #"+r.OrderID, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())

	total := decimal.Zero
	for _, l := range r.Lines {
		m.AddRows(tableLineRow(l))
		total = total.Add(l.Subtotal)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(total))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r ports.OrderReport) core.Row {
	return row.New(22).Add(
		col.New(8).Add(
			text.New("Informe de Pedido #"+r.OrderID, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Cliente: "+r.ClientName, props.Text{Size: 10, Top: 10}),
			text.New("Vendedor: "+r.VendorName, props.Text{Size: 9, Top: 16, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Fecha: "+r.Date.Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Producto", 6, align.Left),
		h("Cantidad", 2, align.Center),
		h("Precio", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

func tableLineRow(l ports.OrderReportLine) core.Row {
	return row.New(7).Add(
		col.New(6).Add(text.New(l.Product, props.Text{Size: 9, Top: 1})),
		col.New(2).Add(text.New(strconv.Itoa(l.Quantity), props.Text{Size: 9, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New(money.Format(l.Price), props.Text{Size: 9, Align: align.Right, Top: 1})),
		col.New(2).Add(text.New(money.Format(l.Subtotal), props.Text{Size: 9, Align: align.Right, Top: 1})),
	)
}

func totalRow(total decimal.Decimal) core.Row {
	return row.New(12).Add(
		col.New(8),
		col.New(4).Add(text.New("Total: "+money.Format(total), props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right, Color: colorPrimary, Top: 3,
		})),
	)
}
