// Package pdf implementa la generación de documentos con Maroto v2:
// la orden de compra que se envía al proveedor y la etiqueta de lote con QR.
//
// Layout de la orden (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + RUC  │  N° Orden + Fecha emisión    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROVEEDOR: Razón social + RUC + contacto                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | Costo Unit | Subtotal             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / IVA 15% / TOTAL                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

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

	appinv "github.com/andilac/lacteos-api/internal/application/inventory"
	"github.com/andilac/lacteos-api/internal/application/purchasing"
	"github.com/andilac/lacteos-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 96, Blue: 57}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const companyName = "Láctea Andina Cía. Ltda."

// ── Generator ─────────────────────────────────────────────────────────────────

var (
	_ purchasing.OrderPDFGenerator = (*MarotoPDFGenerator)(nil)
	_ appinv.BatchLabelGenerator   = (*MarotoPDFGenerator)(nil)
)

// MarotoPDFGenerator implementa los puertos de PDF usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GeneratePurchaseOrder genera el PDF de la orden de compra y devuelve sus bytes.
func (g *MarotoPDFGenerator) GeneratePurchaseOrder(
	order *entity.PurchaseOrder,
	provider *entity.Provider,
	products map[string]*entity.Product,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de Compra "+order.Number, true).
		WithAuthor(companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(orderHeaderRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(providerRow(provider))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(itemsHeaderRow())
	for _, r := range itemRows(order.Items, products) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(orderTotalsRow(order))

	if order.Notes != "" {
		m.AddRows(line.NewRow(2))
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Observaciones: "+order.Notes, props.Text{
				Size: 8, Color: colorGray, Top: 1,
			}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar orden de compra: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateBatchLabel genera la etiqueta PDF de un lote con su código QR.
func (g *MarotoPDFGenerator) GenerateBatchLabel(batch *entity.Batch, product *entity.Product) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A6).
		WithLeftMargin(5).WithRightMargin(5).
		WithTopMargin(5).WithBottomMargin(5).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Etiqueta "+batch.Code, true).
		WithAuthor(companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(row.New(14).Add(col.New(12).Add(
		text.New(product.Name, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
		}),
		text.New("Código producto: "+product.Code, props.Text{
			Size: 8, Top: 9, Color: colorGray,
		}),
	)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.4}))

	expiry := "—"
	if batch.ExpiryDate != nil {
		expiry = batch.ExpiryDate.Format("02/01/2006")
	}
	m.AddRows(row.New(22).Add(col.New(12).Add(
		text.New("Lote: "+batch.Code, props.Text{Style: fontstyle.Bold, Size: 11, Top: 1}),
		text.New("Ingreso: "+batch.EntryDate.Format("02/01/2006"), props.Text{Size: 9, Top: 8}),
		text.New("Vence: "+expiry, props.Text{Style: fontstyle.Bold, Size: 9, Top: 14}),
	)))

	m.AddRows(row.New(55).Add(
		col.New(12).Add(code.NewQr(batch.QRCode, props.Rect{
			Percent: 90,
			Center:  true,
		})),
	))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Cantidad inicial: %s %s", batch.InitialQuantity.String(), product.Unit), props.Text{
			Size: 8, Align: align.Center, Color: colorGray, Top: 1,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiqueta de lote: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones de la orden ─────────────────────────────────────────────────────

// orderHeaderRow: razón social (izq) y número + fecha de emisión (der).
func orderHeaderRow(order *entity.PurchaseOrder) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Planta Machachi — Pichincha, Ecuador", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDEN DE COMPRA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(order.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Emisión: "+order.IssueDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// providerRow: datos del proveedor.
func providerRow(provider *entity.Provider) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("PROVEEDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(provider.BusinessName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("RUC: %s   |   Email: %s   |   Tel: %s",
				provider.RUC,
				nonEmpty(provider.Email, "—"),
				nonEmpty(provider.Phone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// itemsHeaderRow: cabecera de la tabla de ítems.
func itemsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Producto", 5, align.Left),
		h("Costo Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// itemRows: una fila por línea de la orden.
func itemRows(items []entity.PurchaseOrderItem, products map[string]*entity.Product) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		name := it.ProductID
		unit := ""
		if p, ok := products[it.ProductID]; ok {
			name = p.Name
			unit = " " + p.Unit
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				it.Quantity.String()+unit,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+it.UnitCost.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"$"+it.Subtotal.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// orderTotalsRow: bloque de totales alineado a la derecha.
func orderTotalsRow(order *entity.PurchaseOrder) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Subtotal:"),
			label("IVA 15%:"),
			grandLabel("TOTAL:"),
		),
		col.New(3).Add(
			value("$"+order.Subtotal.StringFixed(2)),
			value("$"+order.IVA.StringFixed(2)),
			grandValue("$"+order.Total.StringFixed(2)),
		),
		col.New(3),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
