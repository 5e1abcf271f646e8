// Package pdf genera el resumen imprimible de un documento de cambio de stock aún no enviado.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: tipo de operación + planta │ sesión + fecha + QR    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Línea | Stock | Producto | Cant. | Unidad | Destino  │
//	│     detalle: ubicación / lote / seriales / cantidad          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: líneas y unidades de stock por unidad               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockchange-api/internal/application/stockchange"
	"github.com/jhoicas/stockchange-api/internal/domain/entity"
)

var _ stockchange.PendingDocumentPDFGenerator = (*MarotoPDFGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var kindTitles = map[string]string{
	entity.OperationIssue:             "SALIDA MISCELÁNEA",
	entity.OperationIntersiteTransfer: "TRASLADO ENTRE PLANTAS",
	entity.OperationStockChange:       "CAMBIO DE STOCK",
}

// MarotoPDFGenerator implementa stockchange.PendingDocumentPDFGenerator con Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GeneratePendingDocumentPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GeneratePendingDocumentPDF(_ context.Context, s *entity.ChangeSession) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Documento de cambio de stock", true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(s, time.Now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, l := range s.Lines {
		m.AddRows(lineRow(l))
		for _, d := range l.StockDetails {
			m.AddRows(detailRow(d))
		}
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(s.Lines))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(s *entity.ChangeSession, now time.Time) core.Row {
	title := kindTitles[s.Kind]
	if title == "" {
		title = strings.ToUpper(s.Kind)
	}
	return row.New(24).Add(
		col.New(6).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Planta: "+s.Site, props.Text{Size: 9, Top: 9, Color: colorGray}),
			text.New("PENDIENTE DE ENVÍO", props.Text{Style: fontstyle.Bold, Size: 8, Top: 15}),
		),
		col.New(4).Add(
			text.New("Sesión", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1}),
			text.New(s.ID, props.Text{Size: 7, Align: align.Right, Top: 6, Color: colorGray}),
			text.New("Fecha: "+now.Format("02/01/2006 15:04"), props.Text{Size: 8, Align: align.Right, Top: 12, Color: colorGray}),
		),
		col.New(2).Add(code.NewQr(s.ID, props.Rect{Percent: 90, Center: true})),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Línea", 1, align.Center),
		h("Stock", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Cantidad", 2, align.Right),
		h("Unidad", 1, align.Center),
		h("Destino", 3, align.Left),
	)
}

func lineRow(l entity.ChangeLine) core.Row {
	cell := func(s string, size int, a align.Type, style fontstyle.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Style: style, Top: 1, Left: 1, Right: 1}))
	}
	return row.New(6).Add(
		cell(fmt.Sprint(l.LineNumber), 1, align.Center, fontstyle.Bold),
		cell(l.StockID, 2, align.Left, fontstyle.Normal),
		cell(l.Product, 3, align.Left, fontstyle.Bold),
		cell(l.QuantityInPackingUnit.String(), 2, align.Right, fontstyle.Bold),
		cell(l.PackingUnit.Code, 1, align.Center, fontstyle.Normal),
		cell(destinationLabel(l.Destination), 3, align.Left, fontstyle.Normal),
	)
}

func detailRow(d entity.StockDetail) core.Row {
	return row.New(5).Add(
		col.New(3),
		col.New(6).Add(text.New(detailLabel(d), props.Text{Size: 7, Color: colorGray, Top: 0.5, Left: 1})),
		col.New(2).Add(text.New(
			d.QuantityInStockUnit.String()+" "+d.StockUnit,
			props.Text{Size: 7, Color: colorGray, Align: align.Right, Top: 0.5, Right: 1},
		)),
		col.New(1),
	)
}

// totalsRow número de líneas y suma en unidad de stock, por unidad.
func totalsRow(lines []entity.ChangeLine) core.Row {
	sums := map[string]decimal.Decimal{}
	for _, l := range lines {
		for _, d := range l.StockDetails {
			sums[d.StockUnit] = sums[d.StockUnit].Add(d.QuantityInStockUnit)
		}
	}
	units := make([]string, 0, len(sums))
	for u := range sums {
		units = append(units, u)
	}
	sort.Strings(units)
	parts := make([]string, 0, len(units))
	for _, u := range units {
		parts = append(parts, strings.TrimSpace(sums[u].String()+" "+u))
	}
	return row.New(10).Add(
		col.New(6).Add(text.New(fmt.Sprintf("Líneas: %d", len(lines)), props.Text{Style: fontstyle.Bold, Size: 9, Top: 2})),
		col.New(6).Add(text.New("Total: "+nonEmpty(strings.Join(parts, "  |  "), "0"), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

func destinationLabel(d entity.Destination) string {
	var parts []string
	if d.Site != "" {
		parts = append(parts, d.Site)
	}
	if d.Location != "" {
		parts = append(parts, d.Location)
	}
	if d.Status != "" {
		parts = append(parts, "estado "+d.Status)
	}
	if d.PackingUnit != nil {
		parts = append(parts, d.PackingUnit.Code)
	}
	if d.LicensePlateNumber != "" {
		parts = append(parts, "LPN "+d.LicensePlateNumber)
	}
	return nonEmpty(strings.Join(parts, " / "), "—")
}

func detailLabel(d entity.StockDetail) string {
	var parts []string
	if d.Location != "" {
		parts = append(parts, "Ubic. "+d.Location)
	}
	if d.Lot != "" {
		lot := "Lote " + d.Lot
		if d.Sublot != "" {
			lot += "/" + d.Sublot
		}
		parts = append(parts, lot)
	}
	if d.SerialNumber != "" {
		if d.EndingSerialNumber != "" && d.EndingSerialNumber != d.SerialNumber {
			parts = append(parts, "Seriales "+d.SerialNumber+" → "+d.EndingSerialNumber)
		} else {
			parts = append(parts, "Serial "+d.SerialNumber)
		}
	}
	if d.LicensePlateNumber != "" {
		parts = append(parts, "LPN "+d.LicensePlateNumber)
	}
	return nonEmpty(strings.Join(parts, "  ·  "), "—")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
