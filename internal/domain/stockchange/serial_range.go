package stockchange

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockchange-api/internal/domain"
	"github.com/jhoicas/stockchange-api/internal/domain/entity"
	"github.com/jhoicas/stockchange-api/internal/domain/serial"
)

// SerialRangeRequest rango de seriales a añadir sobre un stock de gestión global.
// Quantity (en Selection) es el número de unidades en la unidad de empaque activa.
type SerialRangeRequest struct {
	Selection
	StartingSerial string
	// EndingSerial serial final mostrado al usuario; vacío si no hay que contrastarlo.
	EndingSerial string
	// PendingRanges filas de la lista de pantalla aún no confirmadas en las líneas.
	PendingRanges []entity.SerialRange
}

// AddSerialRange valida el rango y lo añade como un detalle nuevo de la línea (nunca se fusiona con
// otro rango, aunque sea contiguo). Todo o nada: si algo falla no se devuelven líneas.
func AddSerialRange(ctx context.Context, lines []entity.ChangeLine, req SerialRangeRequest, v *serial.Validator) ([]entity.ChangeLine, error) {
	r := req.Record
	if !r.SerialNumberManagementMode.IsGlobal() {
		return nil, domain.ErrSerialRangeNotAllowed
	}
	stockQty, err := req.stockQuantity()
	if err != nil {
		return nil, err
	}
	if !stockQty.IsInteger() {
		return nil, fmt.Errorf("%w: %s unidades no es un número entero de seriales", domain.ErrInvalidQuantity, stockQty.String())
	}
	remaining := RemainingStockQuantity(r, lines, req.OperationKey)
	if stockQty.GreaterThan(remaining) {
		return nil, exceeds(r, stockQty, remaining)
	}

	existing := ReservedRanges(lines, r.Product)
	for _, p := range req.PendingRanges {
		if p.Product == "" || p.Product == r.Product {
			existing = append(existing, serial.Range{Start: p.Start, End: p.End})
		}
	}
	rng, err := v.Validate(ctx, serial.RangeCheck{
		Product:     r.Product,
		Site:        r.Site,
		StockID:     r.StockID,
		Start:       req.StartingSerial,
		ExpectedEnd: req.EndingSerial,
		Count:       stockQty.IntPart(),
		Existing:    existing,
	})
	if err != nil {
		return nil, err
	}

	out, line := lineFor(lines, req.Selection)
	d := newDetail(r, stockQty)
	d.SerialNumber = rng.Start
	d.EndingSerialNumber = rng.End
	line.StockDetails = append(line.StockDetails, d)
	RecomputeLine(line)
	return out, nil
}

// ReservedRanges rangos de seriales ya reservados para el producto en todas las líneas pendientes.
// Un detalle con un único serial cuenta como rango de tamaño 1.
func ReservedRanges(lines []entity.ChangeLine, product string) []serial.Range {
	var ranges []serial.Range
	for _, l := range lines {
		if l.Product != product {
			continue
		}
		for _, d := range l.StockDetails {
			if d.SerialNumber == "" {
				continue
			}
			end := d.EndingSerialNumber
			if end == "" {
				end = d.SerialNumber
			}
			ranges = append(ranges, serial.Range{Start: d.SerialNumber, End: end})
		}
	}
	return ranges
}
