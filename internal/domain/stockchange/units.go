// Package stockchange concilia las cantidades de los tramos de stock con las líneas de cambio
// pendientes: matcher de identidad, libro de asignaciones y altas/ediciones de líneas y detalles.
//
// Toda acumulación se hace en unidad de stock; las cantidades en unidad de empaque se derivan
// dividiendo por el factor de conversión vigente.
package stockchange

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockchange-api/internal/domain/entity"
)

var one = decimal.NewFromInt(1)

// ToStockUnit convierte una cantidad en unidad de empaque a unidad de stock.
func ToStockUnit(q, factor decimal.Decimal) decimal.Decimal {
	return q.Mul(normalizeFactor(factor))
}

// ToPackingUnit convierte una cantidad en unidad de stock a unidad de empaque.
func ToPackingUnit(q, factor decimal.Decimal) decimal.Decimal {
	return q.Div(normalizeFactor(factor))
}

// normalizeFactor: un factor no positivo se trata como 1 (unidad de empaque = unidad de stock).
func normalizeFactor(f decimal.Decimal) decimal.Decimal {
	if !f.IsPositive() {
		return one
	}
	return f
}

func recordStockQuantity(r entity.StockRecord) decimal.Decimal {
	return ToStockUnit(r.QuantityInPackingUnit, r.PackingUnitToStockUnitConversionFactor)
}

func detailsStockQuantity(details []entity.StockDetail) decimal.Decimal {
	sum := decimal.Zero
	for _, d := range details {
		sum = sum.Add(d.QuantityInStockUnit)
	}
	return sum
}
