package stockchange

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockchange-api/internal/domain/entity"
)

// OriginStockQuantity cantidad del registro en unidad de stock, menos lo reservado por otros procesos
// y lo que ya consumieron otras operaciones (otro LineNumber) de la misma sesión sobre el mismo stock.
func OriginStockQuantity(r entity.StockRecord, lines []entity.ChangeLine, key int) decimal.Decimal {
	q := recordStockQuantity(r).Sub(r.AllocatedQuantity)
	for _, l := range lines {
		if l.StockID == r.StockID && l.LineNumber != key {
			q = q.Sub(detailsStockQuantity(l.StockDetails))
		}
	}
	return q
}

// RemainingStockQuantity origen menos lo que la operación actual ya asignó sobre el stock.
func RemainingStockQuantity(r entity.StockRecord, lines []entity.ChangeLine, key int) decimal.Decimal {
	q := OriginStockQuantity(r, lines, key)
	if i := FindLine(lines, r.StockID, key); i >= 0 {
		q = q.Sub(detailsStockQuantity(lines[i].StockDetails))
	}
	return q
}

// EntryLimitStockQuantity máximo que el usuario puede introducir al seleccionar el registro.
// El detalle que la selección sobrescribe libera su propia cantidad.
func EntryLimitStockQuantity(r entity.StockRecord, lines []entity.ChangeLine, key int) decimal.Decimal {
	q := RemainingStockQuantity(r, lines, key)
	if i := FindLine(lines, r.StockID, key); i >= 0 {
		if d := overwriteTarget(lines[i], r.SerialNumberManagementMode, r.Identity()); d >= 0 {
			q = q.Add(lines[i].StockDetails[d].QuantityInStockUnit)
		}
	}
	return q
}

// EntryLimitQuantity EntryLimitStockQuantity en la unidad de empaque del registro.
func EntryLimitQuantity(r entity.StockRecord, lines []entity.ChangeLine, key int) decimal.Decimal {
	return inRecordUnit(r, EntryLimitStockQuantity(r, lines, key))
}

// OriginQuantity OriginStockQuantity en la unidad de empaque del registro.
func OriginQuantity(r entity.StockRecord, lines []entity.ChangeLine, key int) decimal.Decimal {
	return inRecordUnit(r, OriginStockQuantity(r, lines, key))
}

// RemainingQuantity RemainingStockQuantity en la unidad de empaque del registro.
func RemainingQuantity(r entity.StockRecord, lines []entity.ChangeLine, key int) decimal.Decimal {
	return inRecordUnit(r, RemainingStockQuantity(r, lines, key))
}

// QuantityToMove cantidad sugerida: la del detalle coincidente o la del registro si aún no hay detalle,
// acotada a lo que se puede introducir.
func QuantityToMove(r entity.StockRecord, lines []entity.ChangeLine, key int) decimal.Decimal {
	q := recordStockQuantity(r)
	if i := FindLine(lines, r.StockID, key); i >= 0 {
		if d := FindDetail(lines[i], r.SerialNumberManagementMode, r.Identity()); d >= 0 {
			q = lines[i].StockDetails[d].QuantityInStockUnit
		}
	}
	q = decimal.Min(q, EntryLimitStockQuantity(r, lines, key))
	return inRecordUnit(r, q)
}

// ClampToRemaining acota una cantidad propuesta (unidad de empaque del registro) a lo que queda.
func ClampToRemaining(r entity.StockRecord, lines []entity.ChangeLine, key int, proposed decimal.Decimal) decimal.Decimal {
	return decimal.Min(proposed, RemainingQuantity(r, lines, key))
}

// inRecordUnit pasa a la unidad de empaque del registro, sin negativos y truncado a su escala.
func inRecordUnit(r entity.StockRecord, stockQty decimal.Decimal) decimal.Decimal {
	if stockQty.IsNegative() {
		return decimal.Zero
	}
	return r.PackingUnit.Round(ToPackingUnit(stockQty, r.PackingUnitToStockUnitConversionFactor))
}
