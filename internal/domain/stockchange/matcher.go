package stockchange

import "github.com/jhoicas/stockchange-api/internal/domain/entity"

// IsMatch decide si dos identidades se refieren al mismo tramo físico de stock.
// En modo globalReceivedIssued el serial no participa: un detalle agrupa muchos seriales.
func IsMatch(mode entity.SerialNumberMode, a, b entity.StockIdentity) bool {
	a, b = a.Normalized(), b.Normalized()
	if a.PackingUnit != b.PackingUnit ||
		!a.ConversionFactor.Equal(b.ConversionFactor) ||
		a.Location != b.Location ||
		a.LicensePlate != b.LicensePlate ||
		a.Lot != b.Lot ||
		a.Status != b.Status ||
		a.Sublot != b.Sublot ||
		a.Identifier1 != b.Identifier1 ||
		a.Identifier2 != b.Identifier2 {
		return false
	}
	if mode.IsGlobal() {
		return true
	}
	return a.SerialNumber == b.SerialNumber
}

// FindLine devuelve el índice de la línea de (stockID, key) o -1.
func FindLine(lines []entity.ChangeLine, stockID string, key int) int {
	for i := range lines {
		if lines[i].StockID == stockID && lines[i].LineNumber == key {
			return i
		}
	}
	return -1
}

// FindDetail devuelve el índice del primer detalle de la línea que coincide con id, o -1.
func FindDetail(line entity.ChangeLine, mode entity.SerialNumberMode, id entity.StockIdentity) int {
	for i, d := range line.StockDetails {
		if IsMatch(mode, id, d.Identity()) {
			return i
		}
	}
	return -1
}

// overwriteTarget detalle que una selección sobrescribe: el que coincide, salvo rangos de seriales,
// que solo se añaden o se quitan.
func overwriteTarget(line entity.ChangeLine, mode entity.SerialNumberMode, id entity.StockIdentity) int {
	for i, d := range line.StockDetails {
		if mode.IsGlobal() && d.IsRange() {
			continue
		}
		if IsMatch(mode, id, d.Identity()) {
			return i
		}
	}
	return -1
}
