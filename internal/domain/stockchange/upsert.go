package stockchange

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockchange-api/internal/domain"
	"github.com/jhoicas/stockchange-api/internal/domain/entity"
)

// Selection stock elegido por el usuario para la operación OperationKey.
// Quantity se expresa en la unidad de empaque activa (PackingUnit/ConversionFactor);
// si no se informan se usan las del registro. Una unidad distinta a la del registro exige su factor.
type Selection struct {
	OperationKey     int
	Kind             string
	Record           entity.StockRecord
	Quantity         decimal.Decimal
	PackingUnit      *entity.PackingUnit
	ConversionFactor decimal.Decimal
	Destination      entity.Destination
}

func (s Selection) activeUnit() (entity.PackingUnit, decimal.Decimal) {
	unit := s.Record.PackingUnit
	if s.PackingUnit != nil {
		unit = *s.PackingUnit
	}
	factor := s.ConversionFactor
	if !factor.IsPositive() {
		factor = normalizeFactor(s.Record.PackingUnitToStockUnitConversionFactor)
	}
	return unit, factor
}

// stockQuantity valida la cantidad introducida y la devuelve en unidad de stock.
func (s Selection) stockQuantity() (decimal.Decimal, error) {
	if !s.Quantity.IsPositive() {
		return decimal.Zero, domain.ErrInvalidQuantity
	}
	if s.PackingUnit != nil && s.PackingUnit.Code != s.Record.PackingUnit.Code && !s.ConversionFactor.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: la unidad %s requiere factor de conversión", domain.ErrInvalidInput, s.PackingUnit.Code)
	}
	unit, factor := s.activeUnit()
	if !unit.Round(s.Quantity).Equal(s.Quantity) {
		return decimal.Zero, fmt.Errorf("%w: %s admite %d decimales", domain.ErrInvalidQuantity, unit.Code, unit.NumberOfDecimals)
	}
	if err := ValidateDestination(s.Kind, s.Destination); err != nil {
		return decimal.Zero, err
	}
	return ToStockUnit(s.Quantity, factor), nil
}

// ValidateDestination comprueba los campos de destino obligatorios de cada tipo de operación.
func ValidateDestination(kind string, d entity.Destination) error {
	switch kind {
	case "", entity.OperationIssue:
		return nil
	case entity.OperationIntersiteTransfer:
		if d.Site == "" || d.Location == "" {
			return domain.ErrDestinationRequired
		}
		return nil
	case entity.OperationStockChange:
		if d.IsEmpty() {
			return domain.ErrDestinationRequired
		}
		return nil
	}
	return domain.ErrInvalidInput
}

// Select registra (o edita) la cantidad elegida para un stock: localiza o crea la línea de
// (StockID, OperationKey), sobrescribe el detalle coincidente o añade uno nuevo y recalcula la línea.
// Nunca modifica lines; ante un error no devuelve líneas.
func Select(lines []entity.ChangeLine, s Selection) ([]entity.ChangeLine, error) {
	stockQty, err := s.stockQuantity()
	if err != nil {
		return nil, err
	}
	limit := EntryLimitStockQuantity(s.Record, lines, s.OperationKey)
	if stockQty.GreaterThan(limit) {
		return nil, exceeds(s.Record, stockQty, limit)
	}
	out, line := lineFor(lines, s)
	id := s.Record.Identity()
	if i := overwriteTarget(*line, s.Record.SerialNumberManagementMode, id); i >= 0 {
		setDetailQuantity(&line.StockDetails[i], stockQty)
	} else {
		line.StockDetails = append(line.StockDetails, newDetail(s.Record, stockQty))
	}
	RecomputeLine(line)
	return out, nil
}

// Allocate suma la cantidad a lo ya asignado (nuevo escaneo del mismo stock), acotada a lo que queda.
func Allocate(lines []entity.ChangeLine, s Selection) ([]entity.ChangeLine, error) {
	stockQty, err := s.stockQuantity()
	if err != nil {
		return nil, err
	}
	remaining := RemainingStockQuantity(s.Record, lines, s.OperationKey)
	if stockQty.GreaterThan(remaining) {
		return nil, exceeds(s.Record, stockQty, remaining)
	}
	out, line := lineFor(lines, s)
	id := s.Record.Identity()
	if i := overwriteTarget(*line, s.Record.SerialNumberManagementMode, id); i >= 0 {
		d := &line.StockDetails[i]
		setDetailQuantity(d, d.QuantityInStockUnit.Add(stockQty))
	} else {
		line.StockDetails = append(line.StockDetails, newDetail(s.Record, stockQty))
	}
	RecomputeLine(line)
	return out, nil
}

// Unselect quita de la línea de la operación los detalles del registro. Si el registro no estaba
// seleccionado devuelve las líneas sin cambios. La línea vacía se conserva (ver PruneEmptyLines).
func Unselect(lines []entity.ChangeLine, key int, r entity.StockRecord) []entity.ChangeLine {
	out := cloneLines(lines)
	i := FindLine(out, r.StockID, key)
	if i < 0 {
		return out
	}
	line := &out[i]
	if !r.SerialNumberManagementMode.IsGlobal() {
		line.StockDetails = nil
	} else {
		kept := line.StockDetails[:0]
		id := r.Identity()
		for _, d := range line.StockDetails {
			if !IsMatch(r.SerialNumberManagementMode, id, d.Identity()) {
				kept = append(kept, d)
			}
		}
		line.StockDetails = kept
	}
	RecomputeLine(line)
	return out
}

// RemoveDetail elimina el detalle index de la línea (StockID, key): deshace el último rango añadido.
func RemoveDetail(lines []entity.ChangeLine, key int, stockID string, index int) ([]entity.ChangeLine, error) {
	i := FindLine(lines, stockID, key)
	if i < 0 || index < 0 || index >= len(lines[i].StockDetails) {
		return nil, domain.ErrLineNotFound
	}
	out := cloneLines(lines)
	line := &out[i]
	line.StockDetails = append(line.StockDetails[:index], line.StockDetails[index+1:]...)
	RecomputeLine(line)
	return out, nil
}

// PruneEmptyLines descarta las líneas sin detalles.
func PruneEmptyLines(lines []entity.ChangeLine) []entity.ChangeLine {
	out := make([]entity.ChangeLine, 0, len(lines))
	for _, l := range lines {
		if len(l.StockDetails) > 0 {
			out = append(out, l.Clone())
		}
	}
	return out
}

// RecomputeLine deriva las cantidades de la línea de sus detalles: suma en unidad de stock
// y división por el factor de la unidad de empaque activa de la línea.
func RecomputeLine(line *entity.ChangeLine) {
	sum := detailsStockQuantity(line.StockDetails)
	line.QuantityInStockUnit = sum
	line.QuantityInPackingUnit = ToPackingUnit(sum, line.PackingUnitToStockUnitConversionFactor)
}

// lineFor clona las líneas y devuelve la de (StockID, OperationKey), creándola si no existe.
// La unidad activa y el destino de la selección se escriben en la línea.
func lineFor(lines []entity.ChangeLine, s Selection) ([]entity.ChangeLine, *entity.ChangeLine) {
	out := cloneLines(lines)
	i := FindLine(out, s.Record.StockID, s.OperationKey)
	if i < 0 {
		out = append(out, entity.ChangeLine{
			LineNumber: s.OperationKey,
			StockID:    s.Record.StockID,
			Product:    s.Record.Product,
		})
		i = len(out) - 1
	}
	line := &out[i]
	line.PackingUnit, line.PackingUnitToStockUnitConversionFactor = s.activeUnit()
	if !s.Destination.IsEmpty() {
		line.Destination = s.Destination
	}
	return out, line
}

func newDetail(r entity.StockRecord, stockQty decimal.Decimal) entity.StockDetail {
	d := entity.StockDetail{
		PackingUnit:                            r.PackingUnit,
		PackingUnitToStockUnitConversionFactor: r.PackingUnitToStockUnitConversionFactor,
		Location:                               r.Location,
		Status:                                 r.Status,
		Lot:                                    r.Lot,
		Sublot:                                 r.Sublot,
		Identifier1:                            r.Identifier1,
		Identifier2:                            r.Identifier2,
		LicensePlateNumber:                     r.LicensePlateNumber,
		StockUnit:                              r.StockUnit,
	}
	if !r.SerialNumberManagementMode.IsGlobal() {
		d.SerialNumber = r.SerialNumber
	}
	setDetailQuantity(&d, stockQty)
	return d
}

func setDetailQuantity(d *entity.StockDetail, stockQty decimal.Decimal) {
	d.QuantityInStockUnit = stockQty
	d.QuantityInPackingUnit = ToPackingUnit(stockQty, d.PackingUnitToStockUnitConversionFactor)
}

func cloneLines(lines []entity.ChangeLine) []entity.ChangeLine {
	out := make([]entity.ChangeLine, len(lines), len(lines)+1)
	for i, l := range lines {
		out[i] = l.Clone()
	}
	return out
}

func exceeds(r entity.StockRecord, asked, limit decimal.Decimal) error {
	return fmt.Errorf("%w: stock %s, solicitado %s, disponible %s %s",
		domain.ErrQuantityExceedsRemaining, r.StockID, asked.String(), decimal.Max(limit, decimal.Zero).String(), r.StockUnit)
}
