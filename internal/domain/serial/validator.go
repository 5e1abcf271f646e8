package serial

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/stockchange-api/internal/domain"
	"github.com/jhoicas/stockchange-api/internal/domain/repository"
)

// Range rango contiguo de seriales, extremos inclusivos.
type Range struct {
	Start string
	End   string
}

// RangesOverlap compara los sufijos numéricos de dos rangos. Prefijos distintos nunca se superponen.
func RangesOverlap(aStart, aEnd, bStart, bEnd string) bool {
	ap, as, ok := Split(aStart)
	if !ok {
		return false
	}
	_, ae, ok := Split(aEnd)
	if !ok {
		return false
	}
	bp, bs, ok := Split(bStart)
	if !ok {
		return false
	}
	_, be, ok := Split(bEnd)
	if !ok {
		return false
	}
	if ap != bp {
		return false
	}
	return suffixValue(as).LessThanOrEqual(suffixValue(be)) &&
		suffixValue(ae).GreaterThanOrEqual(suffixValue(bs))
}

// ValidateNoOverlap rechaza el candidato si se superpone con alguno de los rangos existentes.
func ValidateNoOverlap(candidate Range, existing []Range) error {
	for _, r := range existing {
		if RangesOverlap(candidate.Start, candidate.End, r.Start, r.End) {
			return fmt.Errorf("%w: %s-%s con %s-%s", domain.ErrSerialRangeOverlap, candidate.Start, candidate.End, r.Start, r.End)
		}
	}
	return nil
}

// ValidateSequentialCount exige que el oráculo cuente exactamente expected seriales existentes en el rango.
// Un fallo del oráculo se propaga tal cual: no se reintenta ni se supone un conteo.
func ValidateSequentialCount(ctx context.Context, counter repository.SerialNumberCounter, q repository.SerialCountQuery, expected int64) error {
	n, err := counter.CountSerialNumbers(ctx, q)
	if err != nil {
		return fmt.Errorf("contar números de serie: %w", err)
	}
	if n != expected {
		return fmt.Errorf("%w: %d de %d entre %s y %s", domain.ErrSerialNotSequential, n, expected, q.Start, q.End)
	}
	return nil
}

// RangeCheck datos de un rango propuesto para un producto de una planta/stock.
type RangeCheck struct {
	Product string
	Site    string
	StockID string
	Start   string
	// ExpectedEnd serial final que ve el usuario; vacío si no hay ninguno que contrastar.
	ExpectedEnd string
	Count       int64
	Existing    []Range
}

// Validator valida rangos contra los rangos pendientes y contra el oráculo de existencia.
type Validator struct {
	counter repository.SerialNumberCounter
}

// NewValidator construye el validador.
func NewValidator(counter repository.SerialNumberCounter) *Validator {
	return &Validator{counter: counter}
}

// Validate aplica, en orden: inicial obligatorio, superposición, tamaño del rango y secuencialidad.
// El oráculo solo se consulta si las comprobaciones locales pasan.
func (v *Validator) Validate(ctx context.Context, c RangeCheck) (Range, error) {
	start := strings.TrimSpace(c.Start)
	if start == "" {
		return Range{}, domain.ErrSerialStartRequired
	}
	end, err := EndingSerial(start, c.Count)
	if err != nil {
		return Range{}, err
	}
	candidate := Range{Start: start, End: end}
	if err := ValidateNoOverlap(candidate, c.Existing); err != nil {
		return Range{}, err
	}
	if expected := strings.TrimSpace(c.ExpectedEnd); expected != "" && expected != end {
		return Range{}, fmt.Errorf("%w: se esperaba %s, calculado %s", domain.ErrSerialRangeSizeMismatch, expected, end)
	}
	q := repository.SerialCountQuery{
		Product: c.Product,
		Site:    c.Site,
		StockID: c.StockID,
		Start:   start,
		End:     end,
	}
	if err := ValidateSequentialCount(ctx, v.counter, q, c.Count); err != nil {
		return Range{}, err
	}
	return candidate, nil
}
