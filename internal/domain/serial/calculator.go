// Package serial calcula y valida rangos contiguos de números de serie.
// Toda la aritmética opera sobre el sufijo numérico final; el prefijo se conserva tal cual.
package serial

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockchange-api/internal/domain"
)

var trailingDigits = regexp.MustCompile(`[0-9]+$`)

// MaxSuffixDigits dígitos significativos que admiten los catálogos de seriales (NUMERIC(40, 0)).
const MaxSuffixDigits = 40

// SuffixFits indica si el sufijo cabe en un catálogo; los ceros a la izquierda no cuentan.
func SuffixFits(digits string) bool {
	return len(strings.TrimLeft(digits, "0")) <= MaxSuffixDigits
}

// Split separa el serial en prefijo y sufijo numérico final (la racha máxima de dígitos).
func Split(s string) (prefix, digits string, ok bool) {
	loc := trailingDigits.FindStringIndex(s)
	if loc == nil {
		return s, "", false
	}
	return s[:loc[0]], s[loc[0]:], true
}

// NextSerial incrementa en 1 el sufijo numérico. Sin dígitos finales devuelve el serial sin cambios.
// A099 → A100, A999 → A1000.
func NextSerial(s string) string {
	prefix, digits, ok := Split(s)
	if !ok {
		return s
	}
	return prefix + addToDigits(digits, 1)
}

// EndingSerial calcula el serial final de un rango de count unidades que empieza en start.
func EndingSerial(start string, count int64) (string, error) {
	if count < 1 {
		return "", domain.ErrInvalidSerialCount
	}
	prefix, digits, ok := Split(start)
	if !ok {
		return "", domain.ErrSerialWithoutNumericSuffix
	}
	return prefix + addToDigits(digits, count-1), nil
}

// Count devuelve el tamaño (inclusivo) del rango start..end. Ambos extremos deben compartir prefijo.
func Count(start, end string) (int64, error) {
	sp, sd, ok := Split(start)
	if !ok {
		return 0, domain.ErrSerialWithoutNumericSuffix
	}
	ep, ed, ok := Split(end)
	if !ok {
		return 0, domain.ErrSerialWithoutNumericSuffix
	}
	if sp != ep {
		return 0, domain.ErrSerialRangeSizeMismatch
	}
	n := suffixValue(ed).Sub(suffixValue(sd)).Add(decimal.NewFromInt(1))
	if n.LessThan(decimal.NewFromInt(1)) {
		return 0, domain.ErrSerialRangeSizeMismatch
	}
	return n.IntPart(), nil
}

// addToDigits suma n al sufijo y rellena con ceros hasta el ancho original (crece si desborda).
func addToDigits(digits string, n int64) string {
	v := suffixValue(digits).Add(decimal.NewFromInt(n))
	out := v.String()
	if len(out) < len(digits) {
		out = strings.Repeat("0", len(digits)-len(out)) + out
	}
	return out
}

// suffixValue valor entero exacto del sufijo, sin límite de longitud.
func suffixValue(digits string) decimal.Decimal {
	return decimal.RequireFromString(digits)
}
