package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// Errores de validación del motor de cambios de stock. Ninguno es fatal: el usuario corrige y reintenta.
var (
	ErrInvalidQuantity          = errors.New("la cantidad debe ser mayor que cero")
	ErrQuantityExceedsRemaining = errors.New("la cantidad supera la cantidad disponible")
	ErrDestinationRequired      = errors.New("faltan campos obligatorios de destino")
	ErrLineNotFound             = errors.New("línea de cambio no encontrada")
	ErrSessionNotFound          = errors.New("sesión de cambio no encontrada")
)

// Errores de rangos de números de serie, uno por caso para que el caller muestre un mensaje a medida.
var (
	ErrSerialStartRequired        = errors.New("el número de serie inicial es obligatorio")
	ErrSerialRangeOverlap         = errors.New("el rango de números de serie se superpone con otro rango")
	ErrSerialRangeSizeMismatch    = errors.New("el número de serie final no corresponde a la cantidad")
	ErrSerialNotSequential        = errors.New("los números de serie no son secuenciales")
	ErrSerialRangeNotAllowed      = errors.New("el producto no admite rangos de números de serie")
	ErrSerialWithoutNumericSuffix = errors.New("el número de serie no termina en dígitos")
	ErrInvalidSerialCount         = errors.New("la cantidad de números de serie debe ser al menos 1")
)
