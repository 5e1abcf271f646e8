package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockchange-api/internal/application/dto"
	"github.com/jhoicas/stockchange-api/internal/domain"
)

// errorMappings traduce errores de dominio a status HTTP. El primero que coincide gana.
var errorMappings = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrSessionNotFound, fiber.StatusNotFound, "SESSION_NOT_FOUND"},
	{domain.ErrLineNotFound, fiber.StatusNotFound, "LINE_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrQuantityExceedsRemaining, fiber.StatusConflict, "QUANTITY_EXCEEDS_REMAINING"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrInvalidQuantity, fiber.StatusUnprocessableEntity, "INVALID_QUANTITY"},
	{domain.ErrDestinationRequired, fiber.StatusUnprocessableEntity, "DESTINATION_REQUIRED"},
	{domain.ErrSerialStartRequired, fiber.StatusUnprocessableEntity, "SERIAL_START_REQUIRED"},
	{domain.ErrSerialRangeOverlap, fiber.StatusUnprocessableEntity, "SERIAL_RANGE_OVERLAP"},
	{domain.ErrSerialRangeSizeMismatch, fiber.StatusUnprocessableEntity, "SERIAL_RANGE_SIZE_MISMATCH"},
	{domain.ErrSerialNotSequential, fiber.StatusUnprocessableEntity, "SERIAL_NOT_SEQUENTIAL"},
	{domain.ErrSerialRangeNotAllowed, fiber.StatusUnprocessableEntity, "SERIAL_RANGE_NOT_ALLOWED"},
	{domain.ErrSerialWithoutNumericSuffix, fiber.StatusUnprocessableEntity, "SERIAL_WITHOUT_NUMERIC_SUFFIX"},
	{domain.ErrInvalidSerialCount, fiber.StatusUnprocessableEntity, "INVALID_SERIAL_COUNT"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
}

// writeError responde con el status del error de dominio; lo desconocido es 500.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
