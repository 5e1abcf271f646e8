package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockchange-api/internal/application/dto"
	"github.com/jhoicas/stockchange-api/internal/application/stockchange"
)

// StockChangeHandler maneja las sesiones de salida, traslado y cambio de stock (protegido).
type StockChangeHandler struct {
	uc       *stockchange.UseCase
	validate *validator.Validate
}

// NewStockChangeHandler construye el handler.
func NewStockChangeHandler(uc *stockchange.UseCase) *StockChangeHandler {
	return &StockChangeHandler{uc: uc, validate: validator.New()}
}

// StartSession godoc
// @Summary      Abrir sesión de cambio de stock
// @Tags         stock-changes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartSessionRequest  true  "kind (issue|intersiteTransfer|stockChange), site"
// @Success      201   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock-changes/sessions [post]
func (h *StockChangeHandler) StartSession(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.StartSessionRequest
	if ok, err := h.bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.StartSession(c.Context(), companyID, userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetSession devuelve la sesión con sus líneas.
// GET /api/stock-changes/sessions/:id
func (h *StockChangeHandler) GetSession(c *fiber.Ctx) error {
	out, err := h.uc.GetSession(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteSession abandona la sesión.
// DELETE /api/stock-changes/sessions/:id
func (h *StockChangeHandler) DeleteSession(c *fiber.Ctx) error {
	if err := h.uc.DeleteSession(c.Context(), GetCompanyID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Select godoc
// @Summary      Elegir (o editar) la cantidad de un stock
// @Tags         stock-changes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "Sesión"
// @Param        body  body  dto.SelectionRequest  true  "line_number, stock_id, quantity, packing_unit, destination"
// @Success      200   {object}  dto.SessionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock-changes/sessions/{id}/select [post]
func (h *StockChangeHandler) Select(c *fiber.Ctx) error {
	var in dto.SelectionRequest
	if ok, err := h.bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Select(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Allocate suma la cantidad a lo ya elegido (escaneo repetido).
// POST /api/stock-changes/sessions/:id/allocate
func (h *StockChangeHandler) Allocate(c *fiber.Ctx) error {
	var in dto.SelectionRequest
	if ok, err := h.bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Allocate(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Unselect quita el stock de la operación.
// POST /api/stock-changes/sessions/:id/unselect
func (h *StockChangeHandler) Unselect(c *fiber.Ctx) error {
	var in dto.UnselectRequest
	if ok, err := h.bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Unselect(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddSerialRange godoc
// @Summary      Añadir un rango de números de serie
// @Tags         stock-changes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "Sesión"
// @Param        body  body  dto.SerialRangeRequest  true  "starting_serial, ending_serial, quantity, pending_ranges"
// @Success      200   {object}  dto.SessionResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock-changes/sessions/{id}/serial-ranges [post]
func (h *StockChangeHandler) AddSerialRange(c *fiber.Ctx) error {
	var in dto.SerialRangeRequest
	if ok, err := h.bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.AddSerialRange(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemoveDetail elimina un detalle de la línea.
// DELETE /api/stock-changes/sessions/:id/lines/:line/stock/:stock/details/:index
func (h *StockChangeHandler) RemoveDetail(c *fiber.Ctx) error {
	line, err := c.ParamsInt("line")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "line debe ser numérico"})
	}
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "index debe ser numérico"})
	}
	out, err := h.uc.RemoveDetail(c.Context(), GetCompanyID(c), c.Params("id"), line, c.Params("stock"), index)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Quantities cantidades de origen, restante y sugerida de un stock.
// GET /api/stock-changes/sessions/:id/quantities/:stock?line=1
func (h *StockChangeHandler) Quantities(c *fiber.Ctx) error {
	line := c.QueryInt("line", 1)
	if line < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "line debe ser mayor que cero"})
	}
	out, err := h.uc.Quantities(c.Context(), GetCompanyID(c), c.Params("id"), c.Params("stock"), line)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Enviar el documento de la sesión
// @Tags         stock-changes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Sesión"
// @Success      201  {object}  dto.DocumentPayload
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock-changes/sessions/{id}/submit [post]
func (h *StockChangeHandler) Submit(c *fiber.Ctx) error {
	out, err := h.uc.Submit(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PendingDocumentPDF descarga el resumen imprimible de la sesión.
// GET /api/stock-changes/sessions/:id/pdf
func (h *StockChangeHandler) PendingDocumentPDF(c *fiber.Ctx) error {
	out, filename, err := h.uc.PendingDocumentPDF(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(out)
}

// bind lee el body y aplica las reglas `validate`. Con ok=false la respuesta 400 ya está escrita
// y el handler devuelve err tal cual.
func (h *StockChangeHandler) bind(c *fiber.Ctx, out interface{}) (ok bool, err error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.validate.Struct(out); err != nil {
		msg := err.Error()
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
			}
			msg = strings.Join(msgs, "; ")
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
	}
	return true, nil
}
