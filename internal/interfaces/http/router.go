package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockchange-api/internal/application/stockchange"
)

// Roles con acceso a las sesiones de cambio de stock.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockChangeUC *stockchange.UseCase
	JWTSecret     string
	JWTIssuer     string
	AppName       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token y rol de almacén)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer), RequireRole(RoleAdmin, RoleBodeguero))

	sessions := protected.Group("/stock-changes/sessions")
	h := NewStockChangeHandler(deps.StockChangeUC)
	sessions.Post("/", h.StartSession)
	sessions.Get("/:id", h.GetSession)
	sessions.Delete("/:id", h.DeleteSession)
	sessions.Post("/:id/select", h.Select)
	sessions.Post("/:id/allocate", h.Allocate)
	sessions.Post("/:id/unselect", h.Unselect)
	sessions.Post("/:id/serial-ranges", h.AddSerialRange)
	sessions.Delete("/:id/lines/:line/stock/:stock/details/:index", h.RemoveDetail)
	sessions.Get("/:id/quantities/:stock", h.Quantities)
	sessions.Post("/:id/submit", h.Submit)
	sessions.Get("/:id/pdf", h.PendingDocumentPDF)
}
