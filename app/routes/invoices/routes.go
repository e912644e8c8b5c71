package invoices

import (
	"github.com/gofiber/fiber/v2"

	"tuition-admin/app/config"
	"tuition-admin/app/invoices"
	"tuition-admin/app/routes/auth"
)

// SetupInvoicesRoutes registers the invoice routes. The renderer is built
// once at startup so template problems surface before the first request.
func SetupInvoicesRoutes(app *fiber.App, renderer *invoices.Renderer) {
	api := app.Group("/api/invoices")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetInvoiceListAPI(c, config.GetDB())
	})

	api.Get("/next-number", func(c *fiber.Ctx) error {
		return GetNextNumberAPI(c, config.GetDB())
	})

	api.Post("/generate/:id", func(c *fiber.Ctx) error {
		return GenerateInvoiceAPI(c, config.GetDB(), renderer)
	})

	api.Post("/generate", func(c *fiber.Ctx) error {
		return GenerateBulkAPI(c, config.GetDB(), renderer)
	})
}
