package payments

import (
	"github.com/gofiber/fiber/v2"

	"tuition-admin/app/config"
	"tuition-admin/app/routes/auth"
)

// SetupPaymentsRoutes registers the payment routes.
func SetupPaymentsRoutes(app *fiber.App) {
	api := app.Group("/api/payments")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetPaymentsAPI(c, config.GetDB())
	})

	api.Post("/", func(c *fiber.Ctx) error {
		return CreatePaymentAPI(c, config.GetDB())
	})

	api.Delete("/:id", func(c *fiber.Ctx) error {
		return DeletePaymentAPI(c, config.GetDB())
	})
}
