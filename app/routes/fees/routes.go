package fees

import (
	"github.com/gofiber/fiber/v2"

	"tuition-admin/app/config"
	"tuition-admin/app/routes/auth"
)

// SetupFeesRoutes registers the fee template routes.
func SetupFeesRoutes(app *fiber.App) {
	api := app.Group("/api/fees")
	api.Use(auth.AuthMiddleware)

	api.Get("/templates", func(c *fiber.Ctx) error {
		return GetFeeTemplatesAPI(c, config.GetDB())
	})

	api.Post("/templates", func(c *fiber.Ctx) error {
		return CreateFeeTemplateAPI(c, config.GetDB())
	})

	api.Put("/templates/:id", func(c *fiber.Ctx) error {
		return UpdateFeeTemplateAPI(c, config.GetDB())
	})

	api.Delete("/templates/:id", func(c *fiber.Ctx) error {
		return DeleteFeeTemplateAPI(c, config.GetDB())
	})

	api.Post("/apply", func(c *fiber.Ctx) error {
		return ApplyFeesAPI(c, config.GetDB())
	})
}
