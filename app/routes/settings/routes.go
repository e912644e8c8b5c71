package settings

import (
	"github.com/gofiber/fiber/v2"

	"tuition-admin/app/config"
	"tuition-admin/app/routes/auth"
)

// SetupSettingsRoutes registers the settings routes.
func SetupSettingsRoutes(app *fiber.App) {
	api := app.Group("/api/settings")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetSettingsAPI(c, config.GetDB())
	})

	api.Put("/", func(c *fiber.Ctx) error {
		return UpdateSettingsAPI(c, config.GetDB())
	})
}
