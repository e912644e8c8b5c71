package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"tuition-admin/app/config"
	"tuition-admin/app/routes/auth"
)

// SetupDashboardRoutes registers the overview routes.
func SetupDashboardRoutes(app *fiber.App) {
	api := app.Group("/api/dashboard")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetDashboardAPI(c, config.GetDB())
	})
}
