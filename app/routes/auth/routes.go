package auth

import (
	"github.com/gofiber/fiber/v2"

	"tuition-admin/app/config"
)

// SetupAuthRoutes registers the authentication routes.
func SetupAuthRoutes(app *fiber.App) {
	api := app.Group("/api/auth")

	api.Post("/login", func(c *fiber.Ctx) error {
		return LoginAPI(c, config.GetDB())
	})

	api.Post("/logout", LogoutAPI)

	api.Get("/me", AuthMiddleware, func(c *fiber.Ctx) error {
		return MeAPI(c, config.GetDB())
	})
}
