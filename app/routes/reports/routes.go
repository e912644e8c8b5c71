package reports

import (
	"github.com/gofiber/fiber/v2"

	"tuition-admin/app/config"
	"tuition-admin/app/routes/auth"
)

// SetupReportsRoutes registers the export, backup and restore routes.
func SetupReportsRoutes(app *fiber.App) {
	api := app.Group("/api/reports")
	api.Use(auth.AuthMiddleware)

	api.Get("/students.csv", func(c *fiber.Ctx) error {
		return ExportStudentsCSV(c, config.GetDB())
	})

	api.Get("/payments.csv", func(c *fiber.Ctx) error {
		return ExportPaymentsCSV(c, config.GetDB())
	})

	api.Get("/outstanding.csv", func(c *fiber.Ctx) error {
		return ExportOutstandingCSV(c, config.GetDB())
	})

	api.Get("/fee-templates.csv", func(c *fiber.Ctx) error {
		return ExportFeeTemplatesCSV(c, config.GetDB())
	})

	api.Get("/backup", func(c *fiber.Ctx) error {
		return ExportBackupAPI(c, config.GetDB())
	})

	api.Post("/restore", func(c *fiber.Ctx) error {
		return ImportBackupAPI(c, config.GetDB())
	})

	api.Post("/clear", func(c *fiber.Ctx) error {
		return ClearAllAPI(c, config.GetDB())
	})
}
