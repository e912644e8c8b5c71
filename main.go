package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"tuition-admin/app/config"
	"tuition-admin/app/database"
	appinvoices "tuition-admin/app/invoices"
	"tuition-admin/app/routes/auth"
	"tuition-admin/app/routes/dashboard"
	"tuition-admin/app/routes/fees"
	"tuition-admin/app/routes/invoices"
	"tuition-admin/app/routes/payments"
	"tuition-admin/app/routes/reports"
	"tuition-admin/app/routes/settings"
	"tuition-admin/app/routes/students"
)

// customErrorHandler turns handler errors into the JSON error envelope.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	if strings.HasPrefix(c.Path(), "/api") {
		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"code":    code,
		})
	}
	return c.Status(code).SendString(err.Error())
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	if err := cfg.InitDB(); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer config.GetDB().Close()

	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	renderer, err := appinvoices.NewRenderer("./app/templates")
	if err != nil {
		log.Fatal("Failed to load invoice templates:", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	app.Use(logger.New())
	app.Use(cors.New())

	auth.SetupAuthRoutes(app)
	dashboard.SetupDashboardRoutes(app)
	students.SetupStudentsRoutes(app)
	payments.SetupPaymentsRoutes(app)
	fees.SetupFeesRoutes(app)
	invoices.SetupInvoicesRoutes(app, renderer)
	reports.SetupReportsRoutes(app)
	settings.SetupSettingsRoutes(app)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	log.Println("Server starting on", addr)
	log.Fatal(app.Listen(addr))
}
