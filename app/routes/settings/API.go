package settings

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"tuition-admin/app/database"
	"tuition-admin/app/models"
)

// GetSettingsAPI returns the school settings, falling back to the defaults
// when nothing has been saved yet.
func GetSettingsAPI(c *fiber.Ctx, db *sql.DB) error {
	s, err := database.GetSettings(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load settings")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    s,
	})
}

// UpdateSettingsAPI saves the school settings. The invoice sequence only
// moves forward; a lower value in the request is ignored.
func UpdateSettingsAPI(c *fiber.Ctx, db *sql.DB) error {
	var s models.Settings
	if err := c.BodyParser(&s); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if s.SchoolName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "School name is required")
	}
	if s.InvoiceSeq < 1 {
		return fiber.NewError(fiber.StatusBadRequest, "Invoice sequence must be at least 1")
	}

	if err := database.SaveSettings(db, &s); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save settings")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    s,
		"message": "Settings saved successfully",
	})
}
