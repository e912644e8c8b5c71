package fees

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"tuition-admin/app/database"
	"tuition-admin/app/models"
)

// GetFeeTemplatesAPI returns all fee templates.
func GetFeeTemplatesAPI(c *fiber.Ctx, db *sql.DB) error {
	templates, err := database.GetFeeTemplates(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee templates")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    templates,
	})
}

// CreateFeeTemplateAPI creates a fee template.
func CreateFeeTemplateAPI(c *fiber.Ctx, db *sql.DB) error {
	var tpl models.FeeTemplate
	if err := c.BodyParser(&tpl); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if tpl.Name == "" || tpl.Category == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Name and category are required")
	}
	if tpl.Amount.IsNegative() {
		return fiber.NewError(fiber.StatusBadRequest, "Amount must not be negative")
	}

	if err := database.CreateFeeTemplate(db, &tpl); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create fee template")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    tpl,
		"message": "Fee template created successfully",
	})
}

// UpdateFeeTemplateAPI updates a fee template. Fees already assigned from it
// keep their copied amounts.
func UpdateFeeTemplateAPI(c *fiber.Ctx, db *sql.DB) error {
	var tpl models.FeeTemplate
	if err := c.BodyParser(&tpl); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	tpl.ID = c.Params("id")

	err := database.UpdateFeeTemplate(db, &tpl)
	if err == sql.ErrNoRows {
		return fiber.NewError(fiber.StatusNotFound, "Fee template not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update fee template")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Fee template updated successfully",
	})
}

// DeleteFeeTemplateAPI removes a fee template.
func DeleteFeeTemplateAPI(c *fiber.Ctx, db *sql.DB) error {
	err := database.DeleteFeeTemplate(db, c.Params("id"))
	if err == sql.ErrNoRows {
		return fiber.NewError(fiber.StatusNotFound, "Fee template not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete fee template")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Fee template deleted successfully",
	})
}

// ApplyRequest assigns fee templates to students by id.
type ApplyRequest struct {
	StudentIDs  []string `json:"student_ids"`
	TemplateIDs []string `json:"template_ids"`
}

// ApplyFeesAPI copies the named templates onto the named students as
// assigned fees. Each student gets one fee line per template.
func ApplyFeesAPI(c *fiber.Ctx, db *sql.DB) error {
	var req ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if len(req.StudentIDs) == 0 || len(req.TemplateIDs) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "student_ids and template_ids are required")
	}

	fees := make([]models.AssignedFee, 0, len(req.TemplateIDs))
	for _, id := range req.TemplateIDs {
		tpl, err := database.GetFeeTemplateByID(db, id)
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Fee template not found: "+id)
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load fee template")
		}
		fees = append(fees, models.AssignedFee{Category: tpl.Category, Amount: tpl.Amount})
	}

	applied := 0
	for _, studentID := range req.StudentIDs {
		if _, err := database.GetStudentByID(db, studentID); err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Student not found: "+studentID)
		} else if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to load student")
		}
		if err := database.AssignFees(db, studentID, fees); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to assign fees")
		}
		applied++
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Fees applied successfully",
		"data": fiber.Map{
			"students_updated": applied,
			"fees_per_student": len(fees),
		},
	})
}
