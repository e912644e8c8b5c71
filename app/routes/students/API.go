package students

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"tuition-admin/app/billing"
	"tuition-admin/app/database"
	"tuition-admin/app/models"
	"tuition-admin/app/reports"
)

// StudentRow is one student in the list view, with balance columns derived
// through the billing calculator.
type StudentRow struct {
	models.Student
	TotalFees     decimal.Decimal `json:"total_fees"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	PaymentStatus string          `json:"payment_status"`
}

// GetStudentsAPI returns the filtered, paginated student list.
func GetStudentsAPI(c *fiber.Ctx, db *sql.DB) error {
	snap, err := database.LoadSnapshot(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load students")
	}

	crit := reports.Criteria{
		Search:  c.Query("search"),
		Grade:   c.Query("grade"),
		Status:  c.Query("status"),
		Balance: c.Query("balance"),
	}
	report := reports.Build(snap, crit)
	page := reports.Paginate(report.Students, c.QueryInt("page", 1), c.QueryInt("page_size", 50))

	rows := make([]StudentRow, 0, len(page.Students))
	for i := range page.Students {
		s := &page.Students[i]
		summary := report.Index.Summarize(s)
		rows = append(rows, StudentRow{
			Student:       *s,
			TotalFees:     summary.TotalFees,
			TotalPaid:     summary.TotalPaid,
			Outstanding:   summary.Outstanding,
			PaymentStatus: report.Index.PaymentStatus(s),
		})
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"data":             rows,
		"page":             page.Page,
		"page_size":        page.PageSize,
		"total_pages":      page.TotalPages,
		"total_items":      page.TotalItems,
		"with_outstanding": report.WithOutstanding,
		"grades":           reports.Grades(snap.Students),
	})
}

// GetStudentByIDAPI returns one student with their balance summary and
// payment history.
func GetStudentByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	student, err := database.GetStudentByID(db, c.Params("id"))
	if err == sql.ErrNoRows {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load student")
	}

	payments, err := database.GetPaymentsByStudent(db, student.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load payments")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"data":     student,
		"balance":  billing.Summarize(student, payments),
		"payments": payments,
	})
}

// CreateStudentAPI creates a student with their assigned fees.
func CreateStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	var student models.Student
	if err := c.BodyParser(&student); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if student.StudentCode == "" || student.FirstName == "" || student.LastName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required fields")
	}
	for _, fee := range student.AssignedFees {
		if fee.Amount.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "Fee amounts must not be negative")
		}
	}

	if err := database.CreateStudent(db, &student); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create student")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    student,
		"message": "Student created successfully",
	})
}

// UpdateStudentAPI replaces a student's record and fee assignments.
func UpdateStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	var student models.Student
	if err := c.BodyParser(&student); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	student.ID = c.Params("id")

	err := database.UpdateStudent(db, &student)
	if err == sql.ErrNoRows {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update student")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Student updated successfully",
	})
}

// DeleteStudentAPI removes a student. Their payments remain on record and
// are reported as orphans.
func DeleteStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	err := database.DeleteStudent(db, c.Params("id"))
	if err == sql.ErrNoRows {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete student")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Student deleted successfully",
	})
}

// GetStudentStatsAPI returns the list page's summary cards.
func GetStudentStatsAPI(c *fiber.Ctx, db *sql.DB) error {
	snap, err := database.LoadSnapshot(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load students")
	}

	idx := billing.IndexPayments(snap.Payments)
	active, unpaid := 0, 0
	for i := range snap.Students {
		s := &snap.Students[i]
		if s.IsActive() {
			active++
		}
		if idx.PaymentStatus(s) == billing.StatusUnpaid {
			unpaid++
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_students":  len(snap.Students),
			"active_students": active,
			"grade_levels":    len(reports.Grades(snap.Students)),
			"unpaid_students": unpaid,
		},
	})
}
