package payments

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"tuition-admin/app/database"
	"tuition-admin/app/models"
	"tuition-admin/app/reports"
)

// GetPaymentsAPI returns payments, optionally limited to one student or an
// inclusive date range.
func GetPaymentsAPI(c *fiber.Ctx, db *sql.DB) error {
	var (
		payments []models.Payment
		err      error
	)
	if studentID := c.Query("student_id"); studentID != "" {
		payments, err = database.GetPaymentsByStudent(db, studentID)
	} else {
		payments, err = database.GetPayments(db)
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch payments")
	}

	start, end, err := parseDateRange(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid date range, expected YYYY-MM-DD")
	}
	if !start.IsZero() || !end.IsZero() {
		if end.IsZero() {
			end = time.Now()
		}
		var filtered []models.Payment
		for _, p := range payments {
			if reports.InRange(p.Date, start, end) {
				filtered = append(filtered, p)
			}
		}
		payments = filtered
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    payments,
	})
}

// CreatePaymentAPI records a payment against a student's balance.
func CreatePaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	var payment models.Payment
	if err := c.BodyParser(&payment); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if payment.StudentID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "student_id is required")
	}
	if !payment.Amount.IsPositive() {
		return fiber.NewError(fiber.StatusBadRequest, "Amount must be greater than zero")
	}

	// The student must exist at recording time; payments only become
	// orphans when a student is later deleted.
	if _, err := database.GetStudentByID(db, payment.StudentID); err == sql.ErrNoRows {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	} else if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to verify student")
	}

	if err := database.CreatePayment(db, &payment); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to record payment")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    payment,
		"message": "Payment recorded successfully",
	})
}

// DeletePaymentAPI removes a payment record.
func DeletePaymentAPI(c *fiber.Ctx, db *sql.DB) error {
	err := database.DeletePayment(db, c.Params("id"))
	if err == sql.ErrNoRows {
		return fiber.NewError(fiber.StatusNotFound, "Payment not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete payment")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Payment deleted successfully",
	})
}

func parseDateRange(c *fiber.Ctx) (start, end time.Time, err error) {
	if v := c.Query("start"); v != "" {
		start, err = time.Parse("2006-01-02", v)
		if err != nil {
			return
		}
	}
	if v := c.Query("end"); v != "" {
		end, err = time.Parse("2006-01-02", v)
		if err != nil {
			return
		}
	}
	return
}
