package reports

import (
	"database/sql"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"tuition-admin/app/backup"
	"tuition-admin/app/database"
	"tuition-admin/app/reports"
)

func sendCSV(c *fiber.Ctx, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// ExportStudentsCSV downloads the student roster with balance columns.
func ExportStudentsCSV(c *fiber.Ctx, db *sql.DB) error {
	snap, err := database.LoadSnapshot(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load data")
	}
	data, err := reports.StudentsCSV(snap)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build export")
	}
	return sendCSV(c, "students.csv", data)
}

// ExportPaymentsCSV downloads payments within an inclusive date range. A
// missing start opens the range at the beginning; a missing end closes it
// today.
func ExportPaymentsCSV(c *fiber.Ctx, db *sql.DB) error {
	snap, err := database.LoadSnapshot(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load data")
	}

	start := time.Time{}
	end := time.Now()
	if v := c.Query("start"); v != "" {
		if start, err = time.Parse("2006-01-02", v); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid start date, expected YYYY-MM-DD")
		}
	}
	if v := c.Query("end"); v != "" {
		if end, err = time.Parse("2006-01-02", v); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid end date, expected YYYY-MM-DD")
		}
	}

	data, err := reports.PaymentsCSV(snap, start, end)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build export")
	}
	return sendCSV(c, "payments.csv", data)
}

// ExportOutstandingCSV downloads students carrying an outstanding balance.
func ExportOutstandingCSV(c *fiber.Ctx, db *sql.DB) error {
	snap, err := database.LoadSnapshot(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load data")
	}
	data, err := reports.OutstandingCSV(snap)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build export")
	}
	return sendCSV(c, "outstanding.csv", data)
}

// ExportFeeTemplatesCSV downloads the fee template catalogue.
func ExportFeeTemplatesCSV(c *fiber.Ctx, db *sql.DB) error {
	snap, err := database.LoadSnapshot(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load data")
	}
	data, err := reports.FeeTemplatesCSV(snap)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build export")
	}
	return sendCSV(c, "fee-templates.csv", data)
}

// ExportBackupAPI downloads the full dataset as a versioned JSON backup.
func ExportBackupAPI(c *fiber.Ctx, db *sql.DB) error {
	snap, err := database.LoadSnapshot(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load data")
	}
	data, err := backup.Export(snap, time.Now().Format(time.RFC3339))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to build backup")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition,
		`attachment; filename="backup-`+time.Now().Format("2006-01-02")+`.json"`)
	return c.Send(data)
}

// ImportBackupAPI validates an uploaded backup and replaces the entire
// dataset with its contents. A backup that fails validation changes nothing.
func ImportBackupAPI(c *fiber.Ctx, db *sql.DB) error {
	snap, err := backup.Parse(c.Body())
	if err != nil {
		var verr *backup.ValidationError
		if errors.As(err, &verr) {
			return fiber.NewError(fiber.StatusBadRequest, verr.Error())
		}
		return fiber.NewError(fiber.StatusBadRequest, "Invalid backup document")
	}

	if err := database.ReplaceAll(db, snap); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to restore backup")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Backup restored successfully",
		"data": fiber.Map{
			"students":      len(snap.Students),
			"payments":      len(snap.Payments),
			"fee_templates": len(snap.FeeTemplates),
		},
	})
}

// ClearAllAPI wipes every record and restores the default settings.
func ClearAllAPI(c *fiber.Ctx, db *sql.DB) error {
	if c.Query("confirm") != "true" {
		return fiber.NewError(fiber.StatusBadRequest, "Pass confirm=true to clear all data")
	}
	if err := database.ClearAll(db); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to clear data")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "All data cleared",
	})
}
