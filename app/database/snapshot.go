package database

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"tuition-admin/app/models"
)

// LoadSnapshot reads the full dataset into an immutable in-memory view. All
// balance and report derivations for a request work from one snapshot so
// every view of the same data agrees.
func LoadSnapshot(db *sql.DB) (*models.Snapshot, error) {
	students, err := GetStudents(db)
	if err != nil {
		return nil, err
	}
	payments, err := GetPayments(db)
	if err != nil {
		return nil, err
	}
	templates, err := GetFeeTemplates(db)
	if err != nil {
		return nil, err
	}
	settings, err := GetSettings(db)
	if err != nil {
		return nil, err
	}

	return &models.Snapshot{
		Students:     students,
		Payments:     payments,
		FeeTemplates: templates,
		Settings:     settings,
	}, nil
}

// ReplaceAll swaps the entire dataset for the snapshot's contents in one
// transaction. Either every record is replaced or none are; a failure leaves
// the existing data untouched.
func ReplaceAll(db *sql.DB, snap *models.Snapshot) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"assigned_fees", "payments", "students", "fee_templates", "settings"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for i := range snap.Students {
		s := &snap.Students[i]
		_, err := tx.Exec(`
			INSERT INTO students (id, student_code, first_name, last_name, grade,
				status, contact_email, enrollment_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			s.ID, s.StudentCode, s.FirstName, s.LastName, string(s.Grade),
			s.Status, s.ContactEmail, s.EnrollmentDate,
		)
		if err != nil {
			return fmt.Errorf("restoring student %s: %w", s.ID, err)
		}
		if err := insertFees(tx, s.ID, s.AssignedFees); err != nil {
			return err
		}
	}

	for _, p := range snap.Payments {
		_, err := tx.Exec(`
			INSERT INTO payments (id, student_id, amount, date, method)
			VALUES ($1, $2, $3, $4, $5)`,
			p.ID, p.StudentID, p.Amount, p.Date, p.Method,
		)
		if err != nil {
			return fmt.Errorf("restoring payment %s: %w", p.ID, err)
		}
	}

	for _, t := range snap.FeeTemplates {
		_, err := tx.Exec(`
			INSERT INTO fee_templates (id, name, category, amount)
			VALUES ($1, $2, $3, $4)`,
			t.ID, t.Name, t.Category, t.Amount,
		)
		if err != nil {
			return fmt.Errorf("restoring fee template %s: %w", t.ID, err)
		}
	}

	settings := snap.Settings
	if settings.ID == "" {
		settings.ID = "default"
	}
	_, err = tx.Exec(`
		INSERT INTO settings (id, school_name, academic_year, currency, date_format,
			invoice_prefix, invoice_seq, payment_methods, fee_categories, grade_options)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		settings.ID, settings.SchoolName, settings.AcademicYear, settings.Currency,
		settings.DateFormat, settings.InvoicePrefix, settings.InvoiceSeq,
		pq.Array(settings.PaymentMethods), pq.Array(settings.FeeCategories),
		pq.Array(settings.GradeOptions),
	)
	if err != nil {
		return fmt.Errorf("restoring settings: %w", err)
	}

	return tx.Commit()
}

// ClearAll wipes every record and reseeds the default settings row.
func ClearAll(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"assigned_fees", "payments", "students", "fee_templates", "settings"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	return seedDefaultSettings(db)
}
