package database

import (
	"database/sql"
	"log"

	"github.com/lib/pq"

	"tuition-admin/app/models"
)

// RunMigrations creates missing tables and seeds the default settings row.
// Every statement is idempotent so the function is safe to run on startup.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY,
			student_code TEXT NOT NULL UNIQUE,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			grade TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'active',
			contact_email TEXT NOT NULL DEFAULT '',
			enrollment_date DATE NOT NULL DEFAULT CURRENT_DATE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS assigned_fees (
			id UUID PRIMARY KEY,
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			category TEXT NOT NULL,
			amount NUMERIC(12,2) NOT NULL DEFAULT 0,
			due_date DATE,
			position INT NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_assigned_fees_student ON assigned_fees(student_id)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY,
			student_id UUID NOT NULL,
			amount NUMERIC(12,2) NOT NULL,
			date DATE NOT NULL,
			method TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_student ON payments(student_id)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_date ON payments(date)`,
		`CREATE TABLE IF NOT EXISTS fee_templates (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			amount NUMERIC(12,2) NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			id TEXT PRIMARY KEY,
			school_name TEXT NOT NULL,
			academic_year TEXT NOT NULL,
			currency TEXT NOT NULL,
			date_format TEXT NOT NULL,
			invoice_prefix TEXT NOT NULL,
			invoice_seq INT NOT NULL DEFAULT 1,
			payment_methods TEXT[] NOT NULL DEFAULT '{}',
			fee_categories TEXT[] NOT NULL DEFAULT '{}',
			grade_options TEXT[] NOT NULL DEFAULT '{}',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration failed: %v", err)
			return err
		}
	}

	if err := seedDefaultSettings(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// Payments deliberately carry no foreign key to students: deleting a student
// leaves their payments behind as orphans, which the report layer counts.

func seedDefaultSettings(db *sql.DB) error {
	defaults := models.DefaultSettings()
	_, err := db.Exec(`
		INSERT INTO settings (id, school_name, academic_year, currency, date_format,
			invoice_prefix, invoice_seq, payment_methods, fee_categories, grade_options)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING`,
		defaults.ID, defaults.SchoolName, defaults.AcademicYear, defaults.Currency,
		defaults.DateFormat, defaults.InvoicePrefix, defaults.InvoiceSeq,
		pq.Array(defaults.PaymentMethods), pq.Array(defaults.FeeCategories),
		pq.Array(defaults.GradeOptions),
	)
	return err
}
