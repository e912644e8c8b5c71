package database

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"tuition-admin/app/models"
)

// GetSettings loads the settings singleton. When the row is missing the
// defaults are returned so callers never work without a configuration.
func GetSettings(db *sql.DB) (models.Settings, error) {
	var s models.Settings
	err := db.QueryRow(`
		SELECT id, school_name, academic_year, currency, date_format,
		       invoice_prefix, invoice_seq, payment_methods, fee_categories,
		       grade_options, updated_at
		FROM settings WHERE id = 'default'`).Scan(
		&s.ID, &s.SchoolName, &s.AcademicYear, &s.Currency, &s.DateFormat,
		&s.InvoicePrefix, &s.InvoiceSeq,
		pq.Array(&s.PaymentMethods), pq.Array(&s.FeeCategories), pq.Array(&s.GradeOptions),
		&s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("querying settings: %w", err)
	}
	return s, nil
}

// SaveSettings writes the settings singleton. The invoice sequence is only
// ever moved forward here; going backwards would risk reissuing numbers.
func SaveSettings(db *sql.DB, s *models.Settings) error {
	err := db.QueryRow(`
		INSERT INTO settings (id, school_name, academic_year, currency, date_format,
			invoice_prefix, invoice_seq, payment_methods, fee_categories, grade_options, updated_at)
		VALUES ('default', $1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (id) DO UPDATE SET
			school_name = EXCLUDED.school_name,
			academic_year = EXCLUDED.academic_year,
			currency = EXCLUDED.currency,
			date_format = EXCLUDED.date_format,
			invoice_prefix = EXCLUDED.invoice_prefix,
			invoice_seq = GREATEST(settings.invoice_seq, EXCLUDED.invoice_seq),
			payment_methods = EXCLUDED.payment_methods,
			fee_categories = EXCLUDED.fee_categories,
			grade_options = EXCLUDED.grade_options,
			updated_at = NOW()
		RETURNING invoice_seq, updated_at`,
		s.SchoolName, s.AcademicYear, s.Currency, s.DateFormat,
		s.InvoicePrefix, s.InvoiceSeq,
		pq.Array(s.PaymentMethods), pq.Array(s.FeeCategories), pq.Array(s.GradeOptions),
	).Scan(&s.InvoiceSeq, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	s.ID = "default"
	return nil
}

// InvoiceSequencer allocates invoice sequence numbers from the settings row.
// The single UPDATE serializes concurrent allocations on the database side,
// so numbers stay unique and monotonic even with multiple clients.
type InvoiceSequencer struct {
	DB *sql.DB
}

// Next consumes and returns the current sequence number. The number is spent
// whether or not the caller's invoice survives rendering.
func (s *InvoiceSequencer) Next() (int, error) {
	var consumed int
	err := s.DB.QueryRow(`
		UPDATE settings
		SET invoice_seq = invoice_seq + 1, updated_at = NOW()
		WHERE id = 'default'
		RETURNING invoice_seq - 1`).Scan(&consumed)
	if err != nil {
		return 0, fmt.Errorf("allocating invoice sequence: %w", err)
	}
	return consumed, nil
}
