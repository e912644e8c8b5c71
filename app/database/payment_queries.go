package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tuition-admin/app/models"
)

// GetPayments loads the full payment collection ordered by date, newest
// first.
func GetPayments(db *sql.DB) ([]models.Payment, error) {
	rows, err := db.Query(`
		SELECT id, student_id, amount, date, method, created_at
		FROM payments
		ORDER BY date DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.StudentID, &p.Amount, &p.Date, &p.Method, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// GetPaymentsByStudent loads one student's payments, newest first.
func GetPaymentsByStudent(db *sql.DB, studentID string) ([]models.Payment, error) {
	rows, err := db.Query(`
		SELECT id, student_id, amount, date, method, created_at
		FROM payments
		WHERE student_id = $1
		ORDER BY date DESC, created_at DESC`, studentID)
	if err != nil {
		return nil, fmt.Errorf("querying payments for student: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.StudentID, &p.Amount, &p.Date, &p.Method, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// CreatePayment records a payment against a student's balance.
func CreatePayment(db *sql.DB, p *models.Payment) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Date.IsZero() {
		p.Date = time.Now()
	}

	err := db.QueryRow(`
		INSERT INTO payments (id, student_id, amount, date, method)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		p.ID, p.StudentID, p.Amount, p.Date, p.Method,
	).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting payment: %w", err)
	}
	return nil
}

// DeletePayment removes a payment record.
func DeletePayment(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting payment: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil || n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
