package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"tuition-admin/app/models"
)

// GetFeeTemplates loads all fee templates ordered by name.
func GetFeeTemplates(db *sql.DB) ([]models.FeeTemplate, error) {
	rows, err := db.Query(`
		SELECT id, name, category, amount, created_at, updated_at
		FROM fee_templates
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying fee templates: %w", err)
	}
	defer rows.Close()

	var templates []models.FeeTemplate
	for rows.Next() {
		var t models.FeeTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.Category, &t.Amount, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning fee template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// GetFeeTemplateByID loads one fee template.
func GetFeeTemplateByID(db *sql.DB, id string) (*models.FeeTemplate, error) {
	var t models.FeeTemplate
	err := db.QueryRow(`
		SELECT id, name, category, amount, created_at, updated_at
		FROM fee_templates WHERE id = $1`, id).Scan(
		&t.ID, &t.Name, &t.Category, &t.Amount, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateFeeTemplate inserts a fee template.
func CreateFeeTemplate(db *sql.DB, t *models.FeeTemplate) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	err := db.QueryRow(`
		INSERT INTO fee_templates (id, name, category, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`,
		t.ID, t.Name, t.Category, t.Amount,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting fee template: %w", err)
	}
	return nil
}

// UpdateFeeTemplate updates a fee template. Existing student assignments made
// from the template keep their copied amounts.
func UpdateFeeTemplate(db *sql.DB, t *models.FeeTemplate) error {
	result, err := db.Exec(`
		UPDATE fee_templates
		SET name = $1, category = $2, amount = $3, updated_at = NOW()
		WHERE id = $4`,
		t.Name, t.Category, t.Amount, t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating fee template: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil || n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteFeeTemplate removes a fee template.
func DeleteFeeTemplate(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM fee_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting fee template: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil || n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
