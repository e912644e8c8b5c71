package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeTemplate is a reusable fee definition that can be assigned to students.
// Assigning a template copies its category and amount into the student's
// assigned fees; later template edits do not touch existing assignments.
type FeeTemplate struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
