package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a payment recorded against a student's total balance. Payments
// never reference an individual fee line.
type Payment struct {
	ID        string          `json:"id"`
	StudentID string          `json:"student_id"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	Method    string          `json:"method"`
	CreatedAt time.Time       `json:"created_at"`
}
