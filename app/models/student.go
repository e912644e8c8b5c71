package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Student statuses
const (
	StudentActive   = "active"
	StudentInactive = "inactive"
)

// Grade is a canonical grade label. Imported data may carry grades as
// strings, numbers or null; Grade normalizes all of them to a trimmed
// string at the model boundary so filters never compare mixed types.
type Grade string

func (g *Grade) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*g = ""
	case string:
		*g = Grade(strings.TrimSpace(v))
	case float64:
		*g = Grade(strconv.FormatFloat(v, 'f', -1, 64))
	default:
		*g = Grade(strings.TrimSpace(string(data)))
	}
	return nil
}

// AssignedFee is a charge attached to one student. Fees are embedded in the
// student record, not referenced by payments.
type AssignedFee struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	DueDate  *time.Time      `json:"due_date,omitempty"`
}

// Student represents an enrolled student and their assigned fees.
type Student struct {
	ID             string        `json:"id"`
	StudentCode    string        `json:"student_id"`
	FirstName      string        `json:"first_name"`
	LastName       string        `json:"last_name"`
	Grade          Grade         `json:"grade"`
	Status         string        `json:"status"`
	ContactEmail   string        `json:"contact_email,omitempty"`
	EnrollmentDate time.Time     `json:"enrollment_date"`
	AssignedFees   []AssignedFee `json:"assigned_fees"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// FullName returns the student's display name.
func (s *Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// IsActive reports whether the student is currently enrolled.
func (s *Student) IsActive() bool {
	return s.Status == StudentActive
}
