package models

import "time"

// Settings is the school-wide configuration singleton. InvoiceSeq is the
// monotonically increasing counter behind invoice numbers; it is never
// decremented, even when a generated invoice is discarded.
type Settings struct {
	ID             string    `json:"id"`
	SchoolName     string    `json:"school_name"`
	AcademicYear   string    `json:"academic_year"`
	Currency       string    `json:"currency"`
	DateFormat     string    `json:"date_format"`
	InvoicePrefix  string    `json:"invoice_prefix"`
	InvoiceSeq     int       `json:"invoice_seq"`
	PaymentMethods []string  `json:"payment_methods"`
	FeeCategories  []string  `json:"fee_categories"`
	GradeOptions   []string  `json:"grade_options"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DefaultSettings returns the configuration used before the school has saved
// anything of its own.
func DefaultSettings() Settings {
	return Settings{
		ID:             "default",
		SchoolName:     "Tuition Management System",
		AcademicYear:   time.Now().Format("2006"),
		Currency:       "USD",
		DateFormat:     "MM/dd/yyyy",
		InvoicePrefix:  "INV",
		InvoiceSeq:     1,
		PaymentMethods: []string{"Cash", "Check", "Bank Transfer", "Online"},
		FeeCategories:  []string{"Tuition", "Books", "Lab Fee", "Transport", "Exam Fee", "Other"},
		GradeOptions: []string{
			"K-1", "K-2", "1st", "2nd", "3rd", "4th", "5th", "6th",
			"7th", "8th", "9th", "10th", "11th", "12th",
		},
	}
}
