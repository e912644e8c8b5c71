// Package invoices composes renderable invoice documents from student
// balances and school settings. Totals always come from the billing package
// so an invoice can never disagree with the list and report views.
package invoices

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"tuition-admin/app/billing"
	"tuition-admin/app/models"
)

// LineItem is one fee row on an invoice.
type LineItem struct {
	Category string          `json:"category"`
	DueDate  *time.Time      `json:"due_date,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
}

// Document is a fully composed invoice, ready for rendering.
type Document struct {
	Number       string                 `json:"number"`
	Date         time.Time              `json:"date"`
	SchoolName   string                 `json:"school_name"`
	AcademicYear string                 `json:"academic_year"`
	Currency     string                 `json:"currency"`
	Student      models.Student         `json:"student"`
	Lines        []LineItem             `json:"lines"`
	Totals       billing.BalanceSummary `json:"totals"`
}

// Number formats an invoice number as {prefix}-{year}-{seq:04d}.
func Number(prefix string, year, seq int) string {
	if prefix == "" {
		prefix = "INV"
	}
	return fmt.Sprintf("%s-%d-%04d", prefix, year, seq)
}

// Compose allocates the next invoice number and builds the document for one
// student. The sequence number is consumed even if the caller later fails to
// render or deliver the document.
func Compose(student models.Student, idx billing.PaymentIndex, settings models.Settings, seq Sequencer, now time.Time) (*Document, error) {
	n, err := seq.Next()
	if err != nil {
		return nil, fmt.Errorf("allocating invoice number: %w", err)
	}

	lines := make([]LineItem, 0, len(student.AssignedFees))
	for _, fee := range student.AssignedFees {
		lines = append(lines, LineItem{
			Category: fee.Category,
			DueDate:  fee.DueDate,
			Amount:   fee.Amount,
		})
	}

	return &Document{
		Number:       Number(settings.InvoicePrefix, now.Year(), n),
		Date:         now,
		SchoolName:   settings.SchoolName,
		AcademicYear: settings.AcademicYear,
		Currency:     settings.Currency,
		Student:      student,
		Lines:        lines,
		Totals:       idx.Summarize(&student),
	}, nil
}

// SelectBatch resolves the requested student ids against the roster, keeping
// request order. Unknown ids and inactive students are rejected with a
// per-id reason; only active students can be invoiced, so rejected students
// never consume sequence numbers.
func SelectBatch(students []models.Student, ids []string) ([]models.Student, map[string]string) {
	byID := make(map[string]models.Student, len(students))
	for _, s := range students {
		byID[s.ID] = s
	}

	selected := make([]models.Student, 0, len(ids))
	rejected := make(map[string]string)
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			rejected[id] = "student not found"
			continue
		}
		if !s.IsActive() {
			rejected[id] = "student is not active"
			continue
		}
		selected = append(selected, s)
	}
	return selected, rejected
}

// BatchItem is the outcome of composing one student's invoice in a batch.
type BatchItem struct {
	StudentID string
	Document  *Document
	Err       error
}

// ComposeBatch composes invoices sequentially, one sequence number per
// student in list order. A failure for one student is recorded and does not
// stop later students; numbers already consumed are not reclaimed.
func ComposeBatch(students []models.Student, idx billing.PaymentIndex, settings models.Settings, seq Sequencer, now time.Time) []BatchItem {
	items := make([]BatchItem, 0, len(students))
	for _, s := range students {
		doc, err := Compose(s, idx, settings, seq, now)
		items = append(items, BatchItem{StudentID: s.ID, Document: doc, Err: err})
	}
	return items
}
