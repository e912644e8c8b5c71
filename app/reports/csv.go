package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"tuition-admin/app/billing"
	"tuition-admin/app/models"
)

// Known date format labels and their Go layouts. Unknown or empty formats
// fall back to ISO dates so an export never fails on settings.
var dateLayouts = map[string]string{
	"MM/dd/yyyy": "01/02/2006",
	"dd/MM/yyyy": "02/01/2006",
	"yyyy-MM-dd": "2006-01-02",
}

func dateLayout(format string) string {
	if layout, ok := dateLayouts[format]; ok {
		return layout
	}
	return "2006-01-02"
}

// StudentsCSV renders one row per student with identity and balance columns.
// Column order is stable between runs.
func StudentsCSV(snap *models.Snapshot) ([]byte, error) {
	idx := billing.IndexPayments(snap.Payments)
	layout := dateLayout(snap.Settings.DateFormat)
	currency := snap.Settings.Currency

	rows := [][]string{{
		"Student ID", "First Name", "Last Name", "Grade", "Status",
		"Contact Email", "Enrollment Date",
		"Total Fees", "Total Paid", "Outstanding", "Payment Status",
	}}
	for i := range snap.Students {
		s := &snap.Students[i]
		summary := idx.Summarize(s)
		rows = append(rows, []string{
			s.StudentCode,
			s.FirstName,
			s.LastName,
			string(s.Grade),
			s.Status,
			s.ContactEmail,
			s.EnrollmentDate.Format(layout),
			billing.Format(summary.TotalFees, currency),
			billing.Format(summary.TotalPaid, currency),
			billing.Format(summary.Outstanding, currency),
			idx.PaymentStatus(s),
		})
	}
	return writeCSV(rows)
}

// PaymentsCSV renders one row per payment dated within [start, end], both
// boundaries inclusive at day granularity. Payments referencing unknown
// students are still listed; their student name column is left blank.
func PaymentsCSV(snap *models.Snapshot, start, end time.Time) ([]byte, error) {
	layout := dateLayout(snap.Settings.DateFormat)
	currency := snap.Settings.Currency

	byID := make(map[string]*models.Student, len(snap.Students))
	for i := range snap.Students {
		byID[snap.Students[i].ID] = &snap.Students[i]
	}

	rows := [][]string{{
		"Date", "Student ID", "Student Name", "Amount", "Method",
	}}
	for _, p := range snap.Payments {
		if !InRange(p.Date, start, end) {
			continue
		}
		code, name := "", ""
		if s, ok := byID[p.StudentID]; ok {
			code, name = s.StudentCode, s.FullName()
		}
		rows = append(rows, []string{
			p.Date.Format(layout),
			code,
			name,
			billing.Format(p.Amount, currency),
			p.Method,
		})
	}
	return writeCSV(rows)
}

// OutstandingCSV renders one row per student whose outstanding balance is
// greater than zero.
func OutstandingCSV(snap *models.Snapshot) ([]byte, error) {
	idx := billing.IndexPayments(snap.Payments)
	currency := snap.Settings.Currency

	rows := [][]string{{
		"Student ID", "Student Name", "Grade",
		"Total Fees", "Total Paid", "Outstanding",
	}}
	for i := range snap.Students {
		s := &snap.Students[i]
		summary := idx.Summarize(s)
		if !summary.Outstanding.IsPositive() {
			continue
		}
		rows = append(rows, []string{
			s.StudentCode,
			s.FullName(),
			string(s.Grade),
			billing.Format(summary.TotalFees, currency),
			billing.Format(summary.TotalPaid, currency),
			billing.Format(summary.Outstanding, currency),
		})
	}
	return writeCSV(rows)
}

// FeeTemplatesCSV renders one row per fee template.
func FeeTemplatesCSV(snap *models.Snapshot) ([]byte, error) {
	currency := snap.Settings.Currency

	rows := [][]string{{"Name", "Category", "Amount"}}
	for _, tpl := range snap.FeeTemplates {
		rows = append(rows, []string{
			tpl.Name,
			tpl.Category,
			billing.Format(tpl.Amount, currency),
		})
	}
	return writeCSV(rows)
}

// InRange reports whether date falls within [start, end], both boundaries
// inclusive at day granularity, so a payment on the end date is included
// regardless of its time-of-day component. Every date-range filter in the
// service goes through this one comparison.
func InRange(date, start, end time.Time) bool {
	day := date.Truncate(24 * time.Hour)
	return !day.Before(start.Truncate(24*time.Hour)) && !day.After(end.Truncate(24*time.Hour))
}

func writeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("writing csv: %w", err)
	}
	return buf.Bytes(), nil
}
