// Package reports builds filtered student views, summary counts and the CSV
// report variants. All balance figures come from the billing package.
package reports

import (
	"log"
	"sort"
	"strings"

	"tuition-admin/app/billing"
	"tuition-admin/app/models"
)

// Balance filter values. An empty Balance matches every student.
const (
	BalanceOutstanding = "outstanding"
	BalancePaid        = "paid"
)

// Criteria is the structured filter for student views. Every field is
// independently optional (zero value matches all) and the active fields are
// combined with AND.
type Criteria struct {
	Search     string
	Grade      string
	Status     string
	Balance    string
	ActiveOnly bool
}

// Report is a filtered, ordered student view plus its summary counts.
type Report struct {
	Students        []models.Student
	Index           billing.PaymentIndex
	Total           int
	WithOutstanding int
	OrphanPayments  int
}

// Build filters the snapshot's students by the criteria, preserving input
// order. Payments for unknown students are counted and logged, never summed.
func Build(snap *models.Snapshot, crit Criteria) Report {
	idx := billing.IndexPayments(snap.Payments)

	var matched []models.Student
	withOutstanding := 0
	for i := range snap.Students {
		s := &snap.Students[i]
		if !matches(s, idx, crit) {
			continue
		}
		matched = append(matched, *s)
		if idx.Summarize(s).Outstanding.IsPositive() {
			withOutstanding++
		}
	}

	orphans := billing.CountOrphans(snap.Students, snap.Payments)
	if orphans > 0 {
		log.Printf("reports: %d payment(s) reference unknown students and are excluded from totals", orphans)
	}

	return Report{
		Students:        matched,
		Index:           idx,
		Total:           len(matched),
		WithOutstanding: withOutstanding,
		OrphanPayments:  orphans,
	}
}

func matches(s *models.Student, idx billing.PaymentIndex, crit Criteria) bool {
	if crit.ActiveOnly && !s.IsActive() {
		return false
	}
	if crit.Status != "" && s.Status != crit.Status {
		return false
	}
	if crit.Grade != "" && string(s.Grade) != crit.Grade {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(crit.Search)); q != "" {
		if !strings.Contains(strings.ToLower(s.FirstName), q) &&
			!strings.Contains(strings.ToLower(s.LastName), q) &&
			!strings.Contains(strings.ToLower(s.StudentCode), q) {
			return false
		}
	}
	switch crit.Balance {
	case BalanceOutstanding:
		return idx.Summarize(s).Outstanding.IsPositive()
	case BalancePaid:
		return idx.Summarize(s).Outstanding.IsZero()
	}
	return true
}

// Grades returns the sorted set of non-empty grade labels in use.
func Grades(students []models.Student) []string {
	seen := make(map[string]struct{})
	var grades []string
	for i := range students {
		g := strings.TrimSpace(string(students[i].Grade))
		if g == "" {
			continue
		}
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		grades = append(grades, g)
	}
	sort.Strings(grades)
	return grades
}

// Page is one slice of a filtered view.
type Page struct {
	Students   []models.Student
	Page       int
	PageSize   int
	TotalPages int
	TotalItems int
}

// Paginate slices an already-filtered, already-ordered student list. The page
// number is clamped to [1, ceil(n/pageSize)]; pageSize defaults to 50.
func Paginate(students []models.Student, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = 50
	}
	totalPages := (len(students) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(students) {
		start = len(students)
	}
	if end > len(students) {
		end = len(students)
	}

	return Page{
		Students:   students[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: len(students),
	}
}
