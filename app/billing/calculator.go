// Package billing derives financial totals from a snapshot of students and
// payments. Every view of a student's money (list columns, dashboard counts,
// CSV exports, invoice totals) must go through this package; nothing else in
// the codebase is allowed to re-derive a balance.
package billing

import (
	"github.com/shopspring/decimal"

	"tuition-admin/app/models"
)

// Payment statuses derived from a student's balance.
const (
	StatusPaid    = "paid"
	StatusPartial = "partial"
	StatusUnpaid  = "unpaid"
)

// BalanceSummary holds every total derived for one student. Outstanding is
// clamped at zero; the clamped-off overpayment is kept in Credit so a future
// credit policy has the number, but no current view consumes it.
type BalanceSummary struct {
	TotalFees   decimal.Decimal `json:"total_fees"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Credit      decimal.Decimal `json:"-"`
}

// TotalFees sums the amounts of every fee assigned to the student. Negative
// amounts are not validated here; upstream input validation owns that.
func TotalFees(s *models.Student) decimal.Decimal {
	total := decimal.Zero
	for _, fee := range s.AssignedFees {
		total = total.Add(fee.Amount)
	}
	return total
}

// TotalPaid sums every payment in the collection that references the student.
func TotalPaid(s *models.Student, payments []models.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if p.StudentID == s.ID {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// Outstanding returns max(0, TotalFees - TotalPaid).
func Outstanding(s *models.Student, payments []models.Payment) decimal.Decimal {
	return Summarize(s, payments).Outstanding
}

// Summarize computes the full balance summary for one student against the
// complete payment collection.
func Summarize(s *models.Student, payments []models.Payment) BalanceSummary {
	return summarize(TotalFees(s), TotalPaid(s, payments))
}

func summarize(fees, paid decimal.Decimal) BalanceSummary {
	outstanding := fees.Sub(paid)
	credit := decimal.Zero
	if outstanding.IsNegative() {
		credit = outstanding.Neg()
		outstanding = decimal.Zero
	}
	return BalanceSummary{
		TotalFees:   fees,
		TotalPaid:   paid,
		Outstanding: outstanding,
		Credit:      credit,
	}
}

// PaymentIndex groups payments by student id so callers iterating many
// students avoid rescanning the whole payment collection per student.
type PaymentIndex map[string][]models.Payment

// IndexPayments builds a PaymentIndex from the full payment collection.
func IndexPayments(payments []models.Payment) PaymentIndex {
	idx := make(PaymentIndex, len(payments))
	for _, p := range payments {
		idx[p.StudentID] = append(idx[p.StudentID], p)
	}
	return idx
}

// Summarize computes the balance summary for one student using the index.
// Results are identical to the unindexed Summarize.
func (idx PaymentIndex) Summarize(s *models.Student) BalanceSummary {
	paid := decimal.Zero
	for _, p := range idx[s.ID] {
		paid = paid.Add(p.Amount)
	}
	return summarize(TotalFees(s), paid)
}

// PaymentStatus classifies a student as paid, partial or unpaid: paid when
// nothing is outstanding, partial when something is outstanding but at least
// one payment exists, unpaid otherwise.
func (idx PaymentIndex) PaymentStatus(s *models.Student) string {
	summary := idx.Summarize(s)
	if summary.Outstanding.IsZero() {
		return StatusPaid
	}
	if len(idx[s.ID]) > 0 {
		return StatusPartial
	}
	return StatusUnpaid
}

// CountOrphans returns the number of payments whose student id resolves to no
// known student. Such payments are excluded from every total by construction;
// callers surface the count as a data-integrity signal.
func CountOrphans(students []models.Student, payments []models.Payment) int {
	known := make(map[string]struct{}, len(students))
	for i := range students {
		known[students[i].ID] = struct{}{}
	}
	orphans := 0
	for _, p := range payments {
		if _, ok := known[p.StudentID]; !ok {
			orphans++
		}
	}
	return orphans
}
