package dashboard

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"tuition-admin/app/billing"
	"tuition-admin/app/database"
)

// GetDashboardAPI returns the overview cards: headcounts, money totals and
// payment status breakdown, all derived from one snapshot.
func GetDashboardAPI(c *fiber.Ctx, db *sql.DB) error {
	snap, err := database.LoadSnapshot(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load data")
	}

	idx := billing.IndexPayments(snap.Payments)

	active := 0
	totalFees := decimal.Zero
	totalOutstanding := decimal.Zero
	statusCounts := map[string]int{
		billing.StatusPaid:    0,
		billing.StatusPartial: 0,
		billing.StatusUnpaid:  0,
	}
	for i := range snap.Students {
		s := &snap.Students[i]
		if s.IsActive() {
			active++
		}
		summary := idx.Summarize(s)
		totalFees = totalFees.Add(summary.TotalFees)
		totalOutstanding = totalOutstanding.Add(summary.Outstanding)
		statusCounts[idx.PaymentStatus(s)]++
	}

	// Collected counts every payment on record, including those whose
	// student has since been deleted.
	totalCollected := decimal.Zero
	for _, p := range snap.Payments {
		totalCollected = totalCollected.Add(p.Amount)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_students":    len(snap.Students),
			"active_students":   active,
			"total_fees":        totalFees,
			"total_collected":   totalCollected,
			"total_outstanding": totalOutstanding,
			"payment_status":    statusCounts,
			"orphan_payments":   billing.CountOrphans(snap.Students, snap.Payments),
			"currency":          snap.Settings.Currency,
		},
	})
}
