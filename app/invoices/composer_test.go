package invoices_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tuition-admin/app/billing"
	"tuition-admin/app/invoices"
	"tuition-admin/app/models"
)

var testNow = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func testStudent(id string, fees ...float64) models.Student {
	s := models.Student{
		ID:          id,
		StudentCode: "STU-" + id,
		FirstName:   "Test",
		LastName:    id,
		Status:      models.StudentActive,
	}
	for _, amount := range fees {
		s.AssignedFees = append(s.AssignedFees, models.AssignedFee{
			Category: "Tuition",
			Amount:   decimal.NewFromFloat(amount),
		})
	}
	return s
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "INV-2025-0007", invoices.Number("INV", 2025, 7))
	assert.Equal(t, "SCH-2025-1234", invoices.Number("SCH", 2025, 1234))
	assert.Equal(t, "INV-2025-0001", invoices.Number("", 2025, 1), "blank prefix falls back")
}

func TestCompose(t *testing.T) {
	student := testStudent("s1", 500, 150)
	idx := billing.IndexPayments([]models.Payment{
		{ID: "p1", StudentID: "s1", Amount: decimal.NewFromInt(300), Date: testNow},
	})
	settings := models.DefaultSettings()
	settings.SchoolName = "Hillside Academy"

	doc, err := invoices.Compose(student, idx, settings, invoices.NewCounterSequencer(41), testNow)
	require.NoError(t, err)

	assert.Equal(t, "INV-2025-0041", doc.Number)
	assert.Equal(t, "Hillside Academy", doc.SchoolName)
	require.Len(t, doc.Lines, 2)
	assert.True(t, doc.Lines[0].Amount.Equal(decimal.NewFromInt(500)))

	// Invoice totals must equal what the calculator reports for the same data.
	summary := idx.Summarize(&student)
	assert.True(t, doc.Totals.TotalFees.Equal(summary.TotalFees))
	assert.True(t, doc.Totals.TotalPaid.Equal(summary.TotalPaid))
	assert.True(t, doc.Totals.Outstanding.Equal(summary.Outstanding))
	assert.True(t, doc.Totals.Outstanding.Equal(decimal.NewFromInt(350)))
}

func TestComposeBatch_ConsecutiveNumbersInListOrder(t *testing.T) {
	students := []models.Student{
		testStudent("s1", 100),
		testStudent("s2", 200),
		testStudent("s3"),
		testStudent("s4", 50),
	}
	idx := billing.IndexPayments(nil)
	seq := invoices.NewCounterSequencer(10)

	items := invoices.ComposeBatch(students, idx, models.DefaultSettings(), seq, testNow)
	require.Len(t, items, 4)

	seen := make(map[string]bool)
	for i, item := range items {
		require.NoError(t, item.Err)
		assert.Equal(t, students[i].ID, item.StudentID)
		assert.Equal(t, invoices.Number("INV", 2025, 10+i), item.Document.Number)
		assert.False(t, seen[item.Document.Number], "numbers must be unique")
		seen[item.Document.Number] = true
	}
}

func TestSelectBatch_OnlyActiveStudentsAreInvoiceable(t *testing.T) {
	active := testStudent("s1", 100)
	inactive := testStudent("s2", 200)
	inactive.Status = models.StudentInactive
	roster := []models.Student{active, inactive}

	selected, rejected := invoices.SelectBatch(roster, []string{"s1", "s2", "ghost"})

	require.Len(t, selected, 1)
	assert.Equal(t, "s1", selected[0].ID)
	assert.Equal(t, "student is not active", rejected["s2"])
	assert.Equal(t, "student not found", rejected["ghost"])

	// Rejected students never consume sequence numbers.
	seq := invoices.NewCounterSequencer(1)
	items := invoices.ComposeBatch(selected, billing.IndexPayments(nil), models.DefaultSettings(), seq, testNow)
	require.Len(t, items, 1)
	assert.Equal(t, "INV-2025-0001", items[0].Document.Number)

	next, err := seq.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, next)
}

type failingSequencer struct {
	inner invoices.Sequencer
	failN int
	calls int
}

func (f *failingSequencer) Next() (int, error) {
	f.calls++
	if f.calls == f.failN {
		return 0, errors.New("sequence unavailable")
	}
	return f.inner.Next()
}

func TestComposeBatch_FailureDoesNotStopLaterStudents(t *testing.T) {
	students := []models.Student{
		testStudent("s1", 100),
		testStudent("s2", 200),
		testStudent("s3", 300),
	}
	seq := &failingSequencer{inner: invoices.NewCounterSequencer(1), failN: 2}

	items := invoices.ComposeBatch(students, billing.IndexPayments(nil), models.DefaultSettings(), seq, testNow)
	require.Len(t, items, 3)

	require.NoError(t, items[0].Err)
	assert.Error(t, items[1].Err)
	assert.Nil(t, items[1].Document)
	require.NoError(t, items[2].Err)

	// Later students still get numbers after the failed allocation.
	assert.Equal(t, "INV-2025-0001", items[0].Document.Number)
	assert.Equal(t, "INV-2025-0002", items[2].Document.Number)
}

func TestCounterSequencer(t *testing.T) {
	seq := invoices.NewCounterSequencer(0)
	first, err := seq.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, first, "starts below 1 are normalized")

	second, err := seq.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, second)
}
