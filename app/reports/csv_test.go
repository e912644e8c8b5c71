package reports_test

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tuition-admin/app/models"
	"tuition-admin/app/reports"
)

func parseCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestStudentsCSV(t *testing.T) {
	snap := testSnapshot()
	data, err := reports.StudentsCSV(snap)
	require.NoError(t, err)

	rows := parseCSV(t, data)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{
		"Student ID", "First Name", "Last Name", "Grade", "Status",
		"Contact Email", "Enrollment Date",
		"Total Fees", "Total Paid", "Outstanding", "Payment Status",
	}, rows[0])

	// s1: fees 650, paid 300, outstanding 350, partial.
	assert.Equal(t, "STU-001", rows[1][0])
	assert.Equal(t, "USD 650.00", rows[1][7])
	assert.Equal(t, "USD 300.00", rows[1][8])
	assert.Equal(t, "USD 350.00", rows[1][9])
	assert.Equal(t, "partial", rows[1][10])
}

func TestStudentsCSV_StableBetweenRuns(t *testing.T) {
	snap := testSnapshot()
	first, err := reports.StudentsCSV(snap)
	require.NoError(t, err)
	second, err := reports.StudentsCSV(snap)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPaymentsCSV_InclusiveDateRange(t *testing.T) {
	snap := testSnapshot()
	// Payments fall on Mar 1, Mar 5 and Mar 10.
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

	data, err := reports.PaymentsCSV(snap, start, end)
	require.NoError(t, err)

	rows := parseCSV(t, data)
	require.Len(t, rows, 3, "both boundary payments included, Mar 10 excluded")
	assert.Equal(t, "03/01/2025", rows[1][0])
	assert.Equal(t, "STU-001", rows[1][1])
	assert.Equal(t, "03/05/2025", rows[2][0])

	// Narrow range excluding everything.
	data, err = reports.PaymentsCSV(snap,
		time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, parseCSV(t, data), 1)
}

func TestInRange_InclusiveAtDayGranularity(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

	assert.True(t, reports.InRange(start, start, end))
	assert.True(t, reports.InRange(end, start, end))
	assert.True(t, reports.InRange(time.Date(2025, 3, 5, 23, 59, 0, 0, time.UTC), start, end),
		"time of day on the end date is ignored")
	assert.False(t, reports.InRange(time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), start, end))
	assert.False(t, reports.InRange(time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC), start, end))
}

func TestPaymentsCSV_OrphanPaymentListedWithoutName(t *testing.T) {
	snap := testSnapshot()
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := start

	data, err := reports.PaymentsCSV(snap, start, end)
	require.NoError(t, err)

	rows := parseCSV(t, data)
	require.Len(t, rows, 2)
	assert.Equal(t, "", rows[1][1])
	assert.Equal(t, "", rows[1][2])
	assert.Equal(t, "USD 75.00", rows[1][3])
}

func TestOutstandingCSV_OnlyUnpaidStudents(t *testing.T) {
	snap := testSnapshot()
	data, err := reports.OutstandingCSV(snap)
	require.NoError(t, err)

	rows := parseCSV(t, data)
	require.Len(t, rows, 3, "s2 is fully paid and excluded")
	assert.Equal(t, "STU-001", rows[1][0])
	assert.Equal(t, "STU-003", rows[2][0])
	assert.Equal(t, "USD 350.00", rows[1][5])
	assert.Equal(t, "USD 300.00", rows[2][5])
}

func TestFeeTemplatesCSV(t *testing.T) {
	snap := testSnapshot()
	data, err := reports.FeeTemplatesCSV(snap)
	require.NoError(t, err)

	rows := parseCSV(t, data)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Name", "Category", "Amount"}, rows[0])
	assert.Equal(t, []string{"Grade 5 Tuition", "Tuition", "USD 500.00"}, rows[1])
}

func TestCSV_FallsBackToDefaultFormatting(t *testing.T) {
	snap := testSnapshot()
	snap.Settings = models.Settings{} // settings unavailable

	data, err := reports.OutstandingCSV(snap)
	require.NoError(t, err)

	rows := parseCSV(t, data)
	assert.Equal(t, "USD 350.00", rows[1][5], "blank currency falls back to USD")

	data, err = reports.PaymentsCSV(snap,
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", parseCSV(t, data)[1][0], "unknown date format falls back to ISO")
}
