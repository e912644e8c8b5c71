package reports_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"tuition-admin/app/billing"
	"tuition-admin/app/models"
	"tuition-admin/app/reports"
)

func testSnapshot() *models.Snapshot {
	fee := func(amount float64) models.AssignedFee {
		return models.AssignedFee{Category: "Tuition", Amount: decimal.NewFromFloat(amount)}
	}
	pay := func(studentID string, amount float64, day int) models.Payment {
		return models.Payment{
			ID:        studentID + "-p",
			StudentID: studentID,
			Amount:    decimal.NewFromFloat(amount),
			Date:      time.Date(2025, 3, day, 10, 30, 0, 0, time.UTC),
			Method:    "Cash",
		}
	}

	return &models.Snapshot{
		Students: []models.Student{
			{ID: "s1", StudentCode: "STU-001", FirstName: "Alice", LastName: "Ngoya", Grade: "5th",
				Status: models.StudentActive, AssignedFees: []models.AssignedFee{fee(500), fee(150)}},
			{ID: "s2", StudentCode: "STU-002", FirstName: "Brian", LastName: "Okello", Grade: "5th",
				Status: models.StudentActive, AssignedFees: []models.AssignedFee{fee(200)}},
			{ID: "s3", StudentCode: "STU-003", FirstName: "Clara", LastName: "Mbeki", Grade: "8th",
				Status: models.StudentInactive, AssignedFees: []models.AssignedFee{fee(300)}},
		},
		Payments: []models.Payment{
			pay("s1", 300, 1),
			pay("s2", 200, 5),
			pay("ghost", 75, 10),
		},
		FeeTemplates: []models.FeeTemplate{
			{ID: "t1", Name: "Grade 5 Tuition", Category: "Tuition", Amount: decimal.NewFromInt(500)},
		},
		Settings: models.DefaultSettings(),
	}
}

func TestBuild_NoCriteriaMatchesAll(t *testing.T) {
	report := reports.Build(testSnapshot(), reports.Criteria{})
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.WithOutstanding)
	assert.Equal(t, 1, report.OrphanPayments)
}

func TestBuild_ConjunctiveFilters(t *testing.T) {
	snap := testSnapshot()

	tests := []struct {
		name    string
		crit    reports.Criteria
		wantIDs []string
	}{
		{"SearchByName", reports.Criteria{Search: "alice"}, []string{"s1"}},
		{"SearchByCode", reports.Criteria{Search: "stu-003"}, []string{"s3"}},
		{"Grade", reports.Criteria{Grade: "5th"}, []string{"s1", "s2"}},
		{"Status", reports.Criteria{Status: models.StudentInactive}, []string{"s3"}},
		{"BalanceOutstanding", reports.Criteria{Balance: reports.BalanceOutstanding}, []string{"s1", "s3"}},
		{"BalancePaid", reports.Criteria{Balance: reports.BalancePaid}, []string{"s2"}},
		{"GradeAndBalance", reports.Criteria{Grade: "5th", Balance: reports.BalanceOutstanding}, []string{"s1"}},
		{"ActiveOnly", reports.Criteria{ActiveOnly: true, Balance: reports.BalanceOutstanding}, []string{"s1"}},
		{"NoMatch", reports.Criteria{Search: "alice", Grade: "8th"}, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			report := reports.Build(snap, tc.crit)
			var ids []string
			for _, s := range report.Students {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tc.wantIDs, ids)
		})
	}
}

// The sum over the "outstanding" view must equal the per-student sums from
// the calculator; views never drift from the single source of truth.
func TestBuild_OutstandingViewReconciles(t *testing.T) {
	snap := testSnapshot()
	report := reports.Build(snap, reports.Criteria{Balance: reports.BalanceOutstanding})

	viewSum := decimal.Zero
	for i := range report.Students {
		viewSum = viewSum.Add(report.Index.Summarize(&report.Students[i]).Outstanding)
	}

	independent := decimal.Zero
	for i := range snap.Students {
		independent = independent.Add(billing.Outstanding(&snap.Students[i], snap.Payments))
	}

	assert.True(t, viewSum.Equal(independent), "view %s vs independent %s", viewSum, independent)
}

func TestPaginate(t *testing.T) {
	students := make([]models.Student, 7)
	for i := range students {
		students[i].ID = string(rune('a' + i))
	}

	page := reports.Paginate(students, 2, 3)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 7, page.TotalItems)
	assert.Len(t, page.Students, 3)
	assert.Equal(t, "d", page.Students[0].ID)

	// Page clamps into [1, totalPages].
	assert.Equal(t, 3, reports.Paginate(students, 99, 3).Page)
	assert.Equal(t, 1, reports.Paginate(students, 0, 3).Page)
	assert.Len(t, reports.Paginate(students, 3, 3).Students, 1)

	empty := reports.Paginate(nil, 1, 25)
	assert.Equal(t, 1, empty.Page)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Empty(t, empty.Students)
}

func TestGrades(t *testing.T) {
	snap := testSnapshot()
	snap.Students = append(snap.Students, models.Student{ID: "s4", Grade: "  "})
	assert.Equal(t, []string{"5th", "8th"}, reports.Grades(snap.Students))
}
