package billing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"tuition-admin/app/billing"
	"tuition-admin/app/models"
)

func student(id string, fees ...float64) models.Student {
	s := models.Student{
		ID:          id,
		StudentCode: "STU-" + id,
		FirstName:   "Test",
		LastName:    "Student",
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

func payment(studentID string, amount float64) models.Payment {
	return models.Payment{
		ID:        studentID + "-p",
		StudentID: studentID,
		Amount:    decimal.NewFromFloat(amount),
		Date:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Method:    "Cash",
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name            string
		fees            []float64
		payments        []float64
		wantFees        string
		wantPaid        string
		wantOutstanding string
	}{
		{
			name:            "PartialPayment",
			fees:            []float64{500, 150},
			payments:        []float64{300},
			wantFees:        "650",
			wantPaid:        "300",
			wantOutstanding: "350",
		},
		{
			name:            "OverpaymentClampsToZero",
			fees:            []float64{200},
			payments:        []float64{250},
			wantFees:        "200",
			wantPaid:        "250",
			wantOutstanding: "0",
		},
		{
			name:            "NoPaymentsEqualsTotalFees",
			fees:            []float64{120.50, 79.50},
			wantFees:        "200",
			wantPaid:        "0",
			wantOutstanding: "200",
		},
		{
			name:            "EmptyFeeList",
			wantFees:        "0",
			wantPaid:        "0",
			wantOutstanding: "0",
		},
		{
			name:            "ExactPayment",
			fees:            []float64{400},
			payments:        []float64{400},
			wantFees:        "400",
			wantPaid:        "400",
			wantOutstanding: "0",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := student("s1", tc.fees...)
			var payments []models.Payment
			for _, amount := range tc.payments {
				payments = append(payments, payment("s1", amount))
			}

			got := billing.Summarize(&s, payments)
			assert.True(t, got.TotalFees.Equal(decimal.RequireFromString(tc.wantFees)), "total fees = %s", got.TotalFees)
			assert.True(t, got.TotalPaid.Equal(decimal.RequireFromString(tc.wantPaid)), "total paid = %s", got.TotalPaid)
			assert.True(t, got.Outstanding.Equal(decimal.RequireFromString(tc.wantOutstanding)), "outstanding = %s", got.Outstanding)
			assert.False(t, got.Outstanding.IsNegative())
		})
	}
}

func TestSummarize_IgnoresOtherStudents(t *testing.T) {
	s := student("s1", 100)
	payments := []models.Payment{
		payment("s1", 40),
		payment("s2", 500),
		payment("unknown", 10),
	}

	got := billing.Summarize(&s, payments)
	assert.True(t, got.TotalPaid.Equal(decimal.NewFromInt(40)))
	assert.True(t, got.Outstanding.Equal(decimal.NewFromInt(60)))
}

func TestSummarize_Idempotent(t *testing.T) {
	s := student("s1", 500, 150)
	payments := []models.Payment{payment("s1", 300)}

	first := billing.Summarize(&s, payments)
	second := billing.Summarize(&s, payments)
	assert.True(t, first.Outstanding.Equal(second.Outstanding))
	assert.True(t, first.TotalFees.Equal(second.TotalFees))
	assert.True(t, first.TotalPaid.Equal(second.TotalPaid))
}

func TestSummarize_OverpaymentKeepsCredit(t *testing.T) {
	s := student("s1", 200)
	got := billing.Summarize(&s, []models.Payment{payment("s1", 250)})
	assert.True(t, got.Credit.Equal(decimal.NewFromInt(50)))
	assert.True(t, got.Outstanding.IsZero())
}

func TestSummarize_FloatSafeSums(t *testing.T) {
	// 0.1 + 0.2 style sums must not drift: ten fees of 0.10 equal exactly 1.
	s := student("s1")
	for i := 0; i < 10; i++ {
		s.AssignedFees = append(s.AssignedFees, models.AssignedFee{
			Category: "Other",
			Amount:   decimal.RequireFromString("0.10"),
		})
	}
	got := billing.TotalFees(&s)
	assert.True(t, got.Equal(decimal.NewFromInt(1)), "got %s", got)
}

func TestPaymentIndex_MatchesUnindexed(t *testing.T) {
	students := []models.Student{
		student("s1", 500, 150),
		student("s2", 200),
		student("s3"),
	}
	payments := []models.Payment{
		payment("s1", 300),
		payment("s2", 250),
		payment("s2", 25),
		payment("ghost", 99),
	}
	idx := billing.IndexPayments(payments)

	for i := range students {
		direct := billing.Summarize(&students[i], payments)
		indexed := idx.Summarize(&students[i])
		assert.True(t, direct.Outstanding.Equal(indexed.Outstanding))
		assert.True(t, direct.TotalPaid.Equal(indexed.TotalPaid))
	}
}

func TestPaymentStatus(t *testing.T) {
	paid := student("paid", 100)
	partial := student("partial", 100)
	unpaid := student("unpaid", 100)
	payments := []models.Payment{
		payment("paid", 100),
		payment("partial", 30),
	}
	idx := billing.IndexPayments(payments)

	assert.Equal(t, billing.StatusPaid, idx.PaymentStatus(&paid))
	assert.Equal(t, billing.StatusPartial, idx.PaymentStatus(&partial))
	assert.Equal(t, billing.StatusUnpaid, idx.PaymentStatus(&unpaid))
}

func TestCountOrphans(t *testing.T) {
	students := []models.Student{student("s1", 100)}
	payments := []models.Payment{
		payment("s1", 10),
		payment("deleted-student", 20),
		payment("deleted-student", 30),
	}
	assert.Equal(t, 2, billing.CountOrphans(students, payments))
	assert.Equal(t, 0, billing.CountOrphans(students, nil))
}

func TestFormat(t *testing.T) {
	amount := decimal.RequireFromString("1234.5")
	assert.Equal(t, "EUR 1234.50", billing.Format(amount, "EUR"))
	assert.Equal(t, "USD 1234.50", billing.Format(amount, ""))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, "10.13", billing.Round2(decimal.RequireFromString("10.125")).StringFixed(2))
}
