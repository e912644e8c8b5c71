package invoices_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tuition-admin/app/billing"
	"tuition-admin/app/invoices"
	"tuition-admin/app/models"
)

func TestRenderHTML(t *testing.T) {
	renderer, err := invoices.NewRenderer("../templates")
	require.NoError(t, err)

	student := testStudent("s1", 500, 150)
	idx := billing.IndexPayments([]models.Payment{
		{ID: "p1", StudentID: "s1", Amount: decimal.NewFromInt(300), Date: testNow},
	})
	settings := models.DefaultSettings()
	settings.SchoolName = "Hillside Academy"

	doc, err := invoices.Compose(student, idx, settings, invoices.NewCounterSequencer(1), testNow)
	require.NoError(t, err)

	out, err := renderer.RenderHTML(doc)
	require.NoError(t, err)

	page := string(out)
	assert.Contains(t, page, "INV-2025-0001")
	assert.Contains(t, page, "Hillside Academy")
	assert.Contains(t, page, "STU-s1")
	assert.Contains(t, page, "USD 650.00")
	assert.Contains(t, page, "USD 300.00")
	assert.Contains(t, page, "USD 350.00")
}
