package invoices

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"tuition-admin/app/billing"
	"tuition-admin/app/database"
	"tuition-admin/app/invoices"
	"tuition-admin/app/models"
	"tuition-admin/app/reports"
)

// InvoiceRow is one student in the invoice listing, showing what an invoice
// generated now would bill.
type InvoiceRow struct {
	StudentID   string          `json:"student_id"`
	StudentCode string          `json:"student_code"`
	Name        string          `json:"name"`
	Grade       models.Grade    `json:"grade"`
	TotalFees   decimal.Decimal `json:"total_fees"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// GetInvoiceListAPI returns the balance table the invoice page is built
// from. Only active students are invoiceable, so inactive ones never appear.
func GetInvoiceListAPI(c *fiber.Ctx, db *sql.DB) error {
	snap, err := database.LoadSnapshot(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load students")
	}

	report := reports.Build(snap, reports.Criteria{ActiveOnly: true})
	rows := make([]InvoiceRow, 0, len(report.Students))
	for i := range report.Students {
		s := &report.Students[i]
		summary := report.Index.Summarize(s)
		rows = append(rows, InvoiceRow{
			StudentID:   s.ID,
			StudentCode: s.StudentCode,
			Name:        s.FullName(),
			Grade:       s.Grade,
			TotalFees:   summary.TotalFees,
			TotalPaid:   summary.TotalPaid,
			Outstanding: summary.Outstanding,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    rows,
	})
}

// GetNextNumberAPI previews the next invoice number without consuming it.
func GetNextNumberAPI(c *fiber.Ctx, db *sql.DB) error {
	settings, err := database.GetSettings(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load settings")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"next_number": invoices.Number(settings.InvoicePrefix, time.Now().Year(), settings.InvoiceSeq),
		},
	})
}

// GenerateInvoiceAPI composes and renders one student's invoice, returned as
// a downloadable HTML document.
func GenerateInvoiceAPI(c *fiber.Ctx, db *sql.DB, renderer *invoices.Renderer) error {
	student, err := database.GetStudentByID(db, c.Params("id"))
	if err == sql.ErrNoRows {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load student")
	}
	if !student.IsActive() {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot invoice an inactive student")
	}

	settings, err := database.GetSettings(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load settings")
	}

	payments, err := database.GetPayments(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load payments")
	}

	seq := &database.InvoiceSequencer{DB: db}
	doc, err := invoices.Compose(*student, billing.IndexPayments(payments), settings, seq, time.Now())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to compose invoice")
	}

	page, err := renderer.RenderHTML(doc)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render invoice")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+doc.Number+`.html"`)
	return c.Send(page)
}

// BulkRequest names the students to invoice together.
type BulkRequest struct {
	StudentIDs []string `json:"student_ids"`
}

// BulkResult reports one student's outcome from a bulk run.
type BulkResult struct {
	StudentID string `json:"student_id"`
	Number    string `json:"number,omitempty"`
	HTML      string `json:"html,omitempty"`
	Error     string `json:"error,omitempty"`
}

// GenerateBulkAPI composes invoices for the selected students in request
// order. Students that fail are reported individually and do not stop the
// rest of the batch.
func GenerateBulkAPI(c *fiber.Ctx, db *sql.DB, renderer *invoices.Renderer) error {
	var req BulkRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if len(req.StudentIDs) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "student_ids is required")
	}

	snap, err := database.LoadSnapshot(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load students")
	}

	selected, rejected := invoices.SelectBatch(snap.Students, req.StudentIDs)

	seq := &database.InvoiceSequencer{DB: db}
	items := invoices.ComposeBatch(selected, billing.IndexPayments(snap.Payments), snap.Settings, seq, time.Now())

	results := make([]BulkResult, 0, len(req.StudentIDs))
	generated := 0
	for _, id := range req.StudentIDs {
		if reason, ok := rejected[id]; ok {
			results = append(results, BulkResult{StudentID: id, Error: reason})
		}
	}
	for _, item := range items {
		res := BulkResult{StudentID: item.StudentID}
		if item.Err != nil {
			res.Error = item.Err.Error()
		} else if page, err := renderer.RenderHTML(item.Document); err != nil {
			res.Number = item.Document.Number
			res.Error = err.Error()
		} else {
			res.Number = item.Document.Number
			res.HTML = string(page)
			generated++
		}
		results = append(results, res)
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"data":      results,
		"message":   "Invoices generated",
		"generated": generated,
	})
}
