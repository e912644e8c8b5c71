package invoices

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/template/html/v2"
	"github.com/shopspring/decimal"

	"tuition-admin/app/billing"
)

// Renderer turns composed documents into standalone HTML invoices.
type Renderer struct {
	engine *html.Engine
}

// NewRenderer loads the invoice templates from the given directory
// (app/templates in the running service).
func NewRenderer(templateDir string) (*Renderer, error) {
	engine := html.New(templateDir, ".html")
	engine.AddFunc("money", func(amount decimal.Decimal, currency string) string {
		return billing.Format(amount, currency)
	})
	engine.AddFunc("date", func(v interface{}) string {
		switch t := v.(type) {
		case time.Time:
			return t.Format("January 2, 2006")
		case *time.Time:
			if t != nil {
				return t.Format("January 2, 2006")
			}
		}
		return ""
	})
	if err := engine.Load(); err != nil {
		return nil, fmt.Errorf("loading invoice templates: %w", err)
	}
	return &Renderer{engine: engine}, nil
}

// RenderHTML renders the document as a self-contained markup page.
func (r *Renderer) RenderHTML(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.engine.Render(&buf, "invoices/document", doc); err != nil {
		return nil, fmt.Errorf("rendering invoice %s: %w", doc.Number, err)
	}
	return buf.Bytes(), nil
}
