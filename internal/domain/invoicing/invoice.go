package invoicing

import (
	"strings"
	"time"
)

// Invoice is the single computed view of a project that every renderer
// consumes. Display holds the exact strings both the live view and the
// export document print.
type Invoice struct {
	Project  *Project
	Template InvoiceTemplate
	Fields   EffectiveFields
	Lines    LineItems
	Display  DisplayValues
	IssuedAt time.Time
}

// DisplayValues are the formatted computed values of an invoice.
type DisplayValues struct {
	Currency       string
	InvoiceNumber  string
	InvoiceDate    string
	PaymentDueDate string
	WorkPeriod     string
	Rows           []DisplayRow
	GrandTotal     string
}

// DisplayRow is one formatted line item.
type DisplayRow struct {
	EmployeeID string
	Position   int
	Name       string
	Rate       string
	Hours      string
	Amount     string
}

// BuildInvoice runs the whole computation stage: effective fields, line
// items and their display formatting. An unknown template layout is
// rendered as standard.
func BuildInvoice(p *Project, tmpl InvoiceTemplate, now time.Time) *Invoice {
	tmpl.Layout = tmpl.Layout.OrDefault()

	fields := DeriveEffectiveFields(p, now)
	lines := CalculateLineItems(p.Employees)
	currency := p.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	display := DisplayValues{
		Currency:       currency,
		InvoiceNumber:  fields.InvoiceNumber,
		InvoiceDate:    fields.InvoiceDate,
		PaymentDueDate: fields.PaymentDueDate,
		WorkPeriod:     fields.WorkPeriod,
		Rows:           make([]DisplayRow, 0, len(lines.Items)),
		GrandTotal:     FormatMoney(currency, lines.GrandTotal),
	}
	for _, item := range lines.Items {
		display.Rows = append(display.Rows, DisplayRow{
			EmployeeID: item.EmployeeID.String(),
			Position:   item.Position,
			Name:       item.Name,
			Rate:       FormatRate(item.RatePerHour),
			Hours:      FormatHours(item.Hours),
			Amount:     FormatMoney(currency, item.Amount),
		})
	}

	return &Invoice{
		Project:  p,
		Template: tmpl,
		Fields:   fields,
		Lines:    lines,
		Display:  display,
		IssuedAt: now,
	}
}

// ExportFilename returns Invoice-<invoiceNumber>.html. Path separators in
// the number are replaced so the name stays a single path element.
func (inv *Invoice) ExportFilename() string {
	number := strings.NewReplacer("/", "-", "\\", "-").Replace(inv.Fields.InvoiceNumber)
	return "Invoice-" + number + ".html"
}
