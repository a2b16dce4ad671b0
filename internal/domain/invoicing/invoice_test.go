package invoicing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInvoice(t *testing.T) {
	now := date(2025, time.March, 14)

	t.Run("formats every computed value once", func(t *testing.T) {
		p := newTestProject(t,
			EmployeeInput{Name: "Asha", RatePerHour: dec("42.5"), Hours: dec("7.5")},
			EmployeeInput{Name: "Ben", RatePerHour: dec("50"), Hours: dec("160")},
		)
		p.Currency = "USD"
		p.TotalAmount = dec("1")

		inv := BuildInvoice(p, ResolveTemplate("modern"), now)

		assert.Equal(t, LayoutModern, inv.Template.Layout)
		assert.Equal(t, "INVOICE-WEST-MAR25", inv.Display.InvoiceNumber)
		assert.Equal(t, "2025-03-31", inv.Display.InvoiceDate)
		assert.Equal(t, "2025-04-15", inv.Display.PaymentDueDate)
		require.Len(t, inv.Display.Rows, 2)
		assert.Equal(t, DisplayRow{
			EmployeeID: p.Employees[0].ID.String(),
			Position:   1,
			Name:       "Asha",
			Rate:       "42.50",
			Hours:      "7.5",
			Amount:     "USD 318.75",
		}, inv.Display.Rows[0])
		assert.Equal(t, "USD 8318.75", inv.Display.GrandTotal)
	})

	t.Run("zero employees total for every template", func(t *testing.T) {
		p := newTestProject(t)
		for _, tmpl := range Templates() {
			inv := BuildInvoice(p, tmpl, now)
			assert.Empty(t, inv.Display.Rows, tmpl.ID)
			assert.Equal(t, "EUR 0.00", inv.Display.GrandTotal, tmpl.ID)
		}
	})

	t.Run("unknown layout renders as standard", func(t *testing.T) {
		p := newTestProject(t)
		tmpl := DefaultTemplate()
		tmpl.Layout = "nonexistent"

		inv := BuildInvoice(p, tmpl, now)

		assert.Equal(t, LayoutStandard, inv.Template.Layout)
	})
}

func TestInvoice_ExportFilename(t *testing.T) {
	p := newTestProject(t)
	now := date(2025, time.March, 14)

	assert.Equal(t, "Invoice-INVOICE-WEST-MAR25.html", BuildInvoice(p, DefaultTemplate(), now).ExportFilename())

	p.InvoiceNumber = "2025/007"
	assert.Equal(t, "Invoice-2025-007.html", BuildInvoice(p, DefaultTemplate(), now).ExportFilename())
}
