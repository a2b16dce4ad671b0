package invoicing

import (
	"strings"
	"time"
)

// invoiceNumberLetters is how many letters of the project name go into a
// derived invoice number.
const invoiceNumberLetters = 4

// EffectiveFields is the reconciled set of invoice header values used for
// rendering. It is derived on every render and never persisted.
type EffectiveFields struct {
	InvoiceNumber  string `json:"invoice_number"`
	InvoiceDate    string `json:"invoice_date"`
	PaymentDueDate string `json:"payment_due_date"`
	WorkPeriod     string `json:"work_period"`
}

// DeriveInvoiceNumber builds INVOICE-<LETTERS>-<MON><YY> from the first four
// ASCII letters of the project name and now's month and year.
func DeriveInvoiceNumber(projectName string, now time.Time) string {
	var letters strings.Builder
	for _, r := range projectName {
		if letters.Len() == invoiceNumberLetters {
			break
		}
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
			letters.WriteRune(r)
		}
	}
	year := now.Format("06")
	return "INVOICE-" + strings.ToUpper(letters.String()) + "-" + MonthAbbreviation(now) + year
}

// DeriveEffectiveFields resolves invoice number, dates and work period for p
// as of now. The stored payment due date is ignored: it is always the
// resolved invoice date plus the payment term.
func DeriveEffectiveFields(p *Project, now time.Time) EffectiveFields {
	number := strings.TrimSpace(p.InvoiceNumber)
	if number == "" {
		number = DeriveInvoiceNumber(p.Name, now)
	}

	invoiceDate := NormalizeDate(p.InvoiceDate, now)

	workPeriod := strings.TrimSpace(p.WorkPeriod)
	if workPeriod == "" {
		workPeriod = WorkPeriodLabel(now)
	}

	return EffectiveFields{
		InvoiceNumber:  number,
		InvoiceDate:    invoiceDate,
		PaymentDueDate: DueDate(invoiceDate, now),
		WorkPeriod:     workPeriod,
	}
}
