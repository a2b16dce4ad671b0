package printing

import (
	"strings"
	"testing"
	"time"

	"github.com/kizora/invoicer/internal/domain/invoicing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var issuedAt = time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC)

func testInvoice(t *testing.T, templateID string, employees ...invoicing.EmployeeInput) *invoicing.Invoice {
	t.Helper()
	p, err := invoicing.NewProject(invoicing.ProjectDetails{
		Name:            "West Horminics",
		CustomerName:    "West Horminics GmbH",
		CustomerAddress: "Hauptstrasse 1, Berlin",
		ContactPerson:   "Mira Vogel",
		Email:           "billing@westhorminics.example",
		InvoicePurpose:  "Software development services",
		SowRef:          "SOW-17",
		WorkPeriod:      "February 2025",
	}, employees, issuedAt)
	require.NoError(t, err)
	return invoicing.BuildInvoice(p, invoicing.ResolveTemplate(templateID), issuedAt)
}

func twoEmployees() []invoicing.EmployeeInput {
	return []invoicing.EmployeeInput{
		{Name: "Asha Rao", RatePerHour: decimal.RequireFromString("42.5"), Hours: decimal.RequireFromString("7.5")},
		{Name: "Ben O'Neil", RatePerHour: decimal.RequireFromString("50"), Hours: decimal.RequireFromString("160")},
	}
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"'", "&#39;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&#34;",
	"+", "&#43;",
)

// escaped returns s as html/template writes it in element content.
func escaped(s string) string {
	return htmlEscaper.Replace(s)
}
