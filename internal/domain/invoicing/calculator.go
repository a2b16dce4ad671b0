package invoicing

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is one computed invoice row.
type LineItem struct {
	Position    int
	EmployeeID  uuid.UUID
	Name        string
	RatePerHour decimal.Decimal
	Hours       decimal.Decimal
	Amount      decimal.Decimal
}

// LineItems is the computed table of an invoice.
type LineItems struct {
	Items      []LineItem
	GrandTotal decimal.Decimal
}

// LineAmount returns rate × hours. Negative inputs count as zero. The result
// is not rounded; rounding happens only when formatting for display.
func LineAmount(rate, hours decimal.Decimal) decimal.Decimal {
	return nonNegative(rate).Mul(nonNegative(hours))
}

// CalculateLineItems recomputes every row amount and the grand total from
// the current rate and hours. Stored employee totals are not consulted.
func CalculateLineItems(employees []Employee) LineItems {
	result := LineItems{
		Items:      make([]LineItem, 0, len(employees)),
		GrandTotal: decimal.Zero,
	}
	for i, e := range employees {
		amount := LineAmount(e.RatePerHour, e.Hours)
		result.Items = append(result.Items, LineItem{
			Position:    i + 1,
			EmployeeID:  e.ID,
			Name:        e.Name,
			RatePerHour: nonNegative(e.RatePerHour),
			Hours:       nonNegative(e.Hours),
			Amount:      amount,
		})
		result.GrandTotal = result.GrandTotal.Add(amount)
	}
	return result
}

// ParseQuantity reads a rate or hours value typed by a user. Anything that
// does not parse as a number is zero.
func ParseQuantity(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatMoney renders an amount as "<CUR> 0.00".
func FormatMoney(currency string, amount decimal.Decimal) string {
	return currency + " " + amount.StringFixed(2)
}

// FormatRate renders a rate with two decimals and no currency.
func FormatRate(rate decimal.Decimal) string {
	return rate.StringFixed(2)
}

// FormatHours renders hours without trailing zeros, e.g. "160" or "7.5".
func FormatHours(hours decimal.Decimal) string {
	return hours.String()
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
