package invoicing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func employee(name, rate, hours string) Employee {
	return Employee{
		Name:        name,
		RatePerHour: dec(rate),
		Hours:       dec(hours),
	}
}

func TestLineAmount(t *testing.T) {
	tests := []struct {
		name  string
		rate  string
		hours string
		want  string
	}{
		{"whole numbers", "50", "160", "8000"},
		{"fractional hours", "42.5", "7.5", "318.75"},
		{"no rounding in the stored value", "10.005", "3", "30.015"},
		{"zero hours", "80", "0", "0"},
		{"negative rate counts as zero", "-10", "5", "0"},
		{"negative hours count as zero", "10", "-5", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LineAmount(dec(tt.rate), dec(tt.hours))
			assert.True(t, dec(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestCalculateLineItems(t *testing.T) {
	t.Run("recomputes from rate and hours, ignoring stale totals", func(t *testing.T) {
		a := employee("Asha", "50", "160")
		a.ID = uuid.New()
		a.Total = dec("1")
		b := employee("Ben", "10.005", "3")
		b.ID = uuid.New()

		lines := CalculateLineItems([]Employee{a, b})

		require.Len(t, lines.Items, 2)
		assert.Equal(t, 1, lines.Items[0].Position)
		assert.Equal(t, 2, lines.Items[1].Position)
		assert.Equal(t, a.ID, lines.Items[0].EmployeeID)
		assert.True(t, dec("8000").Equal(lines.Items[0].Amount))
		assert.True(t, dec("8030.015").Equal(lines.GrandTotal))
	})

	t.Run("no employees", func(t *testing.T) {
		lines := CalculateLineItems(nil)
		assert.Empty(t, lines.Items)
		assert.True(t, lines.GrandTotal.IsZero())
		assert.Equal(t, "USD 0.00", FormatMoney("USD", lines.GrandTotal))
	})
}

func TestParseQuantity(t *testing.T) {
	assert.True(t, dec("7.5").Equal(ParseQuantity("7.5")))
	assert.True(t, dec("3").Equal(ParseQuantity(" 3 ")))
	assert.True(t, ParseQuantity("abc").IsZero())
	assert.True(t, ParseQuantity("").IsZero())
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "EUR 30.02", FormatMoney("EUR", dec("30.015")))
	assert.Equal(t, "EUR 8000.00", FormatMoney("EUR", dec("8000")))
	assert.Equal(t, "42.50", FormatRate(dec("42.5")))
	assert.Equal(t, "160", FormatHours(dec("160.00")))
	assert.Equal(t, "7.5", FormatHours(dec("7.50")))
}
