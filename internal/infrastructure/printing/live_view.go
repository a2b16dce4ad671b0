package printing

import (
	"strconv"
	"strings"
	"time"

	"github.com/kizora/invoicer/internal/domain/invoicing"
)

// Year window offered by the month-year picker, relative to the issue year.
const (
	yearsBefore = 2
	yearsAfter  = 7
)

// MonthYearOptions backs the work period picker.
type MonthYearOptions struct {
	Month  string   `json:"month"`
	Year   int      `json:"year"`
	Months []string `json:"months"`
	Years  []int    `json:"years"`
}

// LiveView builds the interactive document. Outside editing mode it is the
// same document the export renderer writes out.
type LiveView struct {
	issuer Issuer
}

// NewLiveView creates a live view builder for the given issuer.
func NewLiveView(issuer Issuer) *LiveView {
	return &LiveView{issuer: issuer.WithDefaults()}
}

// Build lays out the invoice. With editing set, every field with a key and
// every line item cell is bound to an input control and each row gets a
// remove action.
func (v *LiveView) Build(inv *invoicing.Invoice, editing bool) *Document {
	return compose(inv, v.issuer, editing)
}

func monthYearOptions(value string, issueYear int) *MonthYearOptions {
	opts := &MonthYearOptions{
		Months: make([]string, 0, 12),
		Years:  make([]int, 0, yearsBefore+yearsAfter+1),
		Year:   issueYear,
	}
	for m := time.January; m <= time.December; m++ {
		opts.Months = append(opts.Months, m.String())
	}
	for y := issueYear - yearsBefore; y <= issueYear+yearsAfter; y++ {
		opts.Years = append(opts.Years, y)
	}

	parts := strings.Fields(value)
	if len(parts) > 0 {
		for _, m := range opts.Months {
			if strings.EqualFold(m, parts[0]) {
				opts.Month = m
				break
			}
		}
	}
	if len(parts) > 1 {
		if y, err := strconv.Atoi(parts[1]); err == nil {
			opts.Year = y
		}
	}
	return opts
}
