package invoicing

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical dash form used by date inputs and rendering.
const DateLayout = "2006-01-02"

// SlashDateLayout is the short slash form the storage fallback emits.
const SlashDateLayout = "02/01/06"

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// fallbackLayouts are tried, in order, for inputs that are neither dash nor
// day/month/year slash form.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"2006.01.02",
	"02.01.2006",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	"02-Jan-2006",
	"Mon Jan 2 2006",
	"Mon, 02 Jan 2006",
}

// MonthEnd returns the last calendar day of now's month.
func MonthEnd(now time.Time) time.Time {
	y, m, _ := now.Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC)
}

// MonthEndString returns MonthEnd in dash form.
func MonthEndString(now time.Time) string {
	return MonthEnd(now).Format(DateLayout)
}

// NormalizeDate converts a stored textual date into YYYY-MM-DD. Inputs
// already in dash form are returned unchanged; DD/MM/YY[YY] is converted;
// other recognisable dates are reformatted; anything else becomes the last
// day of now's month.
func NormalizeDate(input string, now time.Time) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return MonthEndString(now)
	}
	if isoDatePattern.MatchString(s) {
		return s
	}
	if strings.Contains(s, "/") {
		if t, ok := parseDayMonthYear(s); ok {
			return t.Format(DateLayout)
		}
	}
	if t, ok := parseLoose(s); ok {
		return t.Format(DateLayout)
	}
	return MonthEndString(now)
}

// NormalizeForStorage converts an edited date into the form persisted with a
// project. Dash form is kept and slash form is converted to dash form;
// anything else is replaced by the current month end in DD/MM/YY form.
func NormalizeForStorage(input string, now time.Time) string {
	s := strings.TrimSpace(input)
	if len(s) == len(DateLayout) && strings.Contains(s, "-") {
		return s
	}
	if strings.Contains(s, "/") {
		if t, ok := parseDayMonthYear(s); ok {
			return t.Format(DateLayout)
		}
	}
	return MonthEnd(now).Format(SlashDateLayout)
}

// DueDate returns the payment due date for an invoice date: fifteen calendar
// days later. A date that cannot be read falls back to the current month
// end before the offset is applied.
func DueDate(invoiceDate string, now time.Time) string {
	return ParseDate(invoiceDate, now).AddDate(0, 0, PaymentTermDays).Format(DateLayout)
}

// PaymentTermDays is the fixed distance between invoice date and due date.
const PaymentTermDays = 15

// ParseDate normalizes input and returns it as a calendar date. Dash-form
// strings that are not real dates (2025-02-30) fall back to month end.
func ParseDate(input string, now time.Time) time.Time {
	t, err := time.Parse(DateLayout, NormalizeDate(input, now))
	if err != nil {
		return MonthEnd(now)
	}
	return t
}

// WorkPeriodLabel returns the "Month Year" label for now, e.g. "March 2025".
func WorkPeriodLabel(now time.Time) string {
	return now.Month().String() + " " + strconv.Itoa(now.Year())
}

// MonthAbbreviation returns the upper-case three letter month, e.g. "MAR".
func MonthAbbreviation(now time.Time) string {
	return strings.ToUpper(now.Format("Jan"))
}

// parseDayMonthYear reads DD/MM/YY or DD/MM/YYYY. Two digit years are
// always widened into the 2000s.
func parseDayMonthYear(s string) (time.Time, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, false
	}
	yearPart := strings.TrimSpace(parts[2])
	if len(yearPart) == 2 {
		yearPart = "20" + yearPart
	}
	if len(yearPart) != 4 {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return time.Time{}, false
	}
	return calendarDate(year, month, day)
}

func parseLoose(s string) (time.Time, bool) {
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// calendarDate builds a date only if it exists; time.Date would silently
// roll 31/02 over into March.
func calendarDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}
