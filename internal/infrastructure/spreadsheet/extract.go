package spreadsheet

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kizora/invoicer/internal/domain/invoicing"
)

// Column positions of a time sheet
const (
	ColEmployeeName = iota
	ColProjectName
	ColRatePerHour
	ColHours
	ColAmount
)

// MinColumns is the narrowest header accepted.
const MinColumns = 4

// Sheet is the result of reading one sheet.
type Sheet struct {
	Header  []string
	Entries []invoicing.TimeEntry
	Skipped []SkippedRow
}

// ExtractEntries reads time entries from the rows of a sheet. The first row
// is the header. Rows without a project name, an employee name, or any
// rate or hours are skipped, as are rows with a negative rate, hours or
// amount. Row numbers are 1-based sheet rows.
func ExtractEntries(rows [][]string) (*Sheet, error) {
	if len(rows) < 2 {
		return nil, ErrEmptyFile
	}
	if len(rows[0]) < MinColumns {
		return nil, ErrMissingColumns
	}

	sheet := &Sheet{Header: trimAll(rows[0])}
	for i, row := range rows[1:] {
		rowNum := i + 2
		if isBlank(row) {
			sheet.Skipped = append(sheet.Skipped, SkippedRow{Row: rowNum, Reason: SkipBlank})
			continue
		}

		entry := invoicing.TimeEntry{
			Row:          rowNum,
			EmployeeName: cell(row, ColEmployeeName),
			ProjectName:  cell(row, ColProjectName),
			RatePerHour:  ParseNumber(cell(row, ColRatePerHour)),
			Hours:        ParseNumber(cell(row, ColHours)),
		}
		entry.Amount = ParseNumber(cell(row, ColAmount))
		if entry.Amount.IsZero() {
			entry.Amount = entry.RatePerHour.Mul(entry.Hours)
		}

		if reason := skipReason(entry); reason != "" {
			sheet.Skipped = append(sheet.Skipped, SkippedRow{Row: rowNum, Reason: reason})
			continue
		}
		sheet.Entries = append(sheet.Entries, entry)
	}

	if len(sheet.Entries) == 0 {
		return sheet, ErrNoData
	}
	return sheet, nil
}

func skipReason(e invoicing.TimeEntry) string {
	switch {
	case e.EmployeeName == "":
		return SkipMissingEmployee
	case e.ProjectName == "":
		return SkipMissingProject
	case e.RatePerHour.IsNegative(), e.Hours.IsNegative(), e.Amount.IsNegative():
		return SkipNegative
	case !e.Usable():
		return SkipNoQuantity
	default:
		return ""
	}
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// ParseNumber reads the numeric prefix of a cell, so "160h" is 160. Cells
// without a leading number are zero.
func ParseNumber(s string) decimal.Decimal {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return decimal.Zero
	}
	return invoicing.ParseQuantity(strings.TrimSuffix(m, "."))
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func trimAll(row []string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = strings.TrimSpace(c)
	}
	return out
}
