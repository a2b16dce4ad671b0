package spreadsheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Sample sheet constants
const (
	SampleSheetName   = "Employee Data"
	SampleFilename    = "employee_data_template.xlsx"
	SampleContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// SampleHeader is the header row of the sample sheet.
var SampleHeader = []string{"Employee Name", "Project Name", "Rate Per Hour", "Hours", "Total Amount"}

// DefaultSampleProjects fill the sample when fewer project names are known.
var DefaultSampleProjects = []string{"West Horminics", "East Analytics", "North Platform"}

type sampleRow struct {
	employee string
	project  int
	rate     float64
	hours    float64
}

var sampleRows = []sampleRow{
	{"John Doe", 0, 15.25, 160},
	{"Jane Smith", 0, 17, 160},
	{"Bob Johnson", 1, 18.5, 140},
	{"Alice Brown", 2, 16.75, 120},
}

// SampleProjectNames returns three project names for the sample, taken from
// known names first and the defaults after.
func SampleProjectNames(known []string) []string {
	names := make([]string, 0, len(DefaultSampleProjects))
	for _, n := range known {
		if n == "" {
			continue
		}
		if len(names) == len(DefaultSampleProjects) {
			break
		}
		names = append(names, n)
	}
	for i := len(names); i < len(DefaultSampleProjects); i++ {
		names = append(names, DefaultSampleProjects[i])
	}
	return names
}

// WriteSample writes the sample workbook to w, using the given project names
// where available.
func WriteSample(w io.Writer, projectNames []string) error {
	projects := SampleProjectNames(projectNames)

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SampleSheetName); err != nil {
		return fmt.Errorf("failed to name sample sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SampleSheetName)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}
	if err := sw.SetColWidth(1, 2, 22); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	if err := sw.SetColWidth(3, 5, 14); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	header := make([]interface{}, len(SampleHeader))
	for i, h := range SampleHeader {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range sampleRows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{r.employee, projects[r.project], r.rate, r.hours, r.rate * r.hours}
		if err := sw.SetRow(cellRef, values); err != nil {
			return fmt.Errorf("failed to write sample row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sample sheet: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write sample workbook: %w", err)
	}
	return nil
}
