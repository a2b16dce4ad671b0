// Package spreadsheet reads employee time sheets from uploaded workbooks and
// writes the sample sheet offered for download.
package spreadsheet

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Format identifies an accepted upload format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
	FormatCSV  Format = "csv"
)

// DetectFormat maps a file name to its upload format by extension.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".xls":
		return FormatXLS, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", ErrNotSpreadsheet
	}
}

// Workbook is a parsed upload with one or more named sheets.
type Workbook interface {
	SheetNames() []string
	Rows(sheet string) ([][]string, error)
}

// Open parses content according to the extension of filename.
func Open(filename string, content []byte) (Workbook, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}
	if len(content) == 0 {
		return nil, ErrEmptyFile
	}

	switch format {
	case FormatCSV:
		rows, err := NewCSVParser().Parse(bytes.NewReader(content))
		if err != nil {
			return nil, err
		}
		return &csvWorkbook{name: sheetNameFromFile(filename), rows: rows}, nil
	default:
		return openExcel(content)
	}
}

// excelWorkbook reads sheets from an OOXML workbook. Legacy binary .xls
// content is rejected as not a spreadsheet.
type excelWorkbook struct {
	sheets []string
	rows   map[string][][]string
}

func openExcel(content []byte) (*excelWorkbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, NewImportError(ErrCodeImportInvalidFile, ErrNotSpreadsheet.Message, err)
	}
	defer func() { _ = f.Close() }()

	wb := &excelWorkbook{
		sheets: f.GetSheetList(),
		rows:   make(map[string][][]string),
	}
	if len(wb.sheets) == 0 {
		return nil, ErrEmptyFile
	}
	for _, sheet := range wb.sheets {
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		wb.rows[sheet] = rows
	}
	return wb, nil
}

func (w *excelWorkbook) SheetNames() []string {
	return append([]string(nil), w.sheets...)
}

func (w *excelWorkbook) Rows(sheet string) ([][]string, error) {
	rows, ok := w.rows[sheet]
	if !ok {
		return nil, sheetNotFound(sheet)
	}
	return rows, nil
}

// csvWorkbook exposes a CSV file as a single sheet named after the file.
type csvWorkbook struct {
	name string
	rows [][]string
}

func (w *csvWorkbook) SheetNames() []string {
	return []string{w.name}
}

func (w *csvWorkbook) Rows(sheet string) ([][]string, error) {
	if sheet != w.name {
		return nil, sheetNotFound(sheet)
	}
	return w.rows, nil
}

func sheetNotFound(sheet string) error {
	return NewImportError(ErrCodeImportSheetNotFound, fmt.Sprintf("sheet %q not found", sheet), nil)
}

func sheetNameFromFile(filename string) string {
	base := filepath.Base(filename)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" || name == "." {
		return "Sheet1"
	}
	return name
}

// IsSheetNotFound reports whether err is a missing sheet error.
func IsSheetNotFound(err error) bool {
	return errors.Is(err, ErrSheetNotFound)
}
