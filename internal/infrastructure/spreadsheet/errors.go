package spreadsheet

import (
	"errors"
	"fmt"
)

// Import error codes
const (
	ErrCodeImportInvalidFile     = "ERR_IMPORT_INVALID_FILE"
	ErrCodeImportEmptyFile       = "ERR_IMPORT_EMPTY_FILE"
	ErrCodeImportFileTooLarge    = "ERR_IMPORT_FILE_TOO_LARGE"
	ErrCodeImportInvalidEncoding = "ERR_IMPORT_INVALID_ENCODING"
	ErrCodeImportMissingColumns  = "ERR_IMPORT_MISSING_COLUMNS"
	ErrCodeImportSheetNotFound   = "ERR_IMPORT_SHEET_NOT_FOUND"
	ErrCodeImportNoData          = "ERR_IMPORT_NO_DATA"
)

// ImportError is a failure that aborts parsing of an upload or a sheet.
type ImportError struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface
func (e *ImportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *ImportError) Unwrap() error {
	return e.Cause
}

// Is matches import errors by code
func (e *ImportError) Is(target error) bool {
	var t *ImportError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// NewImportError creates an ImportError
func NewImportError(code, message string, cause error) *ImportError {
	return &ImportError{Code: code, Message: message, Cause: cause}
}

// Sentinel errors for errors.Is checks
var (
	ErrNotSpreadsheet = &ImportError{
		Code:    ErrCodeImportInvalidFile,
		Message: "file is not a spreadsheet",
	}
	ErrEmptyFile = &ImportError{
		Code:    ErrCodeImportEmptyFile,
		Message: "file must contain at least a header row and one data row",
	}
	ErrFileTooLarge = &ImportError{
		Code:    ErrCodeImportFileTooLarge,
		Message: "file exceeds maximum allowed size",
	}
	ErrInvalidEncoding = &ImportError{
		Code:    ErrCodeImportInvalidEncoding,
		Message: "file is not valid UTF-8",
	}
	ErrMissingColumns = &ImportError{
		Code:    ErrCodeImportMissingColumns,
		Message: "file must have at least 4 columns",
	}
	ErrSheetNotFound = &ImportError{
		Code:    ErrCodeImportSheetNotFound,
		Message: "sheet not found",
	}
	ErrNoData = &ImportError{
		Code:    ErrCodeImportNoData,
		Message: "no valid employee data found",
	}
)

// IsImportError reports whether err carries an ImportError and returns it.
func IsImportError(err error) (*ImportError, bool) {
	var ie *ImportError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// SkippedRow is a data row that was dropped during extraction.
type SkippedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Skip reasons
const (
	SkipMissingEmployee = "missing employee name"
	SkipMissingProject  = "missing project name"
	SkipNoQuantity      = "rate and hours are both zero"
	SkipNegative        = "negative rate, hours or amount"
	SkipBlank           = "blank row"
)
