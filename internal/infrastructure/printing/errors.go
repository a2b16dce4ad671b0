package printing

// RenderError represents a failure to produce a document.
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for rendering and archiving failures
const (
	ErrCodeTemplateInvalid = "TEMPLATE_INVALID"
	ErrCodeRenderFailed    = "RENDER_FAILED"
	ErrCodeStorageFailed   = "STORAGE_FAILED"
	ErrCodeInvalidPath     = "INVALID_PATH"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
