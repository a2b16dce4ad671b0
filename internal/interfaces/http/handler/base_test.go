package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kizora/invoicer/internal/domain/shared"
	"github.com/kizora/invoicer/internal/infrastructure/spreadsheet"
	"github.com/kizora/invoicer/internal/interfaces/http/dto"
	"github.com/kizora/invoicer/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandlerSuccess(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext()

	h.Success(c, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestBaseHandlerSuccessList(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext()

	h.SuccessList(c, []string{"a", "b", "c"}, 3)

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(3), resp.Meta.Total)
}

func TestBaseHandlerCreatedAndNoContent(t *testing.T) {
	h := &BaseHandler{}

	c, w := newTestContext()
	h.Created(c, gin.H{"id": 1})
	assert.Equal(t, http.StatusCreated, w.Code)

	c, w = newTestContext()
	h.NoContent(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestBaseHandlerErrorMethods(t *testing.T) {
	h := &BaseHandler{}
	tests := []struct {
		name   string
		call   func(*gin.Context)
		status int
		code   string
	}{
		{"bad request", func(c *gin.Context) { h.BadRequest(c, "bad") }, http.StatusBadRequest, dto.ErrCodeBadRequest},
		{"not found", func(c *gin.Context) { h.NotFound(c, "missing") }, http.StatusNotFound, dto.ErrCodeNotFound},
		{"internal", func(c *gin.Context) { h.InternalError(c, "boom") }, http.StatusInternalServerError, dto.ErrCodeInternal},
		{"with code", func(c *gin.Context) { h.ErrorWithCode(c, dto.ErrCodeImportNoData, "empty") }, http.StatusBadRequest, dto.ErrCodeImportNoData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()
			c.Set(middleware.RequestIDKey, "req-42")

			tt.call(c)

			assert.Equal(t, tt.status, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, "req-42", resp.Error.RequestID)
		})
	}
}

func TestBaseHandlerHandleError(t *testing.T) {
	h := &BaseHandler{}

	validation := shared.NewValidationError()
	validation.Add("email", "must be a valid email address")
	validation.Add("employees[0].name", "is required")

	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
		details int
	}{
		{
			name:    "domain not found",
			err:     shared.NewDomainError("NOT_FOUND", "Project not found"),
			status:  http.StatusNotFound,
			code:    dto.ErrCodeNotFound,
			message: "Project not found",
		},
		{
			name:    "wrapped domain error",
			err:     fmt.Errorf("failed to save: %w", shared.ErrInvalidInput),
			status:  http.StatusBadRequest,
			code:    dto.ErrCodeInvalidInput,
			message: "Invalid input provided",
		},
		{
			name:    "field validation keeps details",
			err:     fmt.Errorf("failed to create project: %w", validation),
			status:  http.StatusBadRequest,
			code:    dto.ErrCodeValidation,
			message: "Request validation failed",
			details: 2,
		},
		{
			name:    "import error keeps its code",
			err:     spreadsheet.ErrMissingColumns,
			status:  http.StatusBadRequest,
			code:    dto.ErrCodeImportMissingColumns,
			message: "file must have at least 4 columns",
		},
		{
			name:    "oversized upload",
			err:     spreadsheet.ErrFileTooLarge,
			status:  http.StatusRequestEntityTooLarge,
			code:    dto.ErrCodeImportFileTooLarge,
			message: "file exceeds maximum allowed size",
		},
		{
			name:    "unknown error hides details",
			err:     fmt.Errorf("database connection lost"),
			status:  http.StatusInternalServerError,
			code:    dto.ErrCodeInternal,
			message: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			resp := decodeResponse(t, w)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.message, resp.Error.Message)
			assert.Len(t, resp.Error.Details, tt.details)
			assert.Len(t, c.Errors, 1)
		})
	}

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, w := newTestContext()
		h.HandleError(c, nil)
		assert.Empty(t, w.Body.String())
	})
}

func TestBaseHandlerParamUUID(t *testing.T) {
	h := &BaseHandler{}

	c, w := newTestContext()
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
	_, ok := h.ParamUUID(c, "id", "project")

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid project ID", decodeResponse(t, w).Error.Message)
}
