package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kizora/invoicer/internal/interfaces/http/dto"
)

type testEmployee struct {
	Name string `json:"name" binding:"required"`
}

type testProjectRequest struct {
	Name      string         `json:"name" binding:"required,min=2"`
	Email     string         `json:"email" binding:"required,email"`
	Currency  string         `json:"currency" binding:"omitempty,len=3"`
	Status    string         `json:"status" binding:"omitempty,oneof=active completed draft"`
	Employees []testEmployee `json:"employees" binding:"dive"`
}

func newValidationRouter() *gin.Engine {
	SetupValidator()
	router := gin.New()
	router.Use(RequestID())
	router.POST("/projects", func(c *gin.Context) {
		var req testProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusCreated)
	})
	return router
}

func postJSON(router *gin.Engine, body string) (*httptest.ResponseRecorder, dto.Response) {
	req := httptest.NewRequest(http.MethodPost, "/projects", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp dto.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestHandleValidationError(t *testing.T) {
	router := newValidationRouter()

	t.Run("valid request passes", func(t *testing.T) {
		w, _ := postJSON(router, `{"name":"Acme","email":"billing@acme.test"}`)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("reports json field names", func(t *testing.T) {
		w, resp := postJSON(router, `{"name":"A","email":"nope","currency":"EURO","status":"paid"}`)

		require.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.NotEmpty(t, resp.Error.RequestID)

		got := map[string]string{}
		for _, d := range resp.Error.Details {
			got[d.Field] = d.Message
		}
		assert.Equal(t, "Must be at least 2 characters", got["name"])
		assert.Equal(t, "Invalid email format", got["email"])
		assert.Equal(t, "Must be exactly 3 characters", got["currency"])
		assert.Equal(t, "Must be one of: active completed draft", got["status"])
	})

	t.Run("nested fields keep their path", func(t *testing.T) {
		w, resp := postJSON(router, `{"name":"Acme","email":"billing@acme.test","employees":[{"name":""}]}`)

		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "employees[0].name", resp.Error.Details[0].Field)
		assert.Equal(t, "This field is required", resp.Error.Details[0].Message)
	})

	t.Run("malformed json", func(t *testing.T) {
		w, resp := postJSON(router, `{"name":`)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidJSON, resp.Error.Code)
		assert.Empty(t, resp.Error.Details)
	})
}

func TestValidationDetails_NonValidationError(t *testing.T) {
	assert.Nil(t, ValidationDetails(assert.AnError))
}
