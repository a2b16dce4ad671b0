package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	invoicingapp "github.com/kizora/invoicer/internal/application/invoicing"
	"github.com/kizora/invoicer/internal/infrastructure/cache"
	"github.com/kizora/invoicer/internal/infrastructure/persistence"
	"github.com/kizora/invoicer/internal/infrastructure/persistence/models"
	"github.com/kizora/invoicer/internal/infrastructure/printing"
	"github.com/kizora/invoicer/internal/interfaces/http/dto"
	"github.com/kizora/invoicer/internal/interfaces/http/middleware"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

// testServer wires the handlers to real services over an in-memory database
type testServer struct {
	engine *gin.Engine
	db     *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	store := cache.NewInMemoryStore()
	t.Cleanup(func() { _ = store.Close() })

	logger := zap.NewNop()
	clock := invoicingapp.FixedClock(testNow)
	projects := persistence.NewGormProjectRepository(db)
	settings := persistence.NewGormSettingsRepository(db)

	issuer := printing.DefaultIssuer()
	exporter, err := printing.NewExportRenderer(issuer)
	require.NoError(t, err)

	prefs := invoicingapp.NewTemplatePreferenceService(settings, store, time.Minute, logger)
	projectSvc := invoicingapp.NewProjectService(projects, clock, logger)
	invoiceSvc := invoicingapp.NewInvoiceService(projects, prefs, printing.NewLiveView(issuer), exporter, logger,
		invoicingapp.WithClock(clock))
	importSvc := invoicingapp.NewImportService(projects, store, invoicingapp.ImportServiceConfig{
		MaxUploadSize: 1 << 16,
		Clock:         clock,
	}, logger)

	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(middleware.RequestID())
	api := engine.Group("/api/v1")

	ph := NewProjectHandler(projectSvc)
	api.GET("/projects", ph.List)
	api.POST("/projects", ph.Create)
	api.GET("/projects/:id", ph.Get)
	api.PUT("/projects/:id", ph.Update)
	api.DELETE("/projects/:id", ph.Delete)
	api.POST("/projects/:id/employees", ph.AddEmployee)
	api.DELETE("/projects/:id/employees/:employee_id", ph.RemoveEmployee)

	ih := NewInvoiceHandler(invoiceSvc)
	api.GET("/projects/:id/invoice/live", ih.LiveView)
	api.POST("/projects/:id/invoice/live", ih.Preview)
	api.POST("/projects/:id/invoice/save", ih.Save)
	api.GET("/projects/:id/invoice/export", ih.Export)

	th := NewTemplateHandler(prefs)
	api.GET("/templates", th.List)
	api.GET("/templates/:id", th.Get)
	api.GET("/settings/template", th.Current)
	api.PUT("/settings/template", th.Select)

	imh := NewImportHandler(importSvc)
	api.POST("/imports", imh.Upload)
	api.GET("/imports/sample", imh.Sample)
	api.DELETE("/imports/:session_id", imh.Discard)
	api.GET("/imports/:session_id/sheets/:sheet", imh.PreviewSheet)
	api.POST("/imports/:session_id/sheets/:sheet/confirm", imh.ConfirmSheet)

	return &testServer{engine: engine, db: db}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// decodeData unmarshals the data field of a success response into out
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success, w.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func errorInfo(t *testing.T, w *httptest.ResponseRecorder) *dto.ErrorInfo {
	t.Helper()
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error, w.Body.String())
	return resp.Error
}

func createProjectBody(name string, employees ...map[string]any) map[string]any {
	body := map[string]any{
		"name":             name,
		"customer_name":    "Acme GmbH",
		"customer_address": "Hauptstr. 1, Berlin",
		"contact_person":   "Erika Mustermann",
		"email":            "billing@acme.example",
		"invoice_date":     "2025-03-05",
	}
	if len(employees) > 0 {
		body["employees"] = employees
	}
	return body
}

func employeeBody(name, rate, hours string) map[string]any {
	return map[string]any{"name": name, "rate_per_hour": rate, "hours": hours}
}

func (s *testServer) createProject(t *testing.T, name string, employees ...map[string]any) invoicingapp.ProjectResponse {
	t.Helper()

	w := s.do(t, http.MethodPost, "/api/v1/projects", createProjectBody(name, employees...))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var p invoicingapp.ProjectResponse
	decodeData(t, w, &p)
	return p
}
