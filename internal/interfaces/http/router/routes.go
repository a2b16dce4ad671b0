package router

import (
	"github.com/kizora/invoicer/internal/interfaces/http/handler"
)

// Handlers are the HTTP handlers served under the API prefix
type Handlers struct {
	Projects  *handler.ProjectHandler
	Invoices  *handler.InvoiceHandler
	Templates *handler.TemplateHandler
	Imports   *handler.ImportHandler
}

// DomainGroups builds the project, template, settings and import groups
func DomainGroups(h Handlers) []*DomainGroup {
	projects := NewDomainGroup("projects", "/projects")
	projects.
		GET("", h.Projects.List).
		POST("", h.Projects.Create).
		GET("/:id", h.Projects.Get).
		PUT("/:id", h.Projects.Update).
		DELETE("/:id", h.Projects.Delete).
		POST("/:id/employees", h.Projects.AddEmployee).
		DELETE("/:id/employees/:employee_id", h.Projects.RemoveEmployee)

	projects.Group("invoice", "/:id/invoice").
		GET("/live", h.Invoices.LiveView).
		POST("/live", h.Invoices.Preview).
		POST("/save", h.Invoices.Save).
		GET("/export", h.Invoices.Export)

	templates := NewDomainGroup("templates", "/templates").
		GET("", h.Templates.List).
		GET("/:id", h.Templates.Get)

	settings := NewDomainGroup("settings", "/settings").
		GET("/template", h.Templates.Current).
		PUT("/template", h.Templates.Select)

	imports := NewDomainGroup("imports", "/imports").
		POST("", h.Imports.Upload).
		GET("/sample", h.Imports.Sample).
		DELETE("/:session_id", h.Imports.Discard).
		GET("/:session_id/sheets/:sheet", h.Imports.PreviewSheet).
		POST("/:session_id/sheets/:sheet/confirm", h.Imports.ConfirmSheet)

	return []*DomainGroup{projects, templates, settings, imports}
}

// RegisterAPI queues every domain group on r
func RegisterAPI(r *Router, h Handlers) *Router {
	for _, group := range DomainGroups(h) {
		r.Register(group)
	}
	return r
}
