package handler

import (
	"github.com/gin-gonic/gin"

	invoicingapp "github.com/kizora/invoicer/internal/application/invoicing"
)

// ProjectHandler handles project and employee endpoints
type ProjectHandler struct {
	BaseHandler
	projectService *invoicingapp.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService *invoicingapp.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// List returns every project, most recently updated first
//
//	GET /projects
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projectService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, projects, len(projects))
}

// Get returns one project with its employees
//
//	GET /projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id", "project")
	if !ok {
		return
	}

	project, err := h.projectService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, project)
}

// Create creates a project
//
//	POST /projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req invoicingapp.CreateProjectRequest
	if !h.BindJSON(c, &req) {
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, project)
}

// Update applies a partial update. A present employees list replaces the
// existing one.
//
//	PUT /projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id", "project")
	if !ok {
		return
	}

	var req invoicingapp.UpdateProjectRequest
	if !h.BindJSON(c, &req) {
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, project)
}

// Delete removes a project and its employees
//
//	DELETE /projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id", "project")
	if !ok {
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddEmployee appends an employee and returns the updated project
//
//	POST /projects/:id/employees
func (h *ProjectHandler) AddEmployee(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id", "project")
	if !ok {
		return
	}

	var req invoicingapp.EmployeeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	project, err := h.projectService.AddEmployee(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, project)
}

// RemoveEmployee removes an employee and returns the updated project
//
//	DELETE /projects/:id/employees/:employee_id
func (h *ProjectHandler) RemoveEmployee(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id", "project")
	if !ok {
		return
	}
	employeeID, ok := h.ParamUUID(c, "employee_id", "employee")
	if !ok {
		return
	}

	project, err := h.projectService.RemoveEmployee(c.Request.Context(), id, employeeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, project)
}
