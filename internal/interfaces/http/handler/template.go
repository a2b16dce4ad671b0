package handler

import (
	"github.com/gin-gonic/gin"

	invoicingapp "github.com/kizora/invoicer/internal/application/invoicing"
)

// TemplateHandler serves the template catalog and the selected template
// preference
type TemplateHandler struct {
	BaseHandler
	preferences *invoicingapp.TemplatePreferenceService
}

// NewTemplateHandler creates a new TemplateHandler
func NewTemplateHandler(preferences *invoicingapp.TemplatePreferenceService) *TemplateHandler {
	return &TemplateHandler{
		preferences: preferences,
	}
}

// List returns the catalog in display order
//
//	GET /templates
func (h *TemplateHandler) List(c *gin.Context) {
	templates := h.preferences.List()
	h.SuccessList(c, templates, len(templates))
}

// Get returns one template
//
//	GET /templates/:id
func (h *TemplateHandler) Get(c *gin.Context) {
	tmpl, err := h.preferences.Get(c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tmpl)
}

// Current returns the selected template
//
//	GET /settings/template
func (h *TemplateHandler) Current(c *gin.Context) {
	h.Success(c, h.preferences.Current(c.Request.Context()))
}

// Select stores the selected template. Unknown ids are rejected.
//
//	PUT /settings/template
func (h *TemplateHandler) Select(c *gin.Context) {
	var req invoicingapp.SelectTemplateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	pref, err := h.preferences.Select(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pref)
}
