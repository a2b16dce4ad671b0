package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	invoicingapp "github.com/kizora/invoicer/internal/application/invoicing"
	"github.com/kizora/invoicer/internal/interfaces/http/dto"
)

// InvoiceHandler serves the live view, edit session and export of a
// project's invoice
type InvoiceHandler struct {
	BaseHandler
	invoiceService *invoicingapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *invoicingapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
	}
}

// LiveView returns the rendered live view tree. Without ?template= the
// selected template is used.
//
//	GET /projects/:id/invoice/live
func (h *InvoiceHandler) LiveView(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id", "project")
	if !ok {
		return
	}

	var q dto.TemplateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	editing, _ := strconv.ParseBool(c.Query("editing"))

	view, err := h.invoiceService.LiveView(c.Request.Context(), id, q.TemplateID, editing)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Preview applies the posted changes to a working copy and returns the
// recomputed live view. Nothing is stored.
//
//	POST /projects/:id/invoice/live
func (h *InvoiceHandler) Preview(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id", "project")
	if !ok {
		return
	}

	var req invoicingapp.EditInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	view, err := h.invoiceService.Preview(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Save applies the posted changes, recomputes totals and dates, and stores
// the project
//
//	POST /projects/:id/invoice/save
func (h *InvoiceHandler) Save(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id", "project")
	if !ok {
		return
	}

	var req invoicingapp.EditInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	project, err := h.invoiceService.Save(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, project)
}

// Export downloads the invoice as a standalone HTML document
//
//	GET /projects/:id/invoice/export
func (h *InvoiceHandler) Export(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id", "project")
	if !ok {
		return
	}

	var q dto.TemplateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.invoiceService.Export(c.Request.Context(), id, q.TemplateID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", attachmentDisposition(result.Filename))
	if result.Archived != nil {
		c.Header("X-Archive-Key", result.Archived.Key)
	}
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
