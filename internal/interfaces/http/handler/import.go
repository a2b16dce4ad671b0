package handler

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	invoicingapp "github.com/kizora/invoicer/internal/application/invoicing"
	"github.com/kizora/invoicer/internal/infrastructure/spreadsheet"
	"github.com/kizora/invoicer/internal/interfaces/http/dto"
)

// ImportHandler handles spreadsheet import endpoints
type ImportHandler struct {
	BaseHandler
	importService *invoicingapp.ImportService
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(importService *invoicingapp.ImportService) *ImportHandler {
	return &ImportHandler{
		importService: importService,
	}
}

// Upload parses a multipart "file" field and opens an upload session
//
//	POST /imports
func (h *ImportHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.BadRequest(c, "file is required")
		return
	}
	defer file.Close()

	maxSize := h.importService.MaxUploadSize()
	if header.Size > maxSize {
		h.HandleError(c, spreadsheet.ErrFileTooLarge)
		return
	}

	content, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		h.BadRequest(c, "failed to read uploaded file")
		return
	}

	session, err := h.importService.Upload(c.Request.Context(), header.Filename, content)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, session)
}

// PreviewSheet returns parsed rows grouped by project with their match status
//
//	GET /imports/:session_id/sheets/:sheet
func (h *ImportHandler) PreviewSheet(c *gin.Context) {
	var req dto.SheetRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	preview, err := h.importService.PreviewSheet(c.Request.Context(), parseUUID(req.SessionID), req.Sheet)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, preview)
}

// ConfirmSheet merges the matched groups of a sheet into their projects
//
//	POST /imports/:session_id/sheets/:sheet/confirm
func (h *ImportHandler) ConfirmSheet(c *gin.Context) {
	var req dto.SheetRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	result, err := h.importService.ConfirmSheet(c.Request.Context(), parseUUID(req.SessionID), req.Sheet)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Discard drops an upload session
//
//	DELETE /imports/:session_id
func (h *ImportHandler) Discard(c *gin.Context) {
	id, ok := h.ParamUUID(c, "session_id", "session")
	if !ok {
		return
	}

	if err := h.importService.Discard(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Sample downloads the sample time sheet
//
//	GET /imports/sample
func (h *ImportHandler) Sample(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.importService.SampleSheet(c.Request.Context(), &buf); err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", attachmentDisposition(spreadsheet.SampleFilename))
	c.Data(http.StatusOK, spreadsheet.SampleContentType, buf.Bytes())
}
