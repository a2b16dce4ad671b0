package printing

import (
	"github.com/kizora/invoicer/internal/domain/invoicing"
)

// HTMLContentType is the content type of exported documents.
const HTMLContentType = "text/html; charset=utf-8"

// ExportDocument is a self-contained HTML invoice ready for download.
type ExportDocument struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportRenderer writes invoices out as standalone HTML documents. It lays
// the invoice out exactly as LiveView does in read mode.
type ExportRenderer struct {
	engine *TemplateEngine
	issuer Issuer
}

// NewExportRenderer creates an export renderer for the given issuer.
func NewExportRenderer(issuer Issuer) (*ExportRenderer, error) {
	engine, err := NewTemplateEngine()
	if err != nil {
		return nil, err
	}
	return &ExportRenderer{engine: engine, issuer: issuer.WithDefaults()}, nil
}

// Render produces the export document for the invoice.
func (r *ExportRenderer) Render(inv *invoicing.Invoice) (*ExportDocument, error) {
	return r.RenderDocument(compose(inv, r.issuer, false))
}

// RenderDocument writes a composed document as HTML. Editing state is ignored:
// the output carries no controls.
func (r *ExportRenderer) RenderDocument(doc *Document) (*ExportDocument, error) {
	if doc == nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "document is nil", nil)
	}
	content, err := r.engine.Execute(doc.Layout.OrDefault().String(), doc)
	if err != nil {
		return nil, err
	}
	return &ExportDocument{
		Filename:    doc.Filename,
		ContentType: HTMLContentType,
		Content:     content,
	}, nil
}
