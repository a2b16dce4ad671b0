package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// Render modes.
const (
	RenderModeLive   = "live"
	RenderModeExport = "export"
)

// InvoiceMetrics counts invoice renders, exports and spreadsheet imports.
// A nil *InvoiceMetrics records nothing.
type InvoiceMetrics struct {
	rendersTotal    *Counter
	renderDuration  *Histogram
	exportsTotal    *Counter
	importRowsTotal *Counter
	importGroups    *Counter
}

// NewInvoiceMetrics registers the instruments on meter.
func NewInvoiceMetrics(meter metric.Meter) (*InvoiceMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	var (
		m   InvoiceMetrics
		err error
	)
	if m.rendersTotal, err = NewCounter(meter, "invoice_renders_total",
		"Invoices rendered, by layout and mode", "{renders}"); err != nil {
		return nil, err
	}
	if m.renderDuration, err = NewHistogram(meter, "invoice_render_duration_seconds",
		"Time spent computing and rendering an invoice", "s", RenderDurationBuckets...); err != nil {
		return nil, err
	}
	if m.exportsTotal, err = NewCounter(meter, "invoice_exports_total",
		"Invoice documents exported", "{documents}"); err != nil {
		return nil, err
	}
	if m.importRowsTotal, err = NewCounter(meter, "invoice_import_rows_total",
		"Spreadsheet rows merged into projects", "{rows}"); err != nil {
		return nil, err
	}
	if m.importGroups, err = NewCounter(meter, "invoice_import_groups_total",
		"Spreadsheet project groups, by match kind", "{groups}"); err != nil {
		return nil, err
	}
	return &m, nil
}

// RecordRender records one rendered invoice.
func (m *InvoiceMetrics) RecordRender(ctx context.Context, layout, mode string, d time.Duration) {
	if m == nil {
		return
	}
	m.rendersTotal.Inc(ctx, AttrLayout.String(layout), AttrRenderMode.String(mode))
	m.renderDuration.RecordDuration(ctx, d, AttrLayout.String(layout), AttrRenderMode.String(mode))
}

// RecordExport records one exported document.
func (m *InvoiceMetrics) RecordExport(ctx context.Context, layout string, archived bool) {
	if m == nil {
		return
	}
	m.exportsTotal.Inc(ctx, AttrLayout.String(layout), AttrArchived.Bool(archived))
}

// RecordImportGroup records one spreadsheet group and, when it was merged,
// its rows.
func (m *InvoiceMetrics) RecordImportGroup(ctx context.Context, match string, rows int) {
	if m == nil {
		return
	}
	m.importGroups.Inc(ctx, AttrMatch.String(match))
	if match != "none" {
		m.importRowsTotal.Add(ctx, int64(rows))
	}
}
