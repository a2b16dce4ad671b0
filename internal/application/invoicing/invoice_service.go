package invoicing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/kizora/invoicer/internal/domain/invoicing"
	"github.com/kizora/invoicer/internal/infrastructure/printing"
	"github.com/kizora/invoicer/internal/infrastructure/telemetry"
)

// InvoiceService computes invoices and renders them as the live view and the
// export document
type InvoiceService struct {
	repo    invoicing.ProjectRepository
	prefs   *TemplatePreferenceService
	live    *printing.LiveView
	export  *printing.ExportRenderer
	archive printing.DocumentArchive
	metrics *telemetry.InvoiceMetrics
	clock   Clock
	logger  *zap.Logger
}

// InvoiceServiceOption configures an InvoiceService
type InvoiceServiceOption func(*InvoiceService)

// WithArchive stores every exported document in archive
func WithArchive(archive printing.DocumentArchive) InvoiceServiceOption {
	return func(s *InvoiceService) {
		s.archive = archive
	}
}

// WithMetrics records render and export counts
func WithMetrics(metrics *telemetry.InvoiceMetrics) InvoiceServiceOption {
	return func(s *InvoiceService) {
		s.metrics = metrics
	}
}

// WithClock overrides the wall clock
func WithClock(clock Clock) InvoiceServiceOption {
	return func(s *InvoiceService) {
		s.clock = clock
	}
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	repo invoicing.ProjectRepository,
	prefs *TemplatePreferenceService,
	live *printing.LiveView,
	export *printing.ExportRenderer,
	logger *zap.Logger,
	opts ...InvoiceServiceOption,
) *InvoiceService {
	s := &InvoiceService{
		repo:   repo,
		prefs:  prefs,
		live:   live,
		export: export,
		clock:  SystemClock{},
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LiveView renders the stored project in the live view. An empty templateID
// uses the selected template preference.
func (s *InvoiceService) LiveView(ctx context.Context, projectID uuid.UUID, templateID string, editing bool) (*LiveViewResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "live_view",
		attribute.String(telemetry.SpanAttrProjectID, projectID.String()),
		attribute.String(telemetry.SpanAttrTemplateID, templateID))
	defer span.End()

	project, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return s.renderLive(ctx, project, s.template(ctx, templateID), editing), nil
}

// Preview applies unsaved edits to a working copy of the project and renders
// the result in edit mode. Nothing is stored.
func (s *InvoiceService) Preview(ctx context.Context, projectID uuid.UUID, req EditInvoiceRequest) (*LiveViewResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "preview",
		attribute.String(telemetry.SpanAttrProjectID, projectID.String()),
		attribute.String(telemetry.SpanAttrTemplateID, req.TemplateID))
	defer span.End()

	project, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	working, err := invoicing.ApplyChanges(project, req.changes())
	if err != nil {
		return nil, err
	}
	return s.renderLive(ctx, working, s.template(ctx, req.TemplateID), true), nil
}

// Save applies edits, stores the invoice date in storage form, sets the due
// date from it and persists the project with recomputed totals. Edits that
// leave the project invalid are rejected before anything is written.
func (s *InvoiceService) Save(ctx context.Context, projectID uuid.UUID, req EditInvoiceRequest) (*ProjectResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "save",
		attribute.String(telemetry.SpanAttrProjectID, projectID.String()))
	defer span.End()

	project, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	working, err := invoicing.ApplyChanges(project, req.changes())
	if err != nil {
		return nil, err
	}
	if err := working.FinalizeEdit(s.clock.Now()); err != nil {
		s.logger.Warn("Rejected invoice edits",
			zap.String("project_id", projectID.String()),
			zap.Error(err))
		return nil, err
	}

	if err := s.repo.Save(ctx, working); err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Failed to save invoice edits",
			zap.String("project_id", projectID.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Invoice edits saved",
		zap.String("project_id", projectID.String()),
		zap.Int("changes", len(req.Changes)),
		zap.String("total", working.TotalAmount.StringFixed(2)))
	resp := ToProjectResponse(working)
	return &resp, nil
}

// Export renders the export document. When an archive is configured the
// document is stored under exports/<project id>/<filename>; a storage failure
// fails the export.
func (s *InvoiceService) Export(ctx context.Context, projectID uuid.UUID, templateID string) (*ExportResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "export",
		attribute.String(telemetry.SpanAttrProjectID, projectID.String()),
		attribute.String(telemetry.SpanAttrTemplateID, templateID))
	defer span.End()

	project, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	start := time.Now()
	tmpl := s.template(ctx, templateID)
	inv := invoicing.BuildInvoice(project, tmpl, s.clock.Now())
	doc, err := s.export.Render(inv)
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Failed to render invoice",
			zap.String("project_id", projectID.String()),
			zap.String("layout", string(inv.Template.Layout)),
			zap.Error(err))
		return nil, err
	}
	layout := string(inv.Template.Layout)
	span.SetAttributes(attribute.String(telemetry.SpanAttrLayout, layout))
	s.metrics.RecordRender(ctx, layout, telemetry.RenderModeExport, time.Since(start))

	result := &ExportResult{
		Filename:    doc.Filename,
		ContentType: doc.ContentType,
		Content:     doc.Content,
	}
	if s.archive != nil {
		key := printing.ArchiveKey(projectID.String(), doc.Filename)
		archived, err := s.archive.Store(ctx, key, doc.ContentType, doc.Content)
		if err != nil {
			telemetry.RecordError(span, err)
			s.logger.Error("Failed to archive invoice",
				zap.String("project_id", projectID.String()),
				zap.String("key", key),
				zap.Error(err))
			return nil, err
		}
		result.Archived = archived
	}
	s.metrics.RecordExport(ctx, layout, result.Archived != nil)

	s.logger.Info("Invoice exported",
		zap.String("project_id", projectID.String()),
		zap.String("layout", layout),
		zap.String("filename", doc.Filename),
		zap.Int("size", len(doc.Content)))
	return result, nil
}

func (s *InvoiceService) renderLive(ctx context.Context, project *invoicing.Project, tmpl invoicing.InvoiceTemplate, editing bool) *LiveViewResponse {
	start := time.Now()
	inv := invoicing.BuildInvoice(project, tmpl, s.clock.Now())
	doc := s.live.Build(inv, editing)
	s.metrics.RecordRender(ctx, string(inv.Template.Layout), telemetry.RenderModeLive, time.Since(start))

	return &LiveViewResponse{
		ProjectID: project.ID,
		Template:  inv.Template,
		Fields:    inv.Fields,
		Total:     inv.Lines.GrandTotal,
		Document:  doc,
	}
}

// template resolves an explicit id, falling back to the stored preference
// when none is given. Unknown ids resolve to the default template.
func (s *InvoiceService) template(ctx context.Context, templateID string) invoicing.InvoiceTemplate {
	if templateID != "" {
		return invoicing.ResolveTemplate(templateID)
	}
	if s.prefs == nil {
		return invoicing.DefaultTemplate()
	}
	return s.prefs.Current(ctx).Template
}
