package invoicing

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/kizora/invoicer/internal/domain/invoicing"
	"github.com/kizora/invoicer/internal/domain/shared"
	"github.com/kizora/invoicer/internal/infrastructure/telemetry"
)

// preferenceCacheKey caches the selected template id
const preferenceCacheKey = "settings:" + invoicing.SelectedTemplateKey

// ErrTemplateNotFound is returned for an unknown template id
var ErrTemplateNotFound = shared.NewDomainError("NOT_FOUND", "Template not found")

// TemplatePreferenceService exposes the template catalog and the selected
// template preference
type TemplatePreferenceService struct {
	settings invoicing.SettingsRepository
	cache    shared.CacheStore
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewTemplatePreferenceService creates a new TemplatePreferenceService. cache
// may be nil.
func NewTemplatePreferenceService(
	settings invoicing.SettingsRepository,
	cache shared.CacheStore,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *TemplatePreferenceService {
	return &TemplatePreferenceService{
		settings: settings,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// List returns the catalog in display order
func (s *TemplatePreferenceService) List() []invoicing.InvoiceTemplate {
	return invoicing.Templates()
}

// Get returns one template by id
func (s *TemplatePreferenceService) Get(id string) (invoicing.InvoiceTemplate, error) {
	tmpl, ok := invoicing.LookupTemplate(id)
	if !ok {
		return invoicing.InvoiceTemplate{}, ErrTemplateNotFound
	}
	return tmpl, nil
}

// Current returns the selected template. A missing, unreadable or unknown
// stored value selects the default template.
func (s *TemplatePreferenceService) Current(ctx context.Context) TemplatePreferenceResponse {
	stored, err := s.load(ctx)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Warn("Failed to load template preference, using default", zap.Error(err))
	}
	tmpl := invoicing.ParseTemplatePreference(stored)
	return TemplatePreferenceResponse{TemplateID: tmpl.ID, Template: tmpl}
}

// Select stores a new template preference. Unknown ids are rejected and the
// stored preference is left unchanged.
func (s *TemplatePreferenceService) Select(ctx context.Context, req SelectTemplateRequest) (*TemplatePreferenceResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "template", "select",
		attribute.String(telemetry.SpanAttrTemplateID, req.TemplateID))
	defer span.End()

	tmpl, ok := invoicing.LookupTemplate(req.TemplateID)
	if !ok {
		verr := shared.NewValidationError()
		verr.Add("template_id", "unknown template")
		return nil, verr
	}

	if err := s.settings.Set(ctx, invoicing.SelectedTemplateKey, tmpl.ID); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, preferenceCacheKey, []byte(tmpl.ID), s.cacheTTL); err != nil {
			s.logger.Warn("Failed to cache template preference", zap.Error(err))
		}
	}

	s.logger.Info("Template preference changed", zap.String("template_id", tmpl.ID))
	return &TemplatePreferenceResponse{TemplateID: tmpl.ID, Template: tmpl}, nil
}

func (s *TemplatePreferenceService) load(ctx context.Context) (string, error) {
	if s.cache != nil {
		if b, err := s.cache.Get(ctx, preferenceCacheKey); err == nil {
			return string(b), nil
		}
	}
	stored, err := s.settings.Get(ctx, invoicing.SelectedTemplateKey)
	if err != nil {
		return "", err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, preferenceCacheKey, []byte(stored), s.cacheTTL); err != nil {
			s.logger.Debug("Failed to cache template preference", zap.Error(err))
		}
	}
	return stored, nil
}
