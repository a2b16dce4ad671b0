package invoicing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/kizora/invoicer/internal/domain/invoicing"
	"github.com/kizora/invoicer/internal/domain/shared"
	"github.com/kizora/invoicer/internal/infrastructure/spreadsheet"
	"github.com/kizora/invoicer/internal/infrastructure/telemetry"
)

// Import defaults
const (
	DefaultMaxUploadSize = 10 << 20
	DefaultSessionTTL    = 30 * time.Minute
)

const sessionKeyPrefix = "import:session:"

// ErrSessionNotFound is returned when an upload session is unknown or expired
var ErrSessionNotFound = shared.NewDomainError("NOT_FOUND", "Import session not found or expired")

// ErrSheetAlreadyImported is returned when a sheet of an upload session was
// already confirmed
var ErrSheetAlreadyImported = shared.NewDomainError("ALREADY_EXISTS", "Sheet has already been imported")

// uploadSession is the stored upload buffer. Switching sheets re-parses it
// without a new upload.
type uploadSession struct {
	ID        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	Sheets    []string  `json:"sheets"`
	Content   []byte    `json:"content"`
	Confirmed []string  `json:"confirmed,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ImportService reads employee time sheets and merges them into projects
type ImportService struct {
	projects      invoicing.ProjectRepository
	sessions      shared.CacheStore
	clock         Clock
	metrics       *telemetry.InvoiceMetrics
	logger        *zap.Logger
	maxUploadSize int64
	sessionTTL    time.Duration
}

// ImportServiceConfig configures an ImportService
type ImportServiceConfig struct {
	MaxUploadSize int64
	SessionTTL    time.Duration
	Clock         Clock
	Metrics       *telemetry.InvoiceMetrics
}

// NewImportService creates a new ImportService
func NewImportService(
	projects invoicing.ProjectRepository,
	sessions shared.CacheStore,
	cfg ImportServiceConfig,
	logger *zap.Logger,
) *ImportService {
	s := &ImportService{
		projects:      projects,
		sessions:      sessions,
		clock:         cfg.Clock,
		metrics:       cfg.Metrics,
		logger:        logger,
		maxUploadSize: cfg.MaxUploadSize,
		sessionTTL:    cfg.SessionTTL,
	}
	if s.clock == nil {
		s.clock = SystemClock{}
	}
	if s.maxUploadSize <= 0 {
		s.maxUploadSize = DefaultMaxUploadSize
	}
	if s.sessionTTL <= 0 {
		s.sessionTTL = DefaultSessionTTL
	}
	return s
}

// MaxUploadSize returns the largest accepted upload in bytes
func (s *ImportService) MaxUploadSize() int64 {
	return s.maxUploadSize
}

// Upload parses an uploaded workbook and keeps it in an upload session
func (s *ImportService) Upload(ctx context.Context, filename string, content []byte) (*UploadResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "import", "upload")
	defer span.End()

	if int64(len(content)) > s.maxUploadSize {
		return nil, spreadsheet.ErrFileTooLarge
	}
	wb, err := spreadsheet.Open(filename, content)
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Warn("Rejected spreadsheet upload", zap.String("filename", filename), zap.Error(err))
		return nil, err
	}

	now := s.clock.Now()
	session := uploadSession{
		ID:        uuid.New(),
		Filename:  filename,
		Sheets:    wb.SheetNames(),
		Content:   content,
		CreatedAt: now,
	}
	if err := s.storeSession(ctx, &session, s.sessionTTL); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.String(telemetry.SpanAttrSessionID, session.ID.String()))
	s.logger.Info("Spreadsheet uploaded",
		zap.String("session_id", session.ID.String()),
		zap.String("filename", filename),
		zap.Strings("sheets", session.Sheets))

	return &UploadResponse{
		SessionID: session.ID,
		Filename:  filename,
		Sheets:    session.Sheets,
		ExpiresAt: now.Add(s.sessionTTL),
	}, nil
}

// PreviewSheet parses one sheet of an upload and matches its project groups
// against the stored projects
func (s *ImportService) PreviewSheet(ctx context.Context, sessionID uuid.UUID, sheet string) (*SheetPreviewResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "import", "preview",
		attribute.String(telemetry.SpanAttrSessionID, sessionID.String()),
		attribute.String(telemetry.SpanAttrSheet, sheet))
	defer span.End()

	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	parsed, groups, err := s.matchSheet(ctx, session, sheet)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := &SheetPreviewResponse{
		SessionID: sessionID,
		Sheet:     sheet,
		Header:    parsed.Header,
		Groups:    make([]ImportGroupResponse, 0, len(groups)),
		Skipped:   parsed.Skipped,
	}
	for _, g := range groups {
		resp.Groups = append(resp.Groups, toImportGroupResponse(g))
		if g.Matched() {
			resp.Matched++
		} else {
			resp.Unmatched++
		}
	}
	return resp, nil
}

// ConfirmSheet appends the matched groups of a sheet to their projects and
// sets each updated project's work period to the current month. Unmatched
// groups are reported and never stored. A sheet is confirmed at most once
// per upload session.
func (s *ImportService) ConfirmSheet(ctx context.Context, sessionID uuid.UUID, sheet string) (*ConfirmImportResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "import", "confirm",
		attribute.String(telemetry.SpanAttrSessionID, sessionID.String()),
		attribute.String(telemetry.SpanAttrSheet, sheet))
	defer span.End()

	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if slices.Contains(session.Confirmed, sheet) {
		return nil, ErrSheetAlreadyImported
	}
	_, groups, err := s.matchSheet(ctx, session, sheet)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	now := s.clock.Now()
	resp := &ConfirmImportResponse{
		Projects:        []ProjectResponse{},
		SkippedProjects: []string{},
	}
	var updated []*invoicing.Project
	seen := make(map[uuid.UUID]bool)
	for _, g := range groups {
		s.metrics.RecordImportGroup(ctx, string(g.Match), len(g.Entries))
		if !g.Matched() {
			resp.SkippedProjects = append(resp.SkippedProjects, g.ProjectName)
			continue
		}
		if _, err := g.Project.MergeImported(g.EmployeeInputs(), now); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		resp.ImportedRows += len(g.Entries)
		if !seen[g.Project.ID] {
			seen[g.Project.ID] = true
			updated = append(updated, g.Project)
		}
	}

	for _, p := range updated {
		if err := s.projects.Save(ctx, p); err != nil {
			telemetry.RecordError(span, err)
			s.logger.Error("Failed to store imported employees",
				zap.String("project_id", p.ID.String()),
				zap.Error(err))
			return nil, err
		}
		resp.Projects = append(resp.Projects, ToProjectResponse(p))
	}

	session.Confirmed = append(session.Confirmed, sheet)
	if ttl := s.sessionTTL - now.Sub(session.CreatedAt); ttl > 0 {
		if err := s.storeSession(ctx, session, ttl); err != nil {
			s.logger.Error("Failed to mark sheet as imported",
				zap.String("session_id", sessionID.String()),
				zap.String("sheet", sheet),
				zap.Error(err))
		}
	}

	s.logger.Info("Spreadsheet import confirmed",
		zap.String("session_id", sessionID.String()),
		zap.String("sheet", sheet),
		zap.Int("projects", len(updated)),
		zap.Int("rows", resp.ImportedRows),
		zap.Strings("skipped", resp.SkippedProjects))
	return resp, nil
}

// Discard deletes an upload session
func (s *ImportService) Discard(ctx context.Context, sessionID uuid.UUID) error {
	return s.sessions.Delete(ctx, sessionKey(sessionID))
}

// SampleSheet writes the downloadable sample workbook, filled with the names
// of stored projects where there are any
func (s *ImportService) SampleSheet(ctx context.Context, w io.Writer) error {
	projects, err := s.projects.FindAll(ctx)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(projects))
	for _, p := range projects {
		names = append(names, p.Name)
	}
	return spreadsheet.WriteSample(w, names)
}

func (s *ImportService) matchSheet(ctx context.Context, session *uploadSession, sheet string) (*spreadsheet.Sheet, []invoicing.EntryGroup, error) {
	wb, err := spreadsheet.Open(session.Filename, session.Content)
	if err != nil {
		return nil, nil, err
	}
	rows, err := wb.Rows(sheet)
	if err != nil {
		return nil, nil, err
	}
	parsed, err := spreadsheet.ExtractEntries(rows)
	if err != nil {
		return nil, nil, err
	}

	projects, err := s.projects.FindAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	groups := invoicing.MatchGroups(invoicing.GroupEntries(parsed.Entries), projects)
	return parsed, groups, nil
}

func (s *ImportService) loadSession(ctx context.Context, id uuid.UUID) (*uploadSession, error) {
	payload, err := s.sessions.Get(ctx, sessionKey(id))
	if err != nil {
		if errors.Is(err, shared.ErrCacheMiss) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load import session: %w", err)
	}
	var session uploadSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("failed to decode import session: %w", err)
	}
	return &session, nil
}

func (s *ImportService) storeSession(ctx context.Context, session *uploadSession, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode import session: %w", err)
	}
	if err := s.sessions.Set(ctx, sessionKey(session.ID), payload, ttl); err != nil {
		return fmt.Errorf("failed to store import session: %w", err)
	}
	return nil
}

func sessionKey(id uuid.UUID) string {
	return sessionKeyPrefix + id.String()
}
