package invoicing

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/kizora/invoicer/internal/domain/invoicing"
	"github.com/kizora/invoicer/internal/infrastructure/telemetry"
)

// ProjectService handles project and employee maintenance
type ProjectService struct {
	repo   invoicing.ProjectRepository
	clock  Clock
	logger *zap.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(repo invoicing.ProjectRepository, clock Clock, logger *zap.Logger) *ProjectService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &ProjectService{repo: repo, clock: clock, logger: logger}
}

// List returns every project, most recently updated first
func (s *ProjectService) List(ctx context.Context) ([]ProjectResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "project", "list")
	defer span.End()

	projects, err := s.repo.FindAll(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return ToProjectResponses(projects), nil
}

// Get returns a project by ID
func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*ProjectResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "project", "get",
		attribute.String(telemetry.SpanAttrProjectID, id.String()))
	defer span.End()

	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	resp := ToProjectResponse(project)
	return &resp, nil
}

// Create creates a new project with its initial employees
func (s *ProjectService) Create(ctx context.Context, req CreateProjectRequest) (*ProjectResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "project", "create",
		attribute.Int(telemetry.SpanAttrEmployees, len(req.Employees)))
	defer span.End()

	project, err := invoicing.NewProject(req.details(), employeeInputs(req.Employees), s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, project); err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Failed to create project", zap.String("name", project.Name), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Project created",
		zap.String("project_id", project.ID.String()),
		zap.String("name", project.Name),
		zap.Int("employees", len(project.Employees)))

	resp := ToProjectResponse(project)
	return &resp, nil
}

// Update applies a partial update. A present employee list replaces the
// stored one and the total is recomputed.
func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, req UpdateProjectRequest) (*ProjectResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "project", "update",
		attribute.String(telemetry.SpanAttrProjectID, id.String()))
	defer span.End()

	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := project.ApplyPatch(req.patch(), s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, project); err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Failed to update project", zap.String("project_id", id.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Project updated", zap.String("project_id", id.String()))
	resp := ToProjectResponse(project)
	return &resp, nil
}

// Delete removes a project and its employees
func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "project", "delete",
		attribute.String(telemetry.SpanAttrProjectID, id.String()))
	defer span.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	s.logger.Info("Project deleted", zap.String("project_id", id.String()))
	return nil
}

// AddEmployee appends one employee line and stores the new project total
func (s *ProjectService) AddEmployee(ctx context.Context, projectID uuid.UUID, req EmployeeRequest) (*ProjectResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "project", "add_employee",
		attribute.String(telemetry.SpanAttrProjectID, projectID.String()))
	defer span.End()

	project, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	employee, err := project.AddEmployee(req.input(), s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.AddEmployee(ctx, project, employee); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("Employee added",
		zap.String("project_id", projectID.String()),
		zap.String("employee_id", employee.ID.String()))
	resp := ToProjectResponse(project)
	return &resp, nil
}

// RemoveEmployee deletes one employee line and stores the new project total
func (s *ProjectService) RemoveEmployee(ctx context.Context, projectID, employeeID uuid.UUID) (*ProjectResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "project", "remove_employee",
		attribute.String(telemetry.SpanAttrProjectID, projectID.String()))
	defer span.End()

	project, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := project.RemoveEmployee(employeeID, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.repo.RemoveEmployee(ctx, project, employeeID); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("Employee removed",
		zap.String("project_id", projectID.String()),
		zap.String("employee_id", employeeID.String()))
	resp := ToProjectResponse(project)
	return &resp, nil
}
