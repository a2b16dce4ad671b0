package invoicing

import (
	"context"

	"github.com/google/uuid"
)

// ProjectRepository defines the interface for project persistence
type ProjectRepository interface {
	// FindAll returns every project with its employees, most recently updated first
	FindAll(ctx context.Context) ([]*Project, error)

	// FindByID finds a project by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)

	// Create inserts a project together with its initial employees
	Create(ctx context.Context, project *Project) error

	// Save updates a project and replaces its employee list in one transaction
	Save(ctx context.Context, project *Project) error

	// Delete deletes a project and its employees
	Delete(ctx context.Context, id uuid.UUID) error

	// AddEmployee inserts one employee and stores the project's new total
	AddEmployee(ctx context.Context, project *Project, employee *Employee) error

	// RemoveEmployee deletes one employee and stores the project's new total
	RemoveEmployee(ctx context.Context, project *Project, employeeID uuid.UUID) error
}

// SettingsRepository stores application preferences as string values.
type SettingsRepository interface {
	// Get returns the value for key, or shared.ErrNotFound
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key
	Set(ctx context.Context, key, value string) error
}
