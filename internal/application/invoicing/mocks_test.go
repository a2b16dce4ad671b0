package invoicing_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domain "github.com/kizora/invoicer/internal/domain/invoicing"
)

// =============================================================================
// Mock Implementations
// =============================================================================

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindAll(ctx context.Context) ([]*domain.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) Save(ctx context.Context, project *domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepository) AddEmployee(ctx context.Context, project *domain.Project, employee *domain.Employee) error {
	args := m.Called(ctx, project, employee)
	return args.Error(0)
}

func (m *MockProjectRepository) RemoveEmployee(ctx context.Context, project *domain.Project, employeeID uuid.UUID) error {
	args := m.Called(ctx, project, employeeID)
	return args.Error(0)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockSettingsRepository) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

var _ domain.ProjectRepository = (*MockProjectRepository)(nil)
var _ domain.SettingsRepository = (*MockSettingsRepository)(nil)

// =============================================================================
// Fixtures
// =============================================================================

var testNow = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func validDetails(name string) domain.ProjectDetails {
	return domain.ProjectDetails{
		Name:            name,
		CustomerName:    "Globex GmbH",
		CustomerAddress: "Hauptstrasse 1, Berlin",
		ContactPerson:   "Dana Lee",
		Email:           "billing@globex.example",
	}
}

func newTestProject(t *testing.T, name string, employees ...domain.EmployeeInput) *domain.Project {
	t.Helper()
	p, err := domain.NewProject(validDetails(name), employees, testNow.AddDate(0, -1, 0))
	require.NoError(t, err)
	return p
}

func employeeInput(name, rate, hours string) domain.EmployeeInput {
	return domain.EmployeeInput{Name: name, RatePerHour: dec(rate), Hours: dec(hours)}
}
