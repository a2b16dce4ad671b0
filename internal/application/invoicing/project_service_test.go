package invoicing_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kizora/invoicer/internal/application/invoicing"
	domain "github.com/kizora/invoicer/internal/domain/invoicing"
	"github.com/kizora/invoicer/internal/domain/shared"
)

func newProjectService(repo *MockProjectRepository) *invoicing.ProjectService {
	return invoicing.NewProjectService(repo, invoicing.FixedClock(testNow), zap.NewNop())
}

func TestProjectService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates project with employees and computed total", func(t *testing.T) {
		repo := new(MockProjectRepository)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*invoicing.Project")).Return(nil)
		svc := newProjectService(repo)

		resp, err := svc.Create(ctx, invoicing.CreateProjectRequest{
			Name:            "Acme Portal",
			CustomerName:    "Acme Corp",
			CustomerAddress: "1 Road Runner Way",
			ContactPerson:   "Wile E.",
			Email:           "wile@acme.example",
			Employees: []invoicing.EmployeeRequest{
				{Name: "Asha", RatePerHour: dec("40"), Hours: dec("10")},
				{Name: "Ben", RatePerHour: dec("12.5"), Hours: dec("8")},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "Acme Portal", resp.Name)
		assert.Equal(t, "EUR", resp.Currency)
		assert.Equal(t, "active", resp.Status)
		require.Len(t, resp.Employees, 2)
		assert.True(t, dec("100").Equal(resp.Employees[1].Total))
		assert.True(t, dec("500").Equal(resp.TotalAmount))
		assert.Equal(t, testNow, resp.CreatedAt)
		repo.AssertExpectations(t)
	})

	t.Run("rejects invalid input before writing", func(t *testing.T) {
		repo := new(MockProjectRepository)
		svc := newProjectService(repo)

		_, err := svc.Create(ctx, invoicing.CreateProjectRequest{Name: "Acme", Email: "nope"})

		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestProjectService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the project", func(t *testing.T) {
		repo := new(MockProjectRepository)
		p := newTestProject(t, "Acme Portal", employeeInput("Asha", "40", "10"))
		repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)

		resp, err := newProjectService(repo).Get(ctx, p.ID)

		require.NoError(t, err)
		assert.Equal(t, p.ID, resp.ID)
		assert.Len(t, resp.Employees, 1)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(MockProjectRepository)
		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := newProjectService(repo).Get(ctx, id)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProjectService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProjectRepository)
	projects := []*domain.Project{newTestProject(t, "One"), newTestProject(t, "Two")}
	repo.On("FindAll", mock.Anything).Return(projects, nil)

	resp, err := newProjectService(repo).List(ctx)

	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, "One", resp[0].Name)
	assert.NotNil(t, resp[0].Employees)
}

func TestProjectService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces employees and recomputes total", func(t *testing.T) {
		repo := new(MockProjectRepository)
		p := newTestProject(t, "Acme Portal", employeeInput("Asha", "40", "10"))
		repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		repo.On("Save", mock.Anything, p).Return(nil)

		employees := []invoicing.EmployeeRequest{{Name: "Chen", RatePerHour: dec("20"), Hours: dec("3")}}
		customer := "Initech"
		resp, err := newProjectService(repo).Update(ctx, p.ID, invoicing.UpdateProjectRequest{
			CustomerName: &customer,
			Employees:    &employees,
		})

		require.NoError(t, err)
		assert.Equal(t, "Initech", resp.CustomerName)
		require.Len(t, resp.Employees, 1)
		assert.Equal(t, "Chen", resp.Employees[0].Name)
		assert.True(t, dec("60").Equal(resp.TotalAmount))
		repo.AssertExpectations(t)
	})

	t.Run("validation failure leaves repository untouched", func(t *testing.T) {
		repo := new(MockProjectRepository)
		p := newTestProject(t, "Acme Portal")
		repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)

		bad := "not-an-email"
		_, err := newProjectService(repo).Update(ctx, p.ID, invoicing.UpdateProjectRequest{Email: &bad})

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProjectService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProjectRepository)
	id := uuid.New()
	repo.On("Delete", mock.Anything, id).Return(nil)

	require.NoError(t, newProjectService(repo).Delete(ctx, id))
	repo.AssertExpectations(t)
}

func TestProjectService_Employees(t *testing.T) {
	ctx := context.Background()

	t.Run("add employee stores line and total", func(t *testing.T) {
		repo := new(MockProjectRepository)
		p := newTestProject(t, "Acme Portal", employeeInput("Asha", "40", "10"))
		repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		repo.On("AddEmployee", mock.Anything, p, mock.AnythingOfType("*invoicing.Employee")).Return(nil)

		resp, err := newProjectService(repo).AddEmployee(ctx, p.ID, invoicing.EmployeeRequest{
			Name: "Ben", RatePerHour: dec("10"), Hours: dec("5"),
		})

		require.NoError(t, err)
		assert.Len(t, resp.Employees, 2)
		assert.True(t, dec("450").Equal(resp.TotalAmount))
		repo.AssertExpectations(t)
	})

	t.Run("remove employee stores total", func(t *testing.T) {
		repo := new(MockProjectRepository)
		p := newTestProject(t, "Acme Portal", employeeInput("Asha", "40", "10"), employeeInput("Ben", "10", "5"))
		target := p.Employees[0].ID
		repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		repo.On("RemoveEmployee", mock.Anything, p, target).Return(nil)

		resp, err := newProjectService(repo).RemoveEmployee(ctx, p.ID, target)

		require.NoError(t, err)
		require.Len(t, resp.Employees, 1)
		assert.Equal(t, "Ben", resp.Employees[0].Name)
		assert.True(t, dec("50").Equal(resp.TotalAmount))
	})

	t.Run("remove unknown employee", func(t *testing.T) {
		repo := new(MockProjectRepository)
		p := newTestProject(t, "Acme Portal")
		repo.On("FindByID", mock.Anything, p.ID).Return(p, nil)

		_, err := newProjectService(repo).RemoveEmployee(ctx, p.ID, uuid.New())

		assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
		repo.AssertNotCalled(t, "RemoveEmployee", mock.Anything, mock.Anything, mock.Anything)
	})
}
