package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kizora/invoicer/internal/domain/invoicing"
	"github.com/kizora/invoicer/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProjectRepository implements ProjectRepository using GORM
type GormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

func preloadEmployees(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC").Order("created_at ASC")
}

// FindAll returns every project, most recently updated first
func (r *GormProjectRepository) FindAll(ctx context.Context) ([]*invoicing.Project, error) {
	var rows []models.ProjectModel
	if err := r.db.WithContext(ctx).
		Preload("Employees", preloadEmployees).
		Order("updated_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]*invoicing.Project, 0, len(rows))
	for i := range rows {
		projects = append(projects, rows[i].ToDomain())
	}
	return projects, nil
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoicing.Project, error) {
	var row models.ProjectModel
	if err := r.db.WithContext(ctx).
		Preload("Employees", preloadEmployees).
		First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invoicing.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return row.ToDomain(), nil
}

// Create inserts a project together with its initial employees
func (r *GormProjectRepository) Create(ctx context.Context, project *invoicing.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(models.ProjectModelFromDomain(project)).Error; err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}
		return insertEmployees(tx, project)
	})
}

// Save updates a project and replaces its employee list in one transaction
func (r *GormProjectRepository) Save(ctx context.Context, project *invoicing.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ProjectModel{}).
			Where("id = ?", project.ID).
			Updates(projectColumns(project))
		if result.Error != nil {
			return fmt.Errorf("failed to update project: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return invoicing.ErrProjectNotFound
		}

		if err := tx.Where("project_id = ?", project.ID).Delete(&models.EmployeeModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear employees: %w", err)
		}
		return insertEmployees(tx, project)
	})
}

// Delete deletes a project and its employees
func (r *GormProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.EmployeeModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete employees: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&models.ProjectModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete project: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return invoicing.ErrProjectNotFound
		}
		return nil
	})
}

// AddEmployee inserts one employee and stores the project's new total
func (r *GormProjectRepository) AddEmployee(ctx context.Context, project *invoicing.Project, employee *invoicing.Employee) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := touchTotal(tx, project); err != nil {
			return err
		}
		e := *employee
		e.ProjectID = project.ID
		if err := tx.Create(models.EmployeeModelFromDomain(&e, len(project.Employees)-1)).Error; err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}
		return nil
	})
}

// RemoveEmployee deletes one employee and stores the project's new total
func (r *GormProjectRepository) RemoveEmployee(ctx context.Context, project *invoicing.Project, employeeID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND project_id = ?", employeeID, project.ID).Delete(&models.EmployeeModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete employee: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return invoicing.ErrEmployeeNotFound
		}
		return touchTotal(tx, project)
	})
}

func touchTotal(tx *gorm.DB, project *invoicing.Project) error {
	result := tx.Model(&models.ProjectModel{}).
		Where("id = ?", project.ID).
		Updates(map[string]interface{}{
			"total_amount": project.TotalAmount,
			"updated_at":   project.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update project total: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return invoicing.ErrProjectNotFound
	}
	return nil
}

func insertEmployees(tx *gorm.DB, project *invoicing.Project) error {
	rows := models.EmployeeModelsFromDomain(project)
	if len(rows) == 0 {
		return nil
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to create employees: %w", err)
	}
	return nil
}

// projectColumns lists every mutable column so zero values are written too.
func projectColumns(p *invoicing.Project) map[string]interface{} {
	m := models.ProjectModelFromDomain(p)
	return map[string]interface{}{
		"name":             m.Name,
		"description":      m.Description,
		"customer_name":    m.CustomerName,
		"customer_address": m.CustomerAddress,
		"contact_person":   m.ContactPerson,
		"email":            m.Email,
		"invoice_number":   m.InvoiceNumber,
		"invoice_date":     m.InvoiceDate,
		"payment_due_date": m.PaymentDueDate,
		"work_period":      m.WorkPeriod,
		"sow_ref":          m.SowRef,
		"po_number":        m.PONumber,
		"invoice_purpose":  m.InvoicePurpose,
		"currency":         m.Currency,
		"status":           m.Status,
		"total_amount":     m.TotalAmount,
		"updated_at":       m.UpdatedAt,
	}
}

var _ invoicing.ProjectRepository = (*GormProjectRepository)(nil)
