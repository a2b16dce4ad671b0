package models

import (
	"github.com/google/uuid"
	"github.com/kizora/invoicer/internal/domain/invoicing"
	"github.com/shopspring/decimal"
)

// ProjectModel is the GORM model for the projects table
type ProjectModel struct {
	BaseModel
	Name            string          `gorm:"type:varchar(255);not null"`
	Description     string          `gorm:"type:text"`
	CustomerName    string          `gorm:"column:customer_name;type:varchar(255);not null"`
	CustomerAddress string          `gorm:"column:customer_address;type:text;not null"`
	ContactPerson   string          `gorm:"column:contact_person;type:varchar(255);not null"`
	Email           string          `gorm:"type:varchar(255)"`
	InvoiceNumber   string          `gorm:"column:invoice_number;type:varchar(100)"`
	InvoiceDate     string          `gorm:"column:invoice_date;type:varchar(50)"`
	PaymentDueDate  string          `gorm:"column:payment_due_date;type:varchar(50)"`
	WorkPeriod      string          `gorm:"column:work_period;type:varchar(100)"`
	SowRef          string          `gorm:"column:sow_ref;type:varchar(100)"`
	PONumber        string          `gorm:"column:po_number;type:varchar(100)"`
	InvoicePurpose  string          `gorm:"column:invoice_purpose;type:text"`
	Currency        string          `gorm:"type:varchar(3);not null;default:'EUR'"`
	Status          string          `gorm:"type:varchar(20);not null;default:'active'"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:decimal(18,4);not null;default:0"`
	Employees       []EmployeeModel `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for ProjectModel
func (ProjectModel) TableName() string {
	return "projects"
}

// EmployeeModel is the GORM model for the employees table
type EmployeeModel struct {
	BaseModel
	ProjectID   uuid.UUID       `gorm:"column:project_id;type:uuid;not null;index"`
	Position    int             `gorm:"not null;default:0"`
	Name        string          `gorm:"type:varchar(255);not null"`
	RatePerHour decimal.Decimal `gorm:"column:rate_per_hour;type:decimal(18,4);not null;default:0"`
	Hours       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for EmployeeModel
func (EmployeeModel) TableName() string {
	return "employees"
}

// ToDomain converts ProjectModel to domain Project
func (m *ProjectModel) ToDomain() *invoicing.Project {
	p := &invoicing.Project{
		BaseEntity: m.BaseModel.ToDomain(),
		ProjectDetails: invoicing.ProjectDetails{
			Name:            m.Name,
			Description:     m.Description,
			CustomerName:    m.CustomerName,
			CustomerAddress: m.CustomerAddress,
			ContactPerson:   m.ContactPerson,
			Email:           m.Email,
			InvoiceNumber:   m.InvoiceNumber,
			InvoiceDate:     m.InvoiceDate,
			PaymentDueDate:  m.PaymentDueDate,
			WorkPeriod:      m.WorkPeriod,
			SowRef:          m.SowRef,
			PONumber:        m.PONumber,
			InvoicePurpose:  m.InvoicePurpose,
			Currency:        m.Currency,
			Status:          invoicing.ProjectStatus(m.Status),
		},
		Employees:   make([]invoicing.Employee, 0, len(m.Employees)),
		TotalAmount: m.TotalAmount,
	}
	for i := range m.Employees {
		p.Employees = append(p.Employees, m.Employees[i].ToDomain())
	}
	return p
}

// ToDomain converts EmployeeModel to domain Employee
func (m *EmployeeModel) ToDomain() invoicing.Employee {
	return invoicing.Employee{
		BaseEntity:  m.BaseModel.ToDomain(),
		ProjectID:   m.ProjectID,
		Name:        m.Name,
		RatePerHour: m.RatePerHour,
		Hours:       m.Hours,
		Total:       m.Total,
	}
}

// ProjectModelFromDomain converts a domain Project to ProjectModel. Employee
// lines are converted separately with EmployeeModelsFromDomain.
func ProjectModelFromDomain(p *invoicing.Project) *ProjectModel {
	m := &ProjectModel{
		Name:            p.Name,
		Description:     p.Description,
		CustomerName:    p.CustomerName,
		CustomerAddress: p.CustomerAddress,
		ContactPerson:   p.ContactPerson,
		Email:           p.Email,
		InvoiceNumber:   p.InvoiceNumber,
		InvoiceDate:     p.InvoiceDate,
		PaymentDueDate:  p.PaymentDueDate,
		WorkPeriod:      p.WorkPeriod,
		SowRef:          p.SowRef,
		PONumber:        p.PONumber,
		InvoicePurpose:  p.InvoicePurpose,
		Currency:        p.Currency,
		Status:          string(p.Status),
		TotalAmount:     p.TotalAmount,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// EmployeeModelFromDomain converts a domain Employee at the given list position.
func EmployeeModelFromDomain(e *invoicing.Employee, position int) *EmployeeModel {
	m := &EmployeeModel{
		ProjectID:   e.ProjectID,
		Position:    position,
		Name:        e.Name,
		RatePerHour: e.RatePerHour,
		Hours:       e.Hours,
		Total:       e.Total,
	}
	m.FromDomainBaseEntity(e.BaseEntity)
	return m
}

// EmployeeModelsFromDomain converts a project's employee list, keeping order.
func EmployeeModelsFromDomain(p *invoicing.Project) []EmployeeModel {
	out := make([]EmployeeModel, 0, len(p.Employees))
	for i := range p.Employees {
		e := p.Employees[i]
		e.ProjectID = p.ID
		out = append(out, *EmployeeModelFromDomain(&e, i))
	}
	return out
}
