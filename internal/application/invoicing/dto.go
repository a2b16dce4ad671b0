package invoicing

import (
	"time"

	"github.com/google/uuid"
	"github.com/kizora/invoicer/internal/domain/invoicing"
	"github.com/kizora/invoicer/internal/infrastructure/printing"
	"github.com/kizora/invoicer/internal/infrastructure/spreadsheet"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Project DTOs
// =============================================================================

// EmployeeRequest is one employee line in a create or update request
type EmployeeRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=255"`
	RatePerHour decimal.Decimal `json:"rate_per_hour"`
	Hours       decimal.Decimal `json:"hours"`
}

// CreateProjectRequest represents a request to create a new project
type CreateProjectRequest struct {
	Name            string            `json:"name" binding:"required,min=1,max=200"`
	Description     string            `json:"description"`
	CustomerName    string            `json:"customer_name" binding:"required,min=1,max=255"`
	CustomerAddress string            `json:"customer_address" binding:"required"`
	ContactPerson   string            `json:"contact_person" binding:"required,min=1,max=255"`
	Email           string            `json:"email" binding:"required,email,max=255"`
	InvoiceNumber   string            `json:"invoice_number" binding:"max=100"`
	InvoiceDate     string            `json:"invoice_date" binding:"max=50"`
	PaymentDueDate  string            `json:"payment_due_date" binding:"max=50"`
	WorkPeriod      string            `json:"work_period" binding:"max=100"`
	SowRef          string            `json:"sow_ref" binding:"max=100"`
	PONumber        string            `json:"po_number" binding:"max=100"`
	InvoicePurpose  string            `json:"invoice_purpose"`
	Currency        string            `json:"currency" binding:"omitempty,len=3"`
	Status          string            `json:"status" binding:"omitempty,oneof=active completed draft"`
	Employees       []EmployeeRequest `json:"employees" binding:"omitempty,dive"`
}

// UpdateProjectRequest represents a partial project update. A present
// employees list replaces the stored one.
type UpdateProjectRequest struct {
	Name            *string            `json:"name" binding:"omitempty,min=1,max=200"`
	Description     *string            `json:"description"`
	CustomerName    *string            `json:"customer_name" binding:"omitempty,min=1,max=255"`
	CustomerAddress *string            `json:"customer_address" binding:"omitempty,min=1"`
	ContactPerson   *string            `json:"contact_person" binding:"omitempty,min=1,max=255"`
	Email           *string            `json:"email" binding:"omitempty,email,max=255"`
	InvoiceNumber   *string            `json:"invoice_number" binding:"omitempty,max=100"`
	InvoiceDate     *string            `json:"invoice_date" binding:"omitempty,max=50"`
	PaymentDueDate  *string            `json:"payment_due_date" binding:"omitempty,max=50"`
	WorkPeriod      *string            `json:"work_period" binding:"omitempty,max=100"`
	SowRef          *string            `json:"sow_ref" binding:"omitempty,max=100"`
	PONumber        *string            `json:"po_number" binding:"omitempty,max=100"`
	InvoicePurpose  *string            `json:"invoice_purpose"`
	Currency        *string            `json:"currency" binding:"omitempty,len=3"`
	Status          *string            `json:"status" binding:"omitempty,oneof=active completed draft"`
	Employees       *[]EmployeeRequest `json:"employees" binding:"omitempty,dive"`
}

// EmployeeResponse represents an employee line in API responses
type EmployeeResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProjectID   uuid.UUID       `json:"project_id"`
	Name        string          `json:"name"`
	RatePerHour decimal.Decimal `json:"rate_per_hour"`
	Hours       decimal.Decimal `json:"hours"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID              uuid.UUID          `json:"id"`
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	CustomerName    string             `json:"customer_name"`
	CustomerAddress string             `json:"customer_address"`
	ContactPerson   string             `json:"contact_person"`
	Email           string             `json:"email"`
	InvoiceNumber   string             `json:"invoice_number"`
	InvoiceDate     string             `json:"invoice_date"`
	PaymentDueDate  string             `json:"payment_due_date"`
	WorkPeriod      string             `json:"work_period"`
	SowRef          string             `json:"sow_ref"`
	PONumber        string             `json:"po_number"`
	InvoicePurpose  string             `json:"invoice_purpose"`
	Currency        string             `json:"currency"`
	Status          string             `json:"status"`
	TotalAmount     decimal.Decimal    `json:"total_amount"`
	Employees       []EmployeeResponse `json:"employees"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// ToProjectResponse converts a domain Project to ProjectResponse
func ToProjectResponse(p *invoicing.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:              p.ID,
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
		Employees:       make([]EmployeeResponse, 0, len(p.Employees)),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	for _, e := range p.Employees {
		resp.Employees = append(resp.Employees, ToEmployeeResponse(e))
	}
	return resp
}

// ToProjectResponses converts a list of projects
func ToProjectResponses(projects []*invoicing.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, ToProjectResponse(p))
	}
	return out
}

// ToEmployeeResponse converts a domain Employee to EmployeeResponse
func ToEmployeeResponse(e invoicing.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          e.ID,
		ProjectID:   e.ProjectID,
		Name:        e.Name,
		RatePerHour: e.RatePerHour,
		Hours:       e.Hours,
		Total:       e.Total,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (r CreateProjectRequest) details() invoicing.ProjectDetails {
	return invoicing.ProjectDetails{
		Name:            r.Name,
		Description:     r.Description,
		CustomerName:    r.CustomerName,
		CustomerAddress: r.CustomerAddress,
		ContactPerson:   r.ContactPerson,
		Email:           r.Email,
		InvoiceNumber:   r.InvoiceNumber,
		InvoiceDate:     r.InvoiceDate,
		PaymentDueDate:  r.PaymentDueDate,
		WorkPeriod:      r.WorkPeriod,
		SowRef:          r.SowRef,
		PONumber:        r.PONumber,
		InvoicePurpose:  r.InvoicePurpose,
		Currency:        r.Currency,
		Status:          invoicing.ProjectStatus(r.Status),
	}
}

func (r UpdateProjectRequest) patch() invoicing.ProjectPatch {
	p := invoicing.ProjectPatch{
		Name:            r.Name,
		Description:     r.Description,
		CustomerName:    r.CustomerName,
		CustomerAddress: r.CustomerAddress,
		ContactPerson:   r.ContactPerson,
		Email:           r.Email,
		InvoiceNumber:   r.InvoiceNumber,
		InvoiceDate:     r.InvoiceDate,
		PaymentDueDate:  r.PaymentDueDate,
		WorkPeriod:      r.WorkPeriod,
		SowRef:          r.SowRef,
		PONumber:        r.PONumber,
		InvoicePurpose:  r.InvoicePurpose,
		Currency:        r.Currency,
	}
	if r.Status != nil {
		s := invoicing.ProjectStatus(*r.Status)
		p.Status = &s
	}
	if r.Employees != nil {
		inputs := employeeInputs(*r.Employees)
		p.Employees = &inputs
	}
	return p
}

func (r EmployeeRequest) input() invoicing.EmployeeInput {
	return invoicing.EmployeeInput{Name: r.Name, RatePerHour: r.RatePerHour, Hours: r.Hours}
}

func employeeInputs(reqs []EmployeeRequest) []invoicing.EmployeeInput {
	out := make([]invoicing.EmployeeInput, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, r.input())
	}
	return out
}

// =============================================================================
// Invoice DTOs
// =============================================================================

// FieldChangeRequest is one edit raised by a live view control
type FieldChangeRequest struct {
	Kind       string     `json:"kind" binding:"required,oneof=set_field set_employee_field remove_employee"`
	Field      string     `json:"field" binding:"max=50"`
	EmployeeID *uuid.UUID `json:"employee_id"`
	Value      string     `json:"value"`
}

// EditInvoiceRequest carries edits made in the live view since it was loaded
type EditInvoiceRequest struct {
	TemplateID string               `json:"template_id" binding:"max=50"`
	Changes    []FieldChangeRequest `json:"changes" binding:"omitempty,dive"`
}

func (r EditInvoiceRequest) changes() []invoicing.FieldChange {
	out := make([]invoicing.FieldChange, 0, len(r.Changes))
	for _, c := range r.Changes {
		ch := invoicing.FieldChange{
			Kind:  invoicing.ChangeKind(c.Kind),
			Field: c.Field,
			Value: c.Value,
		}
		if c.EmployeeID != nil {
			ch.EmployeeID = *c.EmployeeID
		}
		out = append(out, ch)
	}
	return out
}

// LiveViewResponse is the live view document together with the values it was
// computed from
type LiveViewResponse struct {
	ProjectID uuid.UUID                 `json:"project_id"`
	Template  invoicing.InvoiceTemplate `json:"template"`
	Fields    invoicing.EffectiveFields `json:"fields"`
	Total     decimal.Decimal           `json:"total"`
	Document  *printing.Document        `json:"document"`
}

// ExportResult is a rendered export document and, when archiving is
// configured, where it was stored
type ExportResult struct {
	Filename    string
	ContentType string
	Content     []byte
	Archived    *printing.ArchivedDocument
}

// =============================================================================
// Template DTOs
// =============================================================================

// SelectTemplateRequest represents a request to change the selected template
type SelectTemplateRequest struct {
	TemplateID string `json:"template_id" binding:"required,max=50"`
}

// TemplatePreferenceResponse is the selected template
type TemplatePreferenceResponse struct {
	TemplateID string                    `json:"template_id"`
	Template   invoicing.InvoiceTemplate `json:"template"`
}

// =============================================================================
// Import DTOs
// =============================================================================

// UploadResponse describes a stored upload session
type UploadResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	Filename  string    `json:"filename"`
	Sheets    []string  `json:"sheets"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TimeEntryResponse is one parsed spreadsheet row
type TimeEntryResponse struct {
	Row          int             `json:"row"`
	EmployeeName string          `json:"employee_name"`
	ProjectName  string          `json:"project_name"`
	RatePerHour  decimal.Decimal `json:"rate_per_hour"`
	Hours        decimal.Decimal `json:"hours"`
	Amount       decimal.Decimal `json:"amount"`
}

// ImportGroupResponse is the entries of one spreadsheet project name and the
// project they will be merged into
type ImportGroupResponse struct {
	ProjectName        string              `json:"project_name"`
	Match              string              `json:"match"`
	MatchedProjectID   *uuid.UUID          `json:"matched_project_id,omitempty"`
	MatchedProjectName string              `json:"matched_project_name,omitempty"`
	Entries            []TimeEntryResponse `json:"entries"`
	Total              decimal.Decimal     `json:"total"`
}

// SheetPreviewResponse is the parsed content of one sheet
type SheetPreviewResponse struct {
	SessionID uuid.UUID                `json:"session_id"`
	Sheet     string                   `json:"sheet"`
	Header    []string                 `json:"header"`
	Groups    []ImportGroupResponse    `json:"groups"`
	Skipped   []spreadsheet.SkippedRow `json:"skipped_rows"`
	Matched   int                      `json:"matched_groups"`
	Unmatched int                      `json:"unmatched_groups"`
}

// ConfirmImportResponse lists the updated projects and the project names that
// matched nothing
type ConfirmImportResponse struct {
	Projects        []ProjectResponse `json:"projects"`
	SkippedProjects []string          `json:"skipped_projects"`
	ImportedRows    int               `json:"imported_rows"`
}

func toTimeEntryResponse(e invoicing.TimeEntry) TimeEntryResponse {
	return TimeEntryResponse{
		Row:          e.Row,
		EmployeeName: e.EmployeeName,
		ProjectName:  e.ProjectName,
		RatePerHour:  e.RatePerHour,
		Hours:        e.Hours,
		Amount:       e.Amount,
	}
}

func toImportGroupResponse(g invoicing.EntryGroup) ImportGroupResponse {
	resp := ImportGroupResponse{
		ProjectName: g.ProjectName,
		Match:       string(g.Match),
		Entries:     make([]TimeEntryResponse, 0, len(g.Entries)),
		Total:       decimal.Zero,
	}
	if g.Project != nil {
		id := g.Project.ID
		resp.MatchedProjectID = &id
		resp.MatchedProjectName = g.Project.Name
	}
	for _, e := range g.Entries {
		resp.Entries = append(resp.Entries, toTimeEntryResponse(e))
		resp.Total = resp.Total.Add(e.Amount)
	}
	return resp
}
