package invoicing

import (
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kizora/invoicer/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is applied when a project is created without one.
const DefaultCurrency = "EUR"

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// ProjectStatus represents the lifecycle status of a project
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusDraft     ProjectStatus = "draft"
)

// IsValid checks if the ProjectStatus is a valid value
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusCompleted, ProjectStatusDraft:
		return true
	}
	return false
}

// String returns the string representation of ProjectStatus
func (s ProjectStatus) String() string {
	return string(s)
}

// AllProjectStatuses returns all valid ProjectStatus values
func AllProjectStatuses() []ProjectStatus {
	return []ProjectStatus{ProjectStatusActive, ProjectStatusCompleted, ProjectStatusDraft}
}

// ErrEmployeeNotFound is returned when an employee id is not part of a project.
var ErrEmployeeNotFound = shared.NewDomainError("NOT_FOUND", "Employee not found")

// ErrProjectNotFound is returned for an unknown project id. It matches
// shared.ErrNotFound under errors.Is.
var ErrProjectNotFound = shared.NewDomainError("NOT_FOUND", "Project not found")

// Employee is one time/rate line owned by a project. Total is a stored
// cache of rate × hours; rendering always recomputes it.
type Employee struct {
	shared.BaseEntity
	ProjectID   uuid.UUID
	Name        string
	RatePerHour decimal.Decimal
	Hours       decimal.Decimal
	Total       decimal.Decimal
}

// EmployeeInput carries the user supplied fields of a new employee line.
type EmployeeInput struct {
	Name        string
	RatePerHour decimal.Decimal
	Hours       decimal.Decimal
}

// ProjectDetails holds the free-form fields of a project.
type ProjectDetails struct {
	Name            string
	Description     string
	CustomerName    string
	CustomerAddress string
	ContactPerson   string
	Email           string
	InvoiceNumber   string
	InvoiceDate     string
	PaymentDueDate  string
	WorkPeriod      string
	SowRef          string
	PONumber        string
	InvoicePurpose  string
	Currency        string
	Status          ProjectStatus
}

// ProjectPatch is a partial update. Nil fields are left untouched; a non-nil
// Employees replaces the whole employee list.
type ProjectPatch struct {
	Name            *string
	Description     *string
	CustomerName    *string
	CustomerAddress *string
	ContactPerson   *string
	Email           *string
	InvoiceNumber   *string
	InvoiceDate     *string
	PaymentDueDate  *string
	WorkPeriod      *string
	SowRef          *string
	PONumber        *string
	InvoicePurpose  *string
	Currency        *string
	Status          *ProjectStatus
	Employees       *[]EmployeeInput
}

// Project is the aggregate root for a customer engagement and its
// employee time entries.
type Project struct {
	shared.BaseEntity
	ProjectDetails
	Employees   []Employee
	TotalAmount decimal.Decimal
}

// NewProject validates details and employees and creates a project.
func NewProject(details ProjectDetails, employees []EmployeeInput, now time.Time) (*Project, error) {
	p := &Project{
		BaseEntity:     shared.NewBaseEntityAt(now),
		ProjectDetails: normalizeDetails(details),
	}

	verr := shared.NewValidationError()
	validateDetails(p.ProjectDetails, verr)
	validateEmployeeInputs(employees, verr)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	p.Employees = p.buildEmployees(employees, now)
	p.RecalculateTotal()
	return p, nil
}

// ApplyPatch validates the patched state and applies it. Nothing changes
// when validation fails.
func (p *Project) ApplyPatch(patch ProjectPatch, now time.Time) error {
	next := p.ProjectDetails
	assign := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	assign(&next.Name, patch.Name)
	assign(&next.Description, patch.Description)
	assign(&next.CustomerName, patch.CustomerName)
	assign(&next.CustomerAddress, patch.CustomerAddress)
	assign(&next.ContactPerson, patch.ContactPerson)
	assign(&next.Email, patch.Email)
	assign(&next.InvoiceNumber, patch.InvoiceNumber)
	assign(&next.InvoiceDate, patch.InvoiceDate)
	assign(&next.PaymentDueDate, patch.PaymentDueDate)
	assign(&next.WorkPeriod, patch.WorkPeriod)
	assign(&next.SowRef, patch.SowRef)
	assign(&next.PONumber, patch.PONumber)
	assign(&next.InvoicePurpose, patch.InvoicePurpose)
	assign(&next.Currency, patch.Currency)
	if patch.Status != nil {
		next.Status = *patch.Status
	}
	next = normalizeDetails(next)

	verr := shared.NewValidationError()
	validateDetails(next, verr)
	if patch.Employees != nil {
		validateEmployeeInputs(*patch.Employees, verr)
	}
	if err := verr.OrNil(); err != nil {
		return err
	}

	p.ProjectDetails = next
	if patch.Employees != nil {
		p.Employees = p.buildEmployees(*patch.Employees, now)
	}
	p.RecalculateTotal()
	p.Touch(now)
	return nil
}

// AddEmployee appends a validated employee line and refreshes the total.
func (p *Project) AddEmployee(in EmployeeInput, now time.Time) (*Employee, error) {
	verr := shared.NewValidationError()
	validateEmployeeInput("", in, verr)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	p.Employees = append(p.Employees, p.newEmployee(in, now))
	p.RecalculateTotal()
	p.Touch(now)
	return &p.Employees[len(p.Employees)-1], nil
}

// RemoveEmployee drops the employee with the given id and refreshes the total.
func (p *Project) RemoveEmployee(employeeID uuid.UUID, now time.Time) error {
	idx := p.employeeIndex(employeeID)
	if idx < 0 {
		return ErrEmployeeNotFound
	}
	p.Employees = append(p.Employees[:idx], p.Employees[idx+1:]...)
	p.RecalculateTotal()
	p.Touch(now)
	return nil
}

// FindEmployee returns the employee with the given id.
func (p *Project) FindEmployee(employeeID uuid.UUID) (*Employee, bool) {
	idx := p.employeeIndex(employeeID)
	if idx < 0 {
		return nil, false
	}
	return &p.Employees[idx], true
}

// MergeImported appends imported time entries to the existing employees and
// stamps the work period with now's month. Existing lines are kept. Nothing
// changes when an entry is rejected.
func (p *Project) MergeImported(entries []EmployeeInput, now time.Time) ([]Employee, error) {
	verr := shared.NewValidationError()
	validateEmployeeInputs(entries, verr)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	added := make([]Employee, 0, len(entries))
	for _, in := range entries {
		e := p.newEmployee(in, now)
		p.Employees = append(p.Employees, e)
		added = append(added, e)
	}
	p.WorkPeriod = WorkPeriodLabel(now)
	p.RecalculateTotal()
	p.Touch(now)
	return added, nil
}

// FinalizeEdit validates an edited working copy and prepares it for
// persistence: the invoice date is stored in storage form, the due date is
// recomputed from it, and every cached total is refreshed. Nothing changes
// when validation fails.
func (p *Project) FinalizeEdit(now time.Time) error {
	details := normalizeDetails(p.ProjectDetails)
	if err := validateProject(details, p.Employees); err != nil {
		return err
	}

	p.ProjectDetails = details
	invoiceDate := NormalizeDate(p.InvoiceDate, now)
	p.InvoiceDate = NormalizeForStorage(invoiceDate, now)
	p.PaymentDueDate = NormalizeForStorage(DueDate(invoiceDate, now), now)
	p.RecalculateTotal()
	p.Touch(now)
	return nil
}

// Validate checks the project details and every employee line.
func (p *Project) Validate() error {
	return validateProject(p.ProjectDetails, p.Employees)
}

// RecalculateTotal refreshes every employee total and the project total.
func (p *Project) RecalculateTotal() {
	total := decimal.Zero
	for i := range p.Employees {
		p.Employees[i].Total = LineAmount(p.Employees[i].RatePerHour, p.Employees[i].Hours)
		total = total.Add(p.Employees[i].Total)
	}
	p.TotalAmount = total
}

// Clone returns a deep copy suitable as an editing working copy.
func (p *Project) Clone() *Project {
	c := *p
	c.Employees = make([]Employee, len(p.Employees))
	copy(c.Employees, p.Employees)
	return &c
}

func (p *Project) employeeIndex(id uuid.UUID) int {
	for i := range p.Employees {
		if p.Employees[i].ID == id {
			return i
		}
	}
	return -1
}

func (p *Project) buildEmployees(inputs []EmployeeInput, now time.Time) []Employee {
	out := make([]Employee, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, p.newEmployee(in, now))
	}
	return out
}

func (p *Project) newEmployee(in EmployeeInput, now time.Time) Employee {
	return Employee{
		BaseEntity:  shared.NewBaseEntityAt(now),
		ProjectID:   p.ID,
		Name:        strings.TrimSpace(in.Name),
		RatePerHour: in.RatePerHour,
		Hours:       in.Hours,
		Total:       LineAmount(in.RatePerHour, in.Hours),
	}
}

func normalizeDetails(d ProjectDetails) ProjectDetails {
	d.Name = strings.TrimSpace(d.Name)
	d.CustomerName = strings.TrimSpace(d.CustomerName)
	d.Email = strings.TrimSpace(d.Email)
	d.InvoiceNumber = strings.TrimSpace(d.InvoiceNumber)
	d.Currency = strings.ToUpper(strings.TrimSpace(d.Currency))
	if d.Currency == "" {
		d.Currency = DefaultCurrency
	}
	if d.Status == "" {
		d.Status = ProjectStatusActive
	}
	return d
}

func validateDetails(d ProjectDetails, verr *shared.ValidationError) {
	required := []struct {
		field string
		value string
	}{
		{"name", d.Name},
		{"customer_name", d.CustomerName},
		{"customer_address", d.CustomerAddress},
		{"contact_person", d.ContactPerson},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			verr.Add(r.field, "is required")
		}
	}
	if len(d.Name) > 200 {
		verr.Add("name", "must be at most 200 characters")
	}
	if !isEmail(d.Email) {
		verr.Add("email", "must be a valid email address")
	}
	if !currencyPattern.MatchString(d.Currency) {
		verr.Add("currency", "must be a 3-letter currency code")
	}
	if !d.Status.IsValid() {
		verr.Add("status", "must be one of active, completed, draft")
	}
}

func validateProject(d ProjectDetails, employees []Employee) error {
	verr := shared.NewValidationError()
	validateDetails(d, verr)
	for i, e := range employees {
		in := EmployeeInput{Name: e.Name, RatePerHour: e.RatePerHour, Hours: e.Hours}
		validateEmployeeInput("employees["+strconv.Itoa(i)+"].", in, verr)
	}
	return verr.OrNil()
}

func validateEmployeeInputs(inputs []EmployeeInput, verr *shared.ValidationError) {
	for i, in := range inputs {
		validateEmployeeInput("employees["+strconv.Itoa(i)+"].", in, verr)
	}
}

func validateEmployeeInput(prefix string, in EmployeeInput, verr *shared.ValidationError) {
	if strings.TrimSpace(in.Name) == "" {
		verr.Add(prefix+"name", "is required")
	}
	if in.RatePerHour.IsNegative() {
		verr.Add(prefix+"rate_per_hour", "must not be negative")
	}
	if in.Hours.IsNegative() {
		verr.Add(prefix+"hours", "must not be negative")
	}
}

func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
