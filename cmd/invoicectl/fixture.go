package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kizora/invoicer/internal/domain/invoicing"
)

// projectFixture is the YAML form of a project rendered by the render command.
type projectFixture struct {
	Name            string            `yaml:"name"`
	Description     string            `yaml:"description"`
	CustomerName    string            `yaml:"customer_name"`
	CustomerAddress string            `yaml:"customer_address"`
	ContactPerson   string            `yaml:"contact_person"`
	Email           string            `yaml:"email"`
	InvoiceNumber   string            `yaml:"invoice_number"`
	InvoiceDate     string            `yaml:"invoice_date"`
	PaymentDueDate  string            `yaml:"payment_due_date"`
	WorkPeriod      string            `yaml:"work_period"`
	SowRef          string            `yaml:"sow_ref"`
	PONumber        string            `yaml:"po_number"`
	InvoicePurpose  string            `yaml:"invoice_purpose"`
	Currency        string            `yaml:"currency"`
	Status          string            `yaml:"status"`
	Employees       []employeeFixture `yaml:"employees"`
}

type employeeFixture struct {
	Name        string `yaml:"name"`
	RatePerHour string `yaml:"rate_per_hour"`
	Hours       string `yaml:"hours"`
}

func loadFixture(path string) (*projectFixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	var f projectFixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// project validates the fixture through the same rules the API applies.
func (f *projectFixture) project(now time.Time) (*invoicing.Project, error) {
	employees := make([]invoicing.EmployeeInput, 0, len(f.Employees))
	for _, e := range f.Employees {
		employees = append(employees, invoicing.EmployeeInput{
			Name:        e.Name,
			RatePerHour: invoicing.ParseQuantity(e.RatePerHour),
			Hours:       invoicing.ParseQuantity(e.Hours),
		})
	}
	return invoicing.NewProject(invoicing.ProjectDetails{
		Name:            f.Name,
		Description:     f.Description,
		CustomerName:    f.CustomerName,
		CustomerAddress: f.CustomerAddress,
		ContactPerson:   f.ContactPerson,
		Email:           f.Email,
		InvoiceNumber:   f.InvoiceNumber,
		InvoiceDate:     f.InvoiceDate,
		PaymentDueDate:  f.PaymentDueDate,
		WorkPeriod:      f.WorkPeriod,
		SowRef:          f.SowRef,
		PONumber:        f.PONumber,
		InvoicePurpose:  f.InvoicePurpose,
		Currency:        f.Currency,
		Status:          invoicing.ProjectStatus(f.Status),
	}, employees, now)
}
