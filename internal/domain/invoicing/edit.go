package invoicing

import (
	"github.com/google/uuid"
	"github.com/kizora/invoicer/internal/domain/shared"
)

// Editable project field keys. The live view binds its controls to these
// keys and edits come back addressed by them.
const (
	FieldCustomerName    = "customer_name"
	FieldCustomerAddress = "customer_address"
	FieldContactPerson   = "contact_person"
	FieldEmail           = "email"
	FieldInvoiceNumber   = "invoice_number"
	FieldInvoiceDate     = "invoice_date"
	FieldWorkPeriod      = "work_period"
	FieldSowRef          = "sow_ref"
	FieldPONumber        = "po_number"
	FieldInvoicePurpose  = "invoice_purpose"
)

// Editable employee field keys.
const (
	EmployeeFieldName  = "name"
	EmployeeFieldRate  = "rate_per_hour"
	EmployeeFieldHours = "hours"
)

// ChangeKind tells what a FieldChange addresses.
type ChangeKind string

const (
	ChangeSetField         ChangeKind = "set_field"
	ChangeSetEmployeeField ChangeKind = "set_employee_field"
	ChangeRemoveEmployee   ChangeKind = "remove_employee"
)

// FieldChange is a single edit notification raised by a live view control.
type FieldChange struct {
	Kind       ChangeKind
	Field      string
	EmployeeID uuid.UUID
	Value      string
}

// ErrUnknownField is returned for an edit addressed to a field that is not editable.
var ErrUnknownField = shared.NewDomainError("INVALID_INPUT", "Field is not editable")

// ApplyChanges returns a working copy of p with the changes applied in
// order. p itself is never modified. Totals on the copy are recomputed so
// that any stored cache matches the edited rate and hours.
func ApplyChanges(p *Project, changes []FieldChange) (*Project, error) {
	w := p.Clone()
	for _, ch := range changes {
		switch ch.Kind {
		case ChangeSetField:
			if err := w.setField(ch.Field, ch.Value); err != nil {
				return nil, err
			}
		case ChangeSetEmployeeField:
			e, ok := w.FindEmployee(ch.EmployeeID)
			if !ok {
				return nil, ErrEmployeeNotFound
			}
			if err := e.setField(ch.Field, ch.Value); err != nil {
				return nil, err
			}
		case ChangeRemoveEmployee:
			idx := w.employeeIndex(ch.EmployeeID)
			if idx < 0 {
				return nil, ErrEmployeeNotFound
			}
			w.Employees = append(w.Employees[:idx], w.Employees[idx+1:]...)
		default:
			return nil, shared.NewDomainError("INVALID_INPUT", "Unknown change kind: "+string(ch.Kind))
		}
	}
	w.RecalculateTotal()
	return w, nil
}

func (p *Project) setField(field, value string) error {
	switch field {
	case FieldCustomerName:
		p.CustomerName = value
	case FieldCustomerAddress:
		p.CustomerAddress = value
	case FieldContactPerson:
		p.ContactPerson = value
	case FieldEmail:
		p.Email = value
	case FieldInvoiceNumber:
		p.InvoiceNumber = value
	case FieldInvoiceDate:
		p.InvoiceDate = value
	case FieldWorkPeriod:
		p.WorkPeriod = value
	case FieldSowRef:
		p.SowRef = value
	case FieldPONumber:
		p.PONumber = value
	case FieldInvoicePurpose:
		p.InvoicePurpose = value
	default:
		return ErrUnknownField
	}
	return nil
}

func (e *Employee) setField(field, value string) error {
	switch field {
	case EmployeeFieldName:
		e.Name = value
	case EmployeeFieldRate:
		e.RatePerHour = ParseQuantity(value)
	case EmployeeFieldHours:
		e.Hours = ParseQuantity(value)
	default:
		return ErrUnknownField
	}
	return nil
}
