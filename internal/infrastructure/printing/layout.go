package printing

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kizora/invoicer/internal/domain/invoicing"
)

// fieldSource reads a display value from a computed invoice.
type fieldSource func(inv *invoicing.Invoice) string

type fieldSpec struct {
	key     string
	label   string
	control ControlKind
	value   fieldSource
}

type sectionSpec struct {
	key    string
	title  string
	fields []fieldSpec
}

// layoutProfile is everything that differs between layouts. Both the live
// view and the export document are composed from it.
type layoutProfile struct {
	layout           invoicing.Layout
	title            string
	subtitle         string
	sections         []sectionSpec
	columns          func(currency string) []string
	showPosition     bool
	rateWithCurrency bool
	totalLabel       string
	summaryLabel     string
	wireNote         string
	footer           []string
	logoSize         int
	gradientHeader   bool
	watermark        bool
	labelCase        func(string) string
	headingCase      func(string) string
	companyName      func(Issuer) (string, string)
	companyLines     func(Issuer) []string
}

var (
	customerName    = fieldSource(func(inv *invoicing.Invoice) string { return inv.Project.CustomerName })
	customerAddress = fieldSource(func(inv *invoicing.Invoice) string { return inv.Project.CustomerAddress })
	contactPerson   = fieldSource(func(inv *invoicing.Invoice) string { return inv.Project.ContactPerson })
	customerEmail   = fieldSource(func(inv *invoicing.Invoice) string { return inv.Project.Email })
	sowRef          = fieldSource(func(inv *invoicing.Invoice) string { return inv.Project.SowRef })
	invoicePurpose  = fieldSource(func(inv *invoicing.Invoice) string { return inv.Project.InvoicePurpose })
	invoiceNumber   = fieldSource(func(inv *invoicing.Invoice) string { return inv.Display.InvoiceNumber })
	invoiceDate     = fieldSource(func(inv *invoicing.Invoice) string { return inv.Display.InvoiceDate })
	paymentDueDate  = fieldSource(func(inv *invoicing.Invoice) string { return inv.Display.PaymentDueDate })
	workPeriod      = fieldSource(func(inv *invoicing.Invoice) string { return inv.Display.WorkPeriod })
)

// upperCase applies full Unicode upper-case mapping, so "ß" becomes "SS".
// A Caser is not safe for concurrent use, hence one per call.
func upperCase(s string) string {
	return cases.Upper(language.English).String(s)
}

func text(key, label string, src fieldSource) fieldSpec {
	return fieldSpec{key: key, label: label, control: ControlText, value: src}
}

func invoiceDateField(label string) fieldSpec {
	return fieldSpec{key: invoicing.FieldInvoiceDate, label: label, control: ControlDate, value: invoiceDate}
}

func workPeriodField(label string) fieldSpec {
	return fieldSpec{key: invoicing.FieldWorkPeriod, label: label, control: ControlMonthYear, value: workPeriod}
}

// dueDateField has no key: the due date is always derived from the invoice date.
func dueDateField(label string) fieldSpec {
	return fieldSpec{label: label, value: paymentDueDate}
}

func fullName(i Issuer) (string, string)  { return i.Name, "" }
func shortName(i Issuer) (string, string) { return i.ShortName(), "" }
func splitName(i Issuer) (string, string) { return i.ShortName(), i.Subtitle() }

var profiles = map[invoicing.Layout]layoutProfile{
	invoicing.LayoutStandard: {
		layout: invoicing.LayoutStandard,
		title:  "Customer Invoice (Electronic)",
		sections: []sectionSpec{
			{key: "customer", fields: []fieldSpec{
				text(invoicing.FieldCustomerName, "Customer:", customerName),
				text(invoicing.FieldCustomerAddress, "Address:", customerAddress),
				text(invoicing.FieldContactPerson, "Contact Person:", contactPerson),
				text(invoicing.FieldEmail, "Email:", customerEmail),
			}},
			{key: "invoice", fields: []fieldSpec{
				text(invoicing.FieldInvoiceNumber, "Invoice Number:", invoiceNumber),
				invoiceDateField("Invoice Date:"),
				dueDateField("Payment Due Date:"),
				text(invoicing.FieldSowRef, "SOW REF:", sowRef),
			}},
			{key: "purpose", fields: []fieldSpec{
				text(invoicing.FieldInvoicePurpose, "Invoice Purpose:", invoicePurpose),
				workPeriodField("Work period:"),
			}},
		},
		columns: func(cur string) []string {
			return []string{"S.No.", "Name", cur + "/ph", "Hours", "Total"}
		},
		showPosition: true,
		totalLabel:   "Total",
		summaryLabel: "Total Invoice Amount",
		wireNote:     "Wire transfer charges to be borne by payer",
		footer:       []string{"Electronic wire transfer details for payment on next page"},
		logoSize:     80,
		companyName:  fullName,
		companyLines: func(i Issuer) []string {
			return []string{
				"Address: " + i.Address,
				i.City,
				"Ph: " + i.Phone,
				"GST: " + i.GST,
				"CIN: " + i.CIN,
				"Website: " + i.Website + " Email: " + i.Email,
			}
		},
	},
	invoicing.LayoutModern: {
		layout:    invoicing.LayoutModern,
		title:     "INVOICE",
		subtitle:  "Electronic Customer Invoice",
		labelCase: upperCase,
		sections: []sectionSpec{
			{key: "bill_to", title: "Bill To:", fields: []fieldSpec{
				text(invoicing.FieldCustomerName, "Customer:", customerName),
				text(invoicing.FieldCustomerAddress, "Address:", customerAddress),
				text(invoicing.FieldContactPerson, "Contact:", contactPerson),
				text(invoicing.FieldEmail, "Email:", customerEmail),
			}},
			{key: "invoice", fields: []fieldSpec{
				text(invoicing.FieldInvoiceNumber, "Invoice #:", invoiceNumber),
				invoiceDateField("Date:"),
				dueDateField("Due Date:"),
				workPeriodField("Work Period:"),
				text(invoicing.FieldInvoicePurpose, "Project:", invoicePurpose),
			}},
		},
		columns: func(cur string) []string {
			return []string{"#", "Team Member", "Rate (" + cur + "/hr)", "Hours", "Amount"}
		},
		showPosition:   true,
		totalLabel:     "TOTAL",
		summaryLabel:   "Total Amount",
		wireNote:       "Wire transfer charges to be borne by payer",
		logoSize:       64,
		gradientHeader: true,
		companyName:    splitName,
		companyLines: func(i Issuer) []string {
			return []string{i.Address, i.City, "Ph: " + i.Phone + " | " + i.Website}
		},
	},
	invoicing.LayoutMinimal: {
		layout: invoicing.LayoutMinimal,
		title:  "Invoice",
		sections: []sectionSpec{
			{key: "client", title: "Client", fields: []fieldSpec{
				text(invoicing.FieldCustomerName, "", customerName),
				text(invoicing.FieldCustomerAddress, "", customerAddress),
				text(invoicing.FieldEmail, "", customerEmail),
			}},
			{key: "project", title: "Project", fields: []fieldSpec{
				text(invoicing.FieldInvoicePurpose, "", invoicePurpose),
				workPeriodField("Period:"),
			}},
			{key: "details", title: "Details", fields: []fieldSpec{
				text(invoicing.FieldInvoiceNumber, "Invoice:", invoiceNumber),
				invoiceDateField("Date:"),
				dueDateField("Due:"),
			}},
		},
		columns: func(string) []string {
			return []string{"Description", "Rate", "Hours", "Amount"}
		},
		rateWithCurrency: true,
		totalLabel:       "TOTAL",
		footer:           []string{"Thank you for your business"},
		logoSize:         64,
		companyName:      shortName,
		companyLines: func(i Issuer) []string {
			return []string{
				i.Address + ", " + i.City,
				i.Email + " | " + i.Phone + " | " + i.Website,
			}
		},
	},
	invoicing.LayoutCorporate: {
		layout:      invoicing.LayoutCorporate,
		title:       "TAX INVOICE",
		subtitle:    "Customer Electronic Invoice",
		headingCase: upperCase,
		sections: []sectionSpec{
			{key: "bill_to", title: "Bill To", fields: []fieldSpec{
				text(invoicing.FieldCustomerName, "Customer Name", customerName),
				text(invoicing.FieldCustomerAddress, "Address", customerAddress),
				text(invoicing.FieldContactPerson, "Contact Person", contactPerson),
				text(invoicing.FieldEmail, "Email Address", customerEmail),
			}},
			{key: "invoice_details", title: "Invoice Details", fields: []fieldSpec{
				text(invoicing.FieldInvoiceNumber, "Invoice No.", invoiceNumber),
				invoiceDateField("Date"),
				dueDateField("Due Date"),
				text(invoicing.FieldSowRef, "SOW Reference", sowRef),
				workPeriodField("Work Period"),
			}},
			{key: "purpose", fields: []fieldSpec{
				text(invoicing.FieldInvoicePurpose, "Invoice Purpose", invoicePurpose),
			}},
		},
		columns: func(cur string) []string {
			return []string{"S.No.", "Employee Name", "Rate (" + cur + "/Hr)", "Hours", "Total Amount"}
		},
		showPosition: true,
		totalLabel:   "GRAND TOTAL:",
		summaryLabel: "TOTAL INVOICE AMOUNT",
		wireNote:     "* Wire transfer charges to be borne by payer",
		footer: []string{
			"Electronic wire transfer details for payment on next page",
			"This is a computer generated invoice and does not require physical signature",
		},
		logoSize:    96,
		watermark:   true,
		companyName: fullName,
		companyLines: func(i Issuer) []string {
			return []string{
				"Registered Office: " + i.Address,
				i.City,
				"Phone: " + i.Phone + " | Email: " + i.Email,
				"GST: " + i.GST + " | CIN: " + i.CIN,
			}
		},
	},
}

// profileFor returns the profile of a layout, standard for unknown layouts.
func profileFor(layout invoicing.Layout) layoutProfile {
	return profiles[layout.OrDefault()]
}
