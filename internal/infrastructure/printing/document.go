package printing

import (
	"github.com/kizora/invoicer/internal/domain/invoicing"
)

// ControlKind is the input control bound to an editable field.
type ControlKind string

const (
	ControlText      ControlKind = "text"
	ControlNumber    ControlKind = "number"
	ControlDate      ControlKind = "date"
	ControlMonthYear ControlKind = "month-year"
)

// WatermarkAngle and WatermarkOpacity describe the diagonal watermark.
const (
	WatermarkAngle   = 45
	WatermarkOpacity = 0.05
)

// Document is a layout applied to a computed invoice. The live view is a
// Document; the export renderer writes a Document out as HTML. Every string a
// reader can see is taken from the same Document in both.
type Document struct {
	TemplateID string           `json:"template_id"`
	Layout     invoicing.Layout `json:"layout"`
	Editing    bool             `json:"editing"`
	Theme      Theme            `json:"theme"`
	Header     Header           `json:"header"`
	Title      string           `json:"title"`
	Subtitle   string           `json:"subtitle,omitempty"`
	Sections   []Section        `json:"sections"`
	Table      Table            `json:"table"`
	Summary    *Summary         `json:"summary,omitempty"`
	Footer     []string         `json:"footer,omitempty"`
	Watermark  *Watermark       `json:"watermark,omitempty"`
	Filename   string           `json:"filename"`
}

// Theme carries the template colors and fonts.
type Theme struct {
	Primary     string                `json:"primary"`
	Secondary   string                `json:"secondary"`
	Text        string                `json:"text"`
	Background  string                `json:"background"`
	HeaderFont  string                `json:"header_font"`
	BodyFont    string                `json:"body_font"`
	Gradient    bool                  `json:"gradient"`
	ShowBorder  bool                  `json:"show_border"`
	HeaderStyle invoicing.HeaderStyle `json:"header_style"`
	TableStyle  invoicing.TableStyle  `json:"table_style"`
}

// Header is the issuer block at the top of the document.
type Header struct {
	CompanyName     string   `json:"company_name"`
	CompanySubtitle string   `json:"company_subtitle,omitempty"`
	Lines           []string `json:"lines"`
	Logo            *Logo    `json:"logo,omitempty"`
}

// Logo is the remote logo image.
type Logo struct {
	URL  string `json:"url"`
	Alt  string `json:"alt"`
	Size int    `json:"size"`
}

// Section groups labelled fields.
type Section struct {
	Key    string  `json:"key"`
	Title  string  `json:"title,omitempty"`
	Fields []Field `json:"fields"`
}

// Field is a labelled value. In editing mode fields with a key are bound to
// an input control; the due date never is.
type Field struct {
	Key       string            `json:"key,omitempty"`
	Label     string            `json:"label,omitempty"`
	Value     string            `json:"value"`
	Editable  bool              `json:"editable"`
	Control   ControlKind       `json:"control,omitempty"`
	Input     string            `json:"input,omitempty"`
	MonthYear *MonthYearOptions `json:"month_year,omitempty"`
	Change    *ChangeBinding    `json:"change,omitempty"`
}

// ChangeBinding tells the client which edit to send when a control changes.
type ChangeBinding struct {
	Kind       invoicing.ChangeKind `json:"kind"`
	Field      string               `json:"field,omitempty"`
	EmployeeID string               `json:"employee_id,omitempty"`
}

// Table is the line-item table.
type Table struct {
	Columns      []string `json:"columns"`
	ShowPosition bool     `json:"show_position"`
	Rows         []Row    `json:"rows"`
	TotalLabel   string   `json:"total_label"`
	GrandTotal   string   `json:"grand_total"`
}

// Row is one line item.
type Row struct {
	EmployeeID string         `json:"employee_id"`
	Position   int            `json:"position"`
	Name       Field          `json:"name"`
	Rate       Field          `json:"rate"`
	Hours      Field          `json:"hours"`
	Amount     string         `json:"amount"`
	Remove     *ChangeBinding `json:"remove,omitempty"`
}

// Summary is the boxed grand total below the table.
type Summary struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
	Note   string `json:"note,omitempty"`
}

// Watermark is the faint diagonal issuer mark.
type Watermark struct {
	Text    string  `json:"text"`
	Angle   int     `json:"angle"`
	Opacity float64 `json:"opacity"`
}

// compose applies the invoice's layout to it.
func compose(inv *invoicing.Invoice, issuer Issuer, editing bool) *Document {
	tmpl := inv.Template
	prof := profileFor(tmpl.Layout)
	currency := inv.Display.Currency

	doc := &Document{
		TemplateID: tmpl.ID,
		Layout:     prof.layout,
		Editing:    editing,
		Theme: Theme{
			Primary:     tmpl.Colors.Primary,
			Secondary:   tmpl.Colors.Secondary,
			Text:        tmpl.Colors.Text,
			Background:  tmpl.Colors.Background,
			HeaderFont:  tmpl.Fonts.Header,
			BodyFont:    tmpl.Fonts.Body,
			Gradient:    prof.gradientHeader,
			ShowBorder:  tmpl.Features.ShowBorder,
			HeaderStyle: tmpl.Features.HeaderStyle,
			TableStyle:  tmpl.Features.TableStyle,
		},
		Title:    prof.title,
		Subtitle: prof.subtitle,
		Footer:   prof.footer,
		Filename: inv.ExportFilename(),
	}

	name, subtitle := prof.companyName(issuer)
	doc.Header = Header{CompanyName: name, CompanySubtitle: subtitle, Lines: prof.companyLines(issuer)}
	if tmpl.Features.ShowLogo {
		doc.Header.Logo = &Logo{URL: issuer.LogoURL, Alt: issuer.LogoAlt, Size: prof.logoSize}
	}

	for _, ss := range prof.sections {
		section := Section{Key: ss.key, Title: ss.title, Fields: make([]Field, 0, len(ss.fields))}
		if prof.headingCase != nil {
			section.Title = prof.headingCase(section.Title)
		}
		for _, fs := range ss.fields {
			f := composeField(inv, fs, editing)
			if prof.labelCase != nil {
				f.Label = prof.labelCase(f.Label)
			}
			section.Fields = append(section.Fields, f)
		}
		doc.Sections = append(doc.Sections, section)
	}

	doc.Table = Table{
		Columns:      prof.columns(currency),
		ShowPosition: prof.showPosition,
		Rows:         make([]Row, 0, len(inv.Display.Rows)),
		TotalLabel:   prof.totalLabel,
		GrandTotal:   inv.Display.GrandTotal,
	}
	for _, r := range inv.Display.Rows {
		doc.Table.Rows = append(doc.Table.Rows, composeRow(r, currency, prof.rateWithCurrency, editing))
	}

	if prof.summaryLabel != "" {
		doc.Summary = &Summary{Label: prof.summaryLabel, Amount: inv.Display.GrandTotal, Note: prof.wireNote}
	}
	if prof.watermark && tmpl.Features.ShowWatermark {
		doc.Watermark = &Watermark{Text: upperCase(issuer.WatermarkText), Angle: WatermarkAngle, Opacity: WatermarkOpacity}
	}
	return doc
}

func composeField(inv *invoicing.Invoice, fs fieldSpec, editing bool) Field {
	f := Field{Key: fs.key, Label: fs.label, Value: fs.value(inv)}
	if !editing || fs.key == "" {
		return f
	}
	f.Editable = true
	f.Control = fs.control
	f.Input = f.Value
	f.Change = &ChangeBinding{Kind: invoicing.ChangeSetField, Field: fs.key}
	if fs.control == ControlMonthYear {
		f.MonthYear = monthYearOptions(f.Value, inv.IssuedAt.Year())
	}
	return f
}

func composeRow(r invoicing.DisplayRow, currency string, rateWithCurrency, editing bool) Row {
	rate := r.Rate
	if rateWithCurrency {
		rate = currency + " " + r.Rate
	}
	row := Row{
		EmployeeID: r.EmployeeID,
		Position:   r.Position,
		Name:       Field{Key: invoicing.EmployeeFieldName, Value: r.Name},
		Rate:       Field{Key: invoicing.EmployeeFieldRate, Value: rate},
		Hours:      Field{Key: invoicing.EmployeeFieldHours, Value: r.Hours},
		Amount:     r.Amount,
	}
	if !editing {
		return row
	}
	bind := func(f *Field, control ControlKind, input string) {
		f.Editable = true
		f.Control = control
		f.Input = input
		f.Change = &ChangeBinding{Kind: invoicing.ChangeSetEmployeeField, Field: f.Key, EmployeeID: r.EmployeeID}
	}
	bind(&row.Name, ControlText, r.Name)
	bind(&row.Rate, ControlNumber, r.Rate)
	bind(&row.Hours, ControlNumber, r.Hours)
	row.Remove = &ChangeBinding{Kind: invoicing.ChangeRemoveEmployee, EmployeeID: r.EmployeeID}
	return row
}
