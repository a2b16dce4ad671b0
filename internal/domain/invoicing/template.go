package invoicing

// Layout identifies one of the fixed invoice arrangements.
type Layout string

const (
	LayoutStandard  Layout = "standard"
	LayoutModern    Layout = "modern"
	LayoutMinimal   Layout = "minimal"
	LayoutCorporate Layout = "corporate"
)

// IsValid checks if the Layout is a valid value
func (l Layout) IsValid() bool {
	switch l {
	case LayoutStandard, LayoutModern, LayoutMinimal, LayoutCorporate:
		return true
	}
	return false
}

// String returns the string representation of Layout
func (l Layout) String() string {
	return string(l)
}

// OrDefault returns l, or LayoutStandard when l is not a known layout.
func (l Layout) OrDefault() Layout {
	if l.IsValid() {
		return l
	}
	return LayoutStandard
}

// AllLayouts returns all valid Layout values
func AllLayouts() []Layout {
	return []Layout{LayoutStandard, LayoutModern, LayoutMinimal, LayoutCorporate}
}

// HeaderStyle controls how the company header is arranged.
type HeaderStyle string

const (
	HeaderStyleFull    HeaderStyle = "full"
	HeaderStyleCompact HeaderStyle = "compact"
	HeaderStyleSplit   HeaderStyle = "split"
)

// TableStyle controls how the line item table is drawn.
type TableStyle string

const (
	TableStyleStandard TableStyle = "standard"
	TableStyleStriped  TableStyle = "striped"
	TableStyleMinimal  TableStyle = "minimal"
)

// ColorScheme holds hex colors applied by a template.
type ColorScheme struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Text       string `json:"text"`
	Background string `json:"background"`
}

// FontPair holds CSS font-family values for headings and body text.
type FontPair struct {
	Header string `json:"header"`
	Body   string `json:"body"`
}

// TemplateFeatures are the per-template presentation switches.
type TemplateFeatures struct {
	ShowLogo      bool        `json:"show_logo"`
	ShowBorder    bool        `json:"show_border"`
	ShowWatermark bool        `json:"show_watermark"`
	HeaderStyle   HeaderStyle `json:"header_style"`
	TableStyle    TableStyle  `json:"table_style"`
}

// InvoiceTemplate is an immutable rendering profile from the catalog.
type InvoiceTemplate struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Layout      Layout           `json:"layout"`
	Colors      ColorScheme      `json:"colors"`
	Fonts       FontPair         `json:"fonts"`
	Features    TemplateFeatures `json:"features"`
}
