package invoicing

// DefaultTemplateID is selected when no usable preference is stored.
const DefaultTemplateID = "standard"

var brandColors = ColorScheme{
	Primary:    "#f97316",
	Secondary:  "#fed7aa",
	Text:       "#1f2937",
	Background: "#ffffff",
}

// catalog is ordered; the first entry is the default.
var catalog = []InvoiceTemplate{
	{
		ID:          "standard",
		Name:        "Standard Professional",
		Description: "Clean and professional layout with company branding",
		Layout:      LayoutStandard,
		Colors:      brandColors,
		Fonts:       FontPair{Header: "Arial, sans-serif", Body: "Arial, sans-serif"},
		Features: TemplateFeatures{
			ShowLogo:    true,
			ShowBorder:  true,
			HeaderStyle: HeaderStyleFull,
			TableStyle:  TableStyleStandard,
		},
	},
	{
		ID:          "modern",
		Name:        "Modern Gradient",
		Description: "Contemporary design with gradient accents and modern typography",
		Layout:      LayoutModern,
		Colors:      brandColors,
		Fonts:       FontPair{Header: "Helvetica, sans-serif", Body: "Helvetica, sans-serif"},
		Features: TemplateFeatures{
			ShowLogo:    true,
			HeaderStyle: HeaderStyleSplit,
			TableStyle:  TableStyleStriped,
		},
	},
	{
		ID:          "minimal",
		Name:        "Minimal Clean",
		Description: "Minimal design focusing on simplicity and readability",
		Layout:      LayoutMinimal,
		Colors:      brandColors,
		Fonts:       FontPair{Header: "Georgia, serif", Body: "Georgia, serif"},
		Features: TemplateFeatures{
			ShowLogo:    true,
			HeaderStyle: HeaderStyleCompact,
			TableStyle:  TableStyleMinimal,
		},
	},
	{
		ID:          "corporate",
		Name:        "Corporate Orange",
		Description: "Traditional corporate styling with professional orange theme",
		Layout:      LayoutCorporate,
		Colors:      brandColors,
		Fonts:       FontPair{Header: "Times New Roman, serif", Body: "Times New Roman, serif"},
		Features: TemplateFeatures{
			ShowLogo:      true,
			ShowBorder:    true,
			ShowWatermark: true,
			HeaderStyle:   HeaderStyleFull,
			TableStyle:    TableStyleStandard,
		},
	},
}

// Templates returns a copy of the catalog in display order.
func Templates() []InvoiceTemplate {
	out := make([]InvoiceTemplate, len(catalog))
	copy(out, catalog)
	return out
}

// LookupTemplate returns the catalog entry with the given id.
func LookupTemplate(id string) (InvoiceTemplate, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t, true
		}
	}
	return InvoiceTemplate{}, false
}

// DefaultTemplate returns the first catalog entry.
func DefaultTemplate() InvoiceTemplate {
	return catalog[0]
}

// ResolveTemplate returns the template for id, or the default for an
// unknown id.
func ResolveTemplate(id string) InvoiceTemplate {
	if t, ok := LookupTemplate(id); ok {
		return t
	}
	return DefaultTemplate()
}
