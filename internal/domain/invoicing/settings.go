package invoicing

// SelectedTemplateKey is the settings key holding the selected template id.
const SelectedTemplateKey = "selected_template_id"

// ParseTemplatePreference resolves a stored value. Empty, corrupt or unknown
// values select the default template.
func ParseTemplatePreference(stored string) InvoiceTemplate {
	return ResolveTemplate(stored)
}
