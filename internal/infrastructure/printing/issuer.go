package printing

import "strings"

// LogoURL is the remotely hosted company logo, the only external resource an
// exported document references.
const LogoURL = "https://cdn.builder.io/api/v1/image/assets%2F55b229a52c0444268b0b5f1318fee335%2F348c765c32b5495094a7b58c5d2b32be?format=png&width=800&background=transparent"

// Issuer is the company that issues invoices.
type Issuer struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Website       string `json:"website"`
	GST           string `json:"gst"`
	CIN           string `json:"cin"`
	LogoURL       string `json:"logo_url"`
	LogoAlt       string `json:"logo_alt"`
	WatermarkText string `json:"watermark_text"`
}

// DefaultIssuer returns the built-in company details.
func DefaultIssuer() Issuer {
	return Issuer{
		Name:          "KIZORA SOFTWARE PRIVATE LIMITED",
		Address:       "Plot No. 12 First Floor, Hill Top, Ambazari",
		City:          "Nagpur Maharashtra 440033, INDIA",
		Phone:         "+91 8080466754",
		Email:         "info@kizora.com",
		Website:       "www.kizora.com",
		GST:           "27AAECK4021C1Z3",
		CIN:           "U72300MH2011PTC219628",
		LogoURL:       LogoURL,
		LogoAlt:       "Kizora Software Private Limited",
		WatermarkText: "KIZORA",
	}
}

// WithDefaults fills empty fields from DefaultIssuer.
func (i Issuer) WithDefaults() Issuer {
	d := DefaultIssuer()
	fill := func(dst *string, src string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = src
		}
	}
	fill(&i.Name, d.Name)
	fill(&i.Address, d.Address)
	fill(&i.City, d.City)
	fill(&i.Phone, d.Phone)
	fill(&i.Email, d.Email)
	fill(&i.Website, d.Website)
	fill(&i.GST, d.GST)
	fill(&i.CIN, d.CIN)
	fill(&i.LogoURL, d.LogoURL)
	fill(&i.LogoAlt, d.LogoAlt)
	fill(&i.WatermarkText, d.WatermarkText)
	return i
}

// ShortName returns the first two words of the company name, used by the
// split and compact headers.
func (i Issuer) ShortName() string {
	words := strings.Fields(i.Name)
	if len(words) <= 2 {
		return i.Name
	}
	return strings.Join(words[:2], " ")
}

// Subtitle returns the company name after ShortName.
func (i Issuer) Subtitle() string {
	words := strings.Fields(i.Name)
	if len(words) <= 2 {
		return ""
	}
	return strings.Join(words[2:], " ")
}
