package printing

import (
	"bytes"
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateEngine executes the embedded export templates.
type TemplateEngine struct {
	templates *template.Template
}

// NewTemplateEngine parses the embedded templates.
func NewTemplateEngine() (*TemplateEngine, error) {
	tmpl, err := template.New("invoice").Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, NewRenderError(ErrCodeTemplateInvalid, "failed to parse templates", err)
	}
	return &TemplateEngine{templates: tmpl}, nil
}

// Execute renders the named template.
func (e *TemplateEngine) Execute(name string, data any) ([]byte, error) {
	t := e.templates.Lookup(name)
	if t == nil {
		return nil, NewRenderError(ErrCodeTemplateInvalid, "template not found: "+name, nil)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "failed to execute template", err)
	}
	return buf.Bytes(), nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"safeCSS": safeCSS,
		"tint":    tint,
		"add":     func(a, b int) int { return a + b },
	}
}

// safeCSS marks s as trusted CSS. Only catalog values reach it.
func safeCSS(s string) template.CSS {
	return template.CSS(s)
}

// tint appends a two digit hex alpha to a #rrggbb color.
func tint(color, alpha string) template.CSS {
	return template.CSS(color + alpha)
}
