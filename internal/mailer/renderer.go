// Package mailer renders templated messages and delivers them over SMTP.
package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var titleCaser = cases.Title(language.English)

// Renderer renders message bodies from embedded templates.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer loads all embedded templates.
func NewRenderer() (*Renderer, error) {
	funcMap := template.FuncMap{
		"title": titleCaser.String,
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
	}

	r := &Renderer{templates: make(map[string]*template.Template)}

	names := []string{"activation"}
	for _, name := range names {
		filename := fmt.Sprintf("templates/%s.tmpl", name)

		content, err := templatesFS.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", filename, err)
		}

		tmpl, err := template.New(name).Funcs(funcMap).Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}

		r.templates[name] = tmpl
	}

	return r, nil
}

// ActivationData is the input for the activation template.
type ActivationData struct {
	Name string
	URL  string
}

// RenderActivation renders the account activation body. Pure rendering,
// no I/O beyond the embedded filesystem read at construction time.
func (r *Renderer) RenderActivation(name, url string) (string, error) {
	tmpl, ok := r.templates["activation"]
	if !ok {
		return "", fmt.Errorf("template not found: activation")
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ActivationData{Name: name, URL: url}); err != nil {
		return "", fmt.Errorf("execute template activation: %w", err)
	}

	return strings.TrimSpace(buf.String()), nil
}
