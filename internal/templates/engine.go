// Package templates renders the HTML-like labels of diagram nodes.
package templates

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"strings"
	"text/template"
)

//go:embed resources/*.tmpl
var resources embed.FS

// Names of the label templates.
const (
	ClassTemplate     = "class"
	InterfaceTemplate = "interface"
)

// ErrTemplateNotFound is the cause of a failure to render an unknown template.
var ErrTemplateNotFound = errors.New("template not found")

// Renderer renders a named template with the given context.
type Renderer interface {
	Render(name string, context any) (string, error)
}

// TemplateFailure is returned when a template cannot be rendered.
type TemplateFailure struct {
	Template string
	Cause    error
}

func (e *TemplateFailure) Error() string {
	return fmt.Sprintf("rendering template %q: %v", e.Template, e.Cause)
}

func (e *TemplateFailure) Unwrap() error {
	return e.Cause
}

// TemplateEngine renders the embedded label templates.
type TemplateEngine struct {
	templates *template.Template
}

// NewTemplateEngine parses the embedded templates.
func NewTemplateEngine() (*TemplateEngine, error) {
	tmpl, err := template.New("labels").Option("missingkey=error").ParseFS(resources, "resources/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &TemplateEngine{templates: tmpl}, nil
}

// MustNewTemplateEngine is like NewTemplateEngine but panics on error.
func MustNewTemplateEngine() *TemplateEngine {
	engine, err := NewTemplateEngine()
	if err != nil {
		panic(err)
	}
	return engine
}

// Render executes the named template. The result is trimmed of surrounding
// whitespace.
func (e *TemplateEngine) Render(name string, context any) (string, error) {
	tmpl := e.templates.Lookup(name)
	if tmpl == nil {
		return "", &TemplateFailure{Template: name, Cause: ErrTemplateNotFound}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, context); err != nil {
		return "", &TemplateFailure{Template: name, Cause: err}
	}
	return strings.TrimSpace(buf.String()), nil
}
