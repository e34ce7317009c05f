// Package render runs configuration fragments through Go's text/template
// engine before they are parsed, so fragments can interpolate values from a
// caller-supplied context:
//
//	host = "{{.hostname}}"
//
// It also expands search name patterns against per-extension data, turning a
// single "config.{{.Ext}}" pattern into one concrete pattern per registered
// codec extension.
package render

import (
	"bytes"
	"fmt"
	"text/template"
)

// Renderer renders fragment bytes against a fixed key-value context.
// Referencing a key absent from the context is an error, so typos in
// fragments fail loudly instead of producing empty output.
type Renderer struct {
	context map[string]string
}

// New creates a Renderer with the given context. A nil context is treated as
// empty.
func New(context map[string]string) *Renderer {
	if context == nil {
		context = map[string]string{}
	}

	return &Renderer{context: context}
}

// Render executes src as a template against the context. The name appears in
// template error messages.
func (r *Renderer) Render(name string, src []byte) ([]byte, error) {
	tpl, err := template.New(name).Option("missingkey=error").Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("parsing template %q: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, r.context); err != nil {
		return nil, fmt.Errorf("rendering %q: %w", name, err)
	}

	return buf.Bytes(), nil
}

// Expand renders a single pattern string against data. Patterns that contain
// no template actions pass through unchanged.
func Expand(pattern string, data any) (string, error) {
	tpl, err := template.New(pattern).Option("missingkey=error").Parse(pattern)
	if err != nil {
		return "", fmt.Errorf("parsing pattern %q: %w", pattern, err)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("expanding pattern %q: %w", pattern, err)
	}

	return buf.String(), nil
}
