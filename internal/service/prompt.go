package service

import (
	"bytes"
	"fmt"
	"text/template"
)

// RenderPrompt executes a prompt template against its variables. Templates
// use conditional blocks to inject clauses only when a flag is set, so the
// same template serves every profile permutation.
func RenderPrompt(name, tmpl string, data interface{}) (string, error) {
	t, err := template.New(name).Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse prompt template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt template %s: %w", name, err)
	}

	return buf.String(), nil
}
