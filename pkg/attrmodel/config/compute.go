package config

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/tendant/content-attrs/pkg/attrmodel"
)

// templateData is the value computed-attribute templates execute against.
type templateData struct {
	model *attrmodel.Model
}

// Attr resolves another attribute of the model being computed.
func (d templateData) Attr(name string) (any, error) {
	return d.model.Get(name)
}

// TemplateCompute compiles text into a compute function for attribute name.
// The template reads other attributes with {{.Attr "name"}}; a failed read
// fails the computation.
func TemplateCompute(name, text string) (attrmodel.ComputeFunc, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("computed attribute %s: %w", name, err)
	}

	return func(m *attrmodel.Model) (any, error) {
		var b strings.Builder
		if err := tmpl.Execute(&b, templateData{model: m}); err != nil {
			return nil, fmt.Errorf("computed attribute %s: %w", name, err)
		}
		return b.String(), nil
	}, nil
}
