// internal/tools/facts.go
package tools

import (
	"context"
	"fmt"
	"strings"

	"biblio/internal/pattern"
)

// FactTool answers a question by reading one field out of a page infobox
type FactTool struct {
	name        string
	description string
	field       Field
	source      InfoboxSource
}

// NewFactTool creates a tool reading field from the infobox of the page
// named by the pattern binding
func NewFactTool(name, description string, field Field, source InfoboxSource) *FactTool {
	return &FactTool{
		name:        name,
		description: description,
		field:       field,
		source:      source,
	}
}

func (t *FactTool) Name() string        { return t.name }
func (t *FactTool) Description() string { return t.description }

// Execute looks up the page and extracts the field. All wildcards of the
// binding together name the page.
func (t *FactTool) Execute(ctx context.Context, binding pattern.Binding) (*Result, error) {
	title := strings.TrimSpace(strings.Join(binding, " "))
	if title == "" {
		return nil, fmt.Errorf("%s: empty page title: %w", t.name, ErrNotFound)
	}

	text, err := t.source.InfoboxText(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("%s for %q: %w", t.name, title, err)
	}

	value, err := t.field.Extract(text)
	if err != nil {
		return nil, fmt.Errorf("%s for %q: %w", t.name, title, err)
	}
	return Reply(value), nil
}

// NewFactTools builds the five infobox tools over one source
func NewFactTools(source InfoboxSource) []Tool {
	return []Tool{
		NewFactTool(ToolNameBirthDate, "Birth date of a person (YYYY-MM-DD)", FieldBirthDate, source),
		NewFactTool(ToolNamePolarRadius, "Polar radius of a planet in km", FieldPolarRadius, source),
		NewFactTool(ToolNameDecisionDate, "Decision date of a court case", FieldDecisionDate, source),
		NewFactTool(ToolNameHexTriplet, "Hex triplet of a colour", FieldHexTriplet, source),
		NewFactTool(ToolNameRGBValue, "(R, G, B) value of a colour", FieldRGB, source),
	}
}
