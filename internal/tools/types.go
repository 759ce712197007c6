// internal/tools/types.go
package tools

import (
	"context"
	"strings"
	"time"

	"biblio/internal/pattern"
)

// Tool is the handler behind a pattern table entry.
type Tool interface {
	// Name returns the unique identifier the pattern table refers to
	Name() string

	// Description returns a human-readable description of what the tool does
	Description() string

	// Execute turns the wildcard binding of a matched pattern into a result.
	// Failures wrap one of the sentinel errors in errors.go.
	Execute(ctx context.Context, binding pattern.Binding) (*Result, error)
}

// Result is what a tool hands back to the dispatcher.
type Result struct {
	Lines      []string      `json:"lines"`
	EndSession bool          `json:"end_session,omitempty"`
	Duration   time.Duration `json:"duration"`
}

// Text joins the result lines into a single reply.
func (r *Result) Text() string {
	if r == nil {
		return ""
	}
	return strings.Join(r.Lines, " ")
}

// Reply is a convenience constructor for a plain text result.
func Reply(lines ...string) *Result {
	return &Result{Lines: lines}
}

// Tool names, as referenced by the pattern table
const (
	ToolNameBirthDate    = "birth_date"
	ToolNamePolarRadius  = "polar_radius"
	ToolNameDecisionDate = "decision_date"
	ToolNameHexTriplet   = "hex_triplet"
	ToolNameRGBValue     = "rgb_value"
	ToolNameCalculate    = "calculate"
	ToolNameWeather      = "weather"
	ToolNameTime         = "time"
	ToolNameJoke         = "joke"
	ToolNameBye          = "bye"
)
