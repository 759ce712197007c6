package tools

import (
	"time"

	"biblio/internal/responses"
)

// Deps are the collaborators the built-in tools are wired to
type Deps struct {
	Infobox   InfoboxSource
	Weather   Forecaster
	Responses *responses.Table
	Picker    responses.Picker
	Now       func() time.Time
}

// NewDefaultRegistry registers every built-in tool
func NewDefaultRegistry(d Deps) (*Registry, error) {
	if d.Responses == nil {
		d.Responses = responses.Default()
	}
	if d.Picker == nil {
		d.Picker = responses.RandomPicker{}
	}

	all := NewFactTools(d.Infobox)
	all = append(all,
		NewCalculatorTool(),
		NewWeatherTool(d.Weather),
		NewClockTool(d.Now),
		NewJokeTool(d.Responses.Jokes, d.Picker),
		NewByeTool(d.Responses.Goodbye, d.Picker),
	)

	r := NewRegistry()
	for _, t := range all {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}
