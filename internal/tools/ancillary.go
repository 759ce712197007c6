// internal/tools/ancillary.go
package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"biblio/internal/pattern"
	"biblio/internal/responses"
)

// ClockTool reports the local date and time
type ClockTool struct {
	now func() time.Time
}

// NewClockTool creates the clock tool; a nil now uses time.Now
func NewClockTool(now func() time.Time) *ClockTool {
	if now == nil {
		now = time.Now
	}
	return &ClockTool{now: now}
}

func (t *ClockTool) Name() string        { return ToolNameTime }
func (t *ClockTool) Description() string { return "Current local date and time" }

func (t *ClockTool) Execute(ctx context.Context, binding pattern.Binding) (*Result, error) {
	return Reply(t.now().Format("The current date and time is 2006-01-02 15:04:05")), nil
}

// Forecaster is the weather lookup the weather tool depends on
type Forecaster interface {
	Forecast(ctx context.Context, city string) (*Forecast, error)
}

// WeatherTool reports current weather and a short forecast for a city
type WeatherTool struct {
	client Forecaster
}

// NewWeatherTool creates the weather tool
func NewWeatherTool(client Forecaster) *WeatherTool {
	return &WeatherTool{client: client}
}

func (t *WeatherTool) Name() string        { return ToolNameWeather }
func (t *WeatherTool) Description() string { return "Current temperature and forecast for a city" }

// Execute renders lookup failures as the reply instead of failing, so the
// user learns the weather service is the problem rather than the question
func (t *WeatherTool) Execute(ctx context.Context, binding pattern.Binding) (*Result, error) {
	city := strings.TrimSpace(strings.Join(binding, " "))
	if city == "" {
		return Reply("Which city would you like the weather for?"), nil
	}

	forecast, err := t.client.Forecast(ctx, city)
	if err != nil {
		log.Warn().Str("component", "weather").Str("city", city).Err(err).Msg("lookup failed")
		if errors.Is(err, ErrNotFound) {
			return Reply(fmt.Sprintf("Error retrieving weather: I don't know a place called %s.", city)), nil
		}
		return Reply("Error retrieving weather: the weather service is unavailable right now."), nil
	}
	return Reply(forecast.String()), nil
}

// PickTool answers with a random entry of a response list
type PickTool struct {
	name        string
	description string
	options     []string
	picker      responses.Picker
	endSession  bool
}

// NewJokeTool tells one of the configured jokes
func NewJokeTool(jokes []string, picker responses.Picker) *PickTool {
	return &PickTool{
		name:        ToolNameJoke,
		description: "Tell a joke",
		options:     jokes,
		picker:      picker,
	}
}

// NewByeTool says goodbye and ends the session
func NewByeTool(goodbyes []string, picker responses.Picker) *PickTool {
	return &PickTool{
		name:        ToolNameBye,
		description: "Say goodbye and end the session",
		options:     goodbyes,
		picker:      picker,
		endSession:  true,
	}
}

func (t *PickTool) Name() string        { return t.name }
func (t *PickTool) Description() string { return t.description }

func (t *PickTool) Execute(ctx context.Context, binding pattern.Binding) (*Result, error) {
	text := t.picker.Pick(t.options)
	if text == "" && !t.endSession {
		return nil, fmt.Errorf("%s: no responses configured: %w", t.name, ErrNotFound)
	}
	r := &Result{EndSession: t.endSession}
	if text != "" {
		r.Lines = []string{text}
	}
	return r, nil
}
