package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"
)

type BotConfig struct {
	Name            string `json:"name"`
	UserLabel       string `json:"user_label"`
	DispatchPolicy  string `json:"dispatch_policy"` // first-match or accumulate-all
	SummaryMaxChars int    `json:"summary_max_chars"`
	ResponsesFile   string `json:"responses_file"`  // empty: built-in table
	MoodWordsFile   string `json:"mood_words_file"` // empty: built-in lexicon
}

type WikipediaConfig struct {
	APIURL         string `json:"api_url"`
	UserAgent      string `json:"user_agent"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	MaxPageMB      int    `json:"max_page_mb"`
}

func (w WikipediaConfig) Timeout() time.Duration {
	return time.Duration(w.TimeoutSeconds) * time.Second
}

type WeatherConfig struct {
	BaseURL        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	Units          string `json:"units"` // metric or imperial
}

func (w WeatherConfig) Timeout() time.Duration {
	return time.Duration(w.TimeoutSeconds) * time.Second
}

// Imperial reports whether temperatures are shown in Fahrenheit
func (w WeatherConfig) Imperial() bool {
	return strings.EqualFold(w.Units, "imperial")
}

// PatternConfig is one entry of a pattern table override
type PatternConfig struct {
	Pattern string `json:"pattern"`
	Handler string `json:"handler"`
}

type Config struct {
	Bot       BotConfig       `json:"bot"`
	Wikipedia WikipediaConfig `json:"wikipedia"`
	Weather   WeatherConfig   `json:"weather"`
	Server    struct {
		Host      string `json:"host"`
		Port      int    `json:"port"`
		Subpath   string `json:"subpath"`
		JWTSecret string `json:"jwtSecret"`
	} `json:"server"`
	Log struct {
		Level  string `json:"level"`
		Pretty bool   `json:"pretty"`
	} `json:"log"`
	Patterns []PatternConfig `json:"patterns"` // replaces the built-in table when set
}

// Default returns the configuration used when no file is present
func Default() *Config {
	c := &Config{
		Bot: BotConfig{
			Name:            "Biblio",
			UserLabel:       "You",
			DispatchPolicy:  "first-match",
			SummaryMaxChars: 1000,
		},
		Wikipedia: WikipediaConfig{
			APIURL:         "https://en.wikipedia.org/w/api.php",
			UserAgent:      "biblio/1.0 (https://github.com/biblio-bot/biblio)",
			TimeoutSeconds: 10,
			MaxPageMB:      5,
		},
		Weather: WeatherConfig{
			BaseURL:        "https://wttr.in",
			TimeoutSeconds: 10,
			Units:          "metric",
		},
	}
	c.Server.Host = "127.0.0.1"
	c.Server.Port = 8080
	c.Log.Level = "warn"
	return c
}

// Validate checks values that would otherwise fail at first use
func (c *Config) Validate() error {
	var errs []error
	if c.Bot.SummaryMaxChars <= 0 {
		errs = append(errs, errors.New("bot.summary_max_chars must be positive"))
	}
	if c.Wikipedia.TimeoutSeconds < 0 || c.Weather.TimeoutSeconds < 0 {
		errs = append(errs, errors.New("timeouts must not be negative"))
	}
	switch strings.ToLower(c.Weather.Units) {
	case "", "metric", "imperial":
	default:
		errs = append(errs, fmt.Errorf("weather.units must be metric or imperial, got %q", c.Weather.Units))
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	for i, p := range c.Patterns {
		if strings.TrimSpace(p.Pattern) == "" || p.Handler == "" {
			errs = append(errs, fmt.Errorf("patterns[%d] needs both pattern and handler", i))
		}
	}
	return errors.Join(errs...)
}

var (
	once   sync.Once
	cfg    *Config
	cfgErr error
)

// LoadConfig reads config.json from disk (singleton). Values missing from
// the file keep their defaults; a missing file means all defaults.
func LoadConfig(path string) (*Config, error) {
	once.Do(func() {
		c := Default()
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			cfg = c
			return
		case err != nil:
			cfgErr = fmt.Errorf("failed to read config file: %w", err)
			return
		}
		if err := json.Unmarshal(raw, c); err != nil {
			cfgErr = fmt.Errorf("invalid config format: %w", err)
			return
		}
		if err := c.Validate(); err != nil {
			cfgErr = fmt.Errorf("invalid config: %w", err)
			return
		}
		cfg = c
	})
	return cfg, cfgErr
}

// GetConfig returns the loaded config (must call LoadConfig first)
func GetConfig() *Config {
	return cfg
}

// ResetConfigForTest resets the singleton state (for testing only)
func ResetConfigForTest() {
	once = sync.Once{}
	cfg = nil
	cfgErr = nil
}
