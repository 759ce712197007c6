// internal/tools/weather_client.go
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultWeatherURL is a wttr.in compatible endpoint.
const DefaultWeatherURL = "https://wttr.in"

// WeatherClient fetches current conditions and a short forecast
type WeatherClient struct {
	BaseURL    string
	HTTPClient *http.Client
	Imperial   bool
	userAgent  string
}

// NewWeatherClient creates a new weather client
func NewWeatherClient(baseURL, userAgent string, timeout time.Duration, imperial bool) *WeatherClient {
	if baseURL == "" {
		baseURL = DefaultWeatherURL
	}
	return &WeatherClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		Imperial:  imperial,
		userAgent: userAgent,
	}
}

// DayForecast is one day of the forecast
type DayForecast struct {
	Date      time.Time
	Low       string
	High      string
	Condition string
}

// Forecast is the weather for one place
type Forecast struct {
	City    string
	Current string
	Unit    string
	Days    []DayForecast
}

type wttrDesc []struct {
	Value string `json:"value"`
}

// wttrResponse mirrors the parts of the ?format=j1 payload we read
type wttrResponse struct {
	CurrentCondition []struct {
		TempC       string   `json:"temp_C"`
		TempF       string   `json:"temp_F"`
		WeatherDesc wttrDesc `json:"weatherDesc"`
	} `json:"current_condition"`
	Weather []struct {
		Date     string `json:"date"`
		MaxTempC string `json:"maxtempC"`
		MinTempC string `json:"mintempC"`
		MaxTempF string `json:"maxtempF"`
		MinTempF string `json:"mintempF"`
		Hourly   []struct {
			WeatherDesc wttrDesc `json:"weatherDesc"`
		} `json:"hourly"`
	} `json:"weather"`
}

// Forecast looks up the weather for a city
func (c *WeatherClient) Forecast(ctx context.Context, city string) (*Forecast, error) {
	u, err := url.Parse(c.BaseURL + "/" + url.PathEscape(city))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("format", "j1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %v: %w", err, ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("unknown location %q: %w", city, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("weather service returned status %d: %w", resp.StatusCode, ErrUpstreamUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v: %w", err, ErrUpstreamUnavailable)
	}

	var raw wttrResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse response: %v: %w", err, ErrUpstreamUnavailable)
	}

	return c.convert(city, &raw), nil
}

func (c *WeatherClient) convert(city string, raw *wttrResponse) *Forecast {
	f := &Forecast{City: city, Current: "N/A", Unit: "°C"}
	if c.Imperial {
		f.Unit = "°F"
	}

	if len(raw.CurrentCondition) > 0 {
		cur := raw.CurrentCondition[0]
		temp := cur.TempC
		if c.Imperial {
			temp = cur.TempF
		}
		if temp != "" {
			f.Current = temp
		}
	}

	for _, w := range raw.Weather {
		date, err := time.Parse("2006-01-02", w.Date)
		if err != nil {
			continue
		}
		day := DayForecast{Date: date, Low: w.MinTempC, High: w.MaxTempC}
		if c.Imperial {
			day.Low, day.High = w.MinTempF, w.MaxTempF
		}
		if n := len(w.Hourly); n > 0 {
			// midday reading describes the day best
			if desc := w.Hourly[n/2].WeatherDesc; len(desc) > 0 {
				day.Condition = strings.TrimSpace(desc[0].Value)
			}
		}
		f.Days = append(f.Days, day)
	}
	return f
}

// String renders the forecast as the multi-line reply shown to the user
func (f *Forecast) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Current temperature in %s: %s%s", f.City, f.Current, f.Unit)
	for _, d := range f.Days {
		fmt.Fprintf(&b, "\n%s: Low of %s%s, High of %s%s - %s",
			d.Date.Format("Monday"), d.Low, f.Unit, d.High, f.Unit, d.Condition)
	}
	return b.String()
}
