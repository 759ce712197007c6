package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wttrPayload = `{
  "current_condition": [{"temp_C": "12", "temp_F": "54", "weatherDesc": [{"value": "Partly cloudy"}]}],
  "weather": [
    {"date": "2024-05-06", "maxtempC": "15", "mintempC": "8", "maxtempF": "59", "mintempF": "46",
     "hourly": [{"weatherDesc": [{"value": "Mist"}]}, {"weatherDesc": [{"value": "Sunny "}]}, {"weatherDesc": [{"value": "Clear"}]}]},
    {"date": "2024-05-07", "maxtempC": "17", "mintempC": "9", "maxtempF": "63", "mintempF": "48",
     "hourly": [{"weatherDesc": [{"value": "Light rain"}]}]}
  ]
}`

func TestWeatherClient_Forecast(t *testing.T) {
	var gotPath, gotFormat string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotFormat = r.URL.Query().Get("format")
		w.Write([]byte(wttrPayload))
	}))
	defer srv.Close()

	c := NewWeatherClient(srv.URL, "biblio-test", 5*time.Second, false)
	f, err := c.Forecast(context.Background(), "new york")
	require.NoError(t, err)

	assert.Equal(t, "/new york", gotPath)
	assert.Equal(t, "j1", gotFormat)
	assert.Equal(t, "12", f.Current)
	require.Len(t, f.Days, 2)
	assert.Equal(t, "Sunny", f.Days[0].Condition)

	want := "Current temperature in new york: 12°C\n" +
		"Monday: Low of 8°C, High of 15°C - Sunny\n" +
		"Tuesday: Low of 9°C, High of 17°C - Light rain"
	assert.Equal(t, want, f.String())
}

func TestWeatherClient_Imperial(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(wttrPayload))
	}))
	defer srv.Close()

	c := NewWeatherClient(srv.URL, "", 5*time.Second, true)
	f, err := c.Forecast(context.Background(), "Boston")
	require.NoError(t, err)
	assert.Equal(t, "54", f.Current)
	assert.Equal(t, "°F", f.Unit)
	assert.Equal(t, "46", f.Days[0].Low)
}

func TestWeatherClient_NoCurrentCondition(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"weather": []}`))
	}))
	defer srv.Close()

	f, err := NewWeatherClient(srv.URL, "", time.Second, false).Forecast(context.Background(), "Oslo")
	require.NoError(t, err)
	assert.Equal(t, "Current temperature in Oslo: N/A°C", f.String())
}

func TestWeatherClient_Errors(t *testing.T) {
	notFound := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Unknown location", http.StatusNotFound)
	}))
	defer notFound.Close()

	_, err := NewWeatherClient(notFound.URL, "", time.Second, false).Forecast(context.Background(), "atlantis")
	assert.ErrorIs(t, err, ErrNotFound)

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer broken.Close()

	_, err = NewWeatherClient(broken.URL, "", time.Second, false).Forecast(context.Background(), "Paris")
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}
