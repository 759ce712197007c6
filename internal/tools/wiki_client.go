// internal/tools/wiki_client.go
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultWikiAPIURL is the MediaWiki action API Biblio reads from.
const DefaultWikiAPIURL = "https://en.wikipedia.org/w/api.php"

// WikiClient talks to the MediaWiki action API
type WikiClient struct {
	APIURL     string
	HTTPClient *http.Client
	userAgent  string
	maxSizeMB  int
}

// NewWikiClient creates a new encyclopedia client
func NewWikiClient(apiURL, userAgent string, timeout time.Duration, maxSizeMB int) *WikiClient {
	if apiURL == "" {
		apiURL = DefaultWikiAPIURL
	}
	if maxSizeMB <= 0 {
		maxSizeMB = 5
	}
	return &WikiClient{
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
		maxSizeMB: maxSizeMB,
	}
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

// PageHTML returns the rendered HTML of a page's lead section.
// The title is tried as typed first, then title-cased.
func (c *WikiClient) PageHTML(ctx context.Context, title string) (string, error) {
	var lastErr error
	for _, candidate := range titleCandidates(title) {
		html, err := c.pageHTML(ctx, candidate)
		if err == nil {
			return html, nil
		}
		lastErr = err
		if !isNotFound(err) {
			break
		}
	}
	return "", lastErr
}

func (c *WikiClient) pageHTML(ctx context.Context, title string) (string, error) {
	params := url.Values{}
	params.Set("action", "parse")
	params.Set("section", "0")
	params.Set("prop", "text")
	params.Set("redirects", "1")
	params.Set("page", title)

	var parsed struct {
		Parse *struct {
			Title string `json:"title"`
			Text  string `json:"text"`
		} `json:"parse"`
		Error *apiError `json:"error"`
	}
	if err := c.getJSON(ctx, params, &parsed); err != nil {
		return "", err
	}
	if parsed.Error != nil {
		if parsed.Error.Code == "missingtitle" || parsed.Error.Code == "invalidtitle" {
			return "", fmt.Errorf("page %q: %w", title, ErrNotFound)
		}
		return "", fmt.Errorf("page %q: %s: %w", title, parsed.Error.Info, ErrUpstreamUnavailable)
	}
	if parsed.Parse == nil {
		return "", fmt.Errorf("page %q: response has no parse section: %w", title, ErrUpstreamUnavailable)
	}
	return parsed.Parse.Text, nil
}

// Extract returns the plain-text introduction of a page
func (c *WikiClient) Extract(ctx context.Context, title string) (string, error) {
	var lastErr error
	for _, candidate := range titleCandidates(title) {
		text, err := c.extract(ctx, candidate)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !isNotFound(err) {
			break
		}
	}
	return "", lastErr
}

func (c *WikiClient) extract(ctx context.Context, title string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "extracts")
	params.Set("exintro", "1")
	params.Set("explaintext", "1")
	params.Set("redirects", "1")
	params.Set("titles", title)

	var parsed struct {
		Query *struct {
			Pages []struct {
				Title   string `json:"title"`
				Missing bool   `json:"missing"`
				Invalid bool   `json:"invalid"`
				Extract string `json:"extract"`
			} `json:"pages"`
		} `json:"query"`
		Error *apiError `json:"error"`
	}
	if err := c.getJSON(ctx, params, &parsed); err != nil {
		return "", err
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("extract %q: %s: %w", title, parsed.Error.Info, ErrUpstreamUnavailable)
	}
	if parsed.Query == nil || len(parsed.Query.Pages) == 0 {
		return "", fmt.Errorf("extract %q: %w", title, ErrNotFound)
	}
	page := parsed.Query.Pages[0]
	if page.Missing || page.Invalid {
		return "", fmt.Errorf("extract %q: %w", title, ErrNotFound)
	}
	return page.Extract, nil
}

// getJSON performs one API call and decodes the response into out
func (c *WikiClient) getJSON(ctx context.Context, params url.Values, out interface{}) error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid API URL: %w", err)
	}
	params.Set("format", "json")
	params.Set("formatversion", "2")
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	log.Debug().Str("component", "wiki").Str("action", params.Get("action")).Msg(u.String())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %v: %w", err, ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d: %w", resp.StatusCode, ErrUpstreamUnavailable)
	}

	maxBytes := int64(c.maxSizeMB * 1024 * 1024)
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes))
	if err != nil {
		return fmt.Errorf("failed to read response: %v: %w", err, ErrUpstreamUnavailable)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %v: %w", err, ErrUpstreamUnavailable)
	}
	return nil
}

// titleCandidates lists the spellings of a title worth asking for
func titleCandidates(title string) []string {
	title = strings.TrimSpace(title)
	titled := cases.Title(language.English).String(title)
	if titled == title {
		return []string{title}
	}
	return []string{title, titled}
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
