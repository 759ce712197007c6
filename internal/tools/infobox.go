// internal/tools/infobox.go
package tools

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// InfoboxSource yields the cleaned text of a page's first infobox
type InfoboxSource interface {
	InfoboxText(ctx context.Context, title string) (string, error)
}

// InfoboxText fetches a page and returns the text of its first infobox
func (c *WikiClient) InfoboxText(ctx context.Context, title string) (string, error) {
	html, err := c.PageHTML(ctx, title)
	if err != nil {
		return "", err
	}
	return FirstInfoboxText(html)
}

// FirstInfoboxText extracts the first element carrying the "infobox" class
func FirstInfoboxText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %v: %w", err, ErrMalformedSource)
	}

	box := doc.Find(".infobox").First()
	if box.Length() == 0 {
		return "", fmt.Errorf("page has no infobox: %w", ErrNotFound)
	}

	// citation markers and embedded stylesheets would leak into field patterns
	box.Find("sup.reference, style").Remove()

	return cleanText(box.Text()), nil
}

var (
	multiSpace   = regexp.MustCompile(` +`)
	multiNewline = regexp.MustCompile(`\n+`)
)

// cleanText keeps printable ASCII and collapses runs of spaces and newlines
func cleanText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isPrintableASCII(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	out := multiSpace.ReplaceAllString(b.String(), " ")
	return multiNewline.ReplaceAllString(out, "\n")
}

func isPrintableASCII(r rune) bool {
	switch r {
	case '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return r >= 0x20 && r < 0x7f
}

// Field describes one fact mined from infobox text
type Field struct {
	Name    string
	Pattern *regexp.Regexp
	Group   string
	Message string
}

// Extract applies the field pattern to infobox text
func (f Field) Extract(text string) (string, error) {
	m := f.Pattern.FindStringSubmatch(text)
	if m == nil {
		return "", &FieldError{Field: f.Name, Message: f.Message}
	}
	idx := f.Pattern.SubexpIndex(f.Group)
	if idx < 0 || idx >= len(m) || m[idx] == "" {
		return "", &FieldError{Field: f.Name, Message: f.Message}
	}
	return m[idx], nil
}

// Infobox fields Biblio knows how to read
var (
	FieldPolarRadius = Field{
		Name:    "polar radius",
		Pattern: regexp.MustCompile(`(?is)(?:Polar radius.*?)(?: ?[\d]+ )?(?P<radius>[\d,.]+)(?:.*?)km`),
		Group:   "radius",
		Message: "page infobox has no polar radius information",
	}
	FieldBirthDate = Field{
		Name:    "birth date",
		Pattern: regexp.MustCompile(`(?is)(?:Born\D*)(?P<birth>\d{4}-\d{2}-\d{2})`),
		Group:   "birth",
		Message: "page infobox has no birth date in YYYY-MM-DD form",
	}
	FieldDecisionDate = Field{
		Name:    "decision date",
		Pattern: regexp.MustCompile(`(?is)Decided(\s+)(?P<ddate>[a-z]+\s[\d]{1,2},\s[\d]{4})`),
		Group:   "ddate",
		Message: "page infobox has no decision date in Month DD, YYYY form",
	}
	FieldHexTriplet = Field{
		Name:    "hex triplet",
		Pattern: regexp.MustCompile(`(?is)(?P<color>#\w{6})`),
		Group:   "color",
		Message: "page infobox has no hex triplet in #xxxxxx form",
	}
	FieldRGB = Field{
		Name:    "rgb value",
		Pattern: regexp.MustCompile(`(?is)\(r, g, b\)\n(?P<RGB>\([\d]+, [\d]+, [\d]+\))`),
		Group:   "RGB",
		Message: "page infobox has no (r, g, b) triple",
	}
)
