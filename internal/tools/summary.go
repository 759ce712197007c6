// internal/tools/summary.go
package tools

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/rs/zerolog/log"
)

// DefaultSummaryMaxChars bounds the free-text summary shown for "search for".
const DefaultSummaryMaxChars = 1000

// SummarySource produces a bounded free-text summary of a topic
type SummarySource interface {
	Summary(ctx context.Context, topic string, maxChars int) (string, error)
}

// Summary returns the page introduction for topic, cut on sentence
// boundaries to at most maxChars characters. Pages whose extract comes
// back empty fall back to a readability pass over the lead section.
func (c *WikiClient) Summary(ctx context.Context, topic string, maxChars int) (string, error) {
	if maxChars <= 0 {
		maxChars = DefaultSummaryMaxChars
	}

	text, err := c.Extract(ctx, topic)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		log.Debug().Str("component", "wiki").Str("topic", topic).Msg("empty extract, reading lead section")
		text, err = c.leadText(ctx, topic)
		if err != nil {
			return "", err
		}
	}

	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return "", fmt.Errorf("summary %q: %w", topic, ErrNotFound)
	}
	return TruncateSentences(text, maxChars), nil
}

// leadText runs readability over the lead section with its infobox and
// tables stripped out
func (c *WikiClient) leadText(ctx context.Context, title string) (string, error) {
	html, err := c.PageHTML(ctx, title)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %v: %w", err, ErrMalformedSource)
	}
	doc.Find(".infobox, table, sup.reference, .mw-editsection, .hatnote, style").Remove()
	cleaned, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("failed to render HTML: %v: %w", err, ErrMalformedSource)
	}

	pageURL, err := url.Parse(c.APIURL)
	if err != nil {
		return "", fmt.Errorf("invalid API URL: %w", err)
	}
	pageURL.Path = "/wiki/" + strings.ReplaceAll(title, " ", "_")
	pageURL.RawQuery = ""

	article, err := readability.FromReader(strings.NewReader(cleaned), pageURL)
	if err != nil {
		return "", fmt.Errorf("readability: %v: %w", err, ErrMalformedSource)
	}
	return article.TextContent, nil
}

// TruncateSentences keeps whole sentences while the text stays within
// maxChars characters. A first sentence that is already too long is cut
// hard and marked with an ellipsis.
func TruncateSentences(text string, maxChars int) string {
	if utf8.RuneCountInString(text) <= maxChars {
		return text
	}

	var (
		b     strings.Builder
		count int
	)
	for _, s := range SplitSentences(text) {
		n := utf8.RuneCountInString(s)
		if count > 0 {
			n++ // joining space
		}
		if count+n > maxChars {
			break
		}
		if count > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s)
		count += n
	}
	if b.Len() > 0 {
		return b.String()
	}

	runes := []rune(text)
	cut := maxChars - 3
	if cut < 0 {
		cut = 0
	}
	return strings.TrimRightFunc(string(runes[:cut]), unicode.IsSpace) + "..."
}

// abbreviations that end in a period without ending a sentence
var abbreviations = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "dr": true, "prof": true, "sr": true, "jr": true,
	"st": true, "mt": true, "vs": true, "v": true, "etc": true, "e.g": true, "i.e": true,
	"c": true, "ca": true, "approx": true, "no": true, "inc": true, "ltd": true, "co": true,
}

// SplitSentences splits running text after '.', '!' or '?' followed by
// whitespace, leaving initials and common abbreviations intact.
func SplitSentences(text string) []string {
	var (
		sentences []string
		start     int
	)
	words := strings.Fields(text)
	for i, w := range words {
		last, _ := utf8.DecodeLastRuneInString(w)
		if last != '.' && last != '!' && last != '?' {
			continue
		}
		if last == '.' && i+1 < len(words) {
			stem := strings.ToLower(strings.TrimRight(w, "."))
			stem = strings.TrimLeft(stem, "(\"'")
			if abbreviations[stem] || utf8.RuneCountInString(stem) == 1 {
				continue
			}
			next, _ := utf8.DecodeRuneInString(words[i+1])
			if unicode.IsLower(next) {
				continue
			}
		}
		sentences = append(sentences, strings.Join(words[start:i+1], " "))
		start = i + 1
	}
	if start < len(words) {
		sentences = append(sentences, strings.Join(words[start:], " "))
	}
	return sentences
}
