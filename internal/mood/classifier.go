// Package mood classifies the sentiment of a chat line into a small set of
// moods used to pick a fallback reply.
package mood

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/coregx/ahocorasick"
	"github.com/orsinium-labs/stopwords"
)

// Mood is a sentiment category
type Mood string

const (
	Positive Mood = "positive"
	Negative Mood = "negative"
	Neutral  Mood = "neutral"
)

// Threshold is the polarity a line must exceed to count as non-neutral
const Threshold = 0.1

//go:embed mood_words.json
var defaultLexicon []byte

// Lexicon lists the words and phrases carrying each polarity
type Lexicon struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// LoadLexicon reads a lexicon from a JSON file
func LoadLexicon(path string) (Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Lexicon{}, fmt.Errorf("read mood words: %w", err)
	}
	var lex Lexicon
	if err := json.Unmarshal(data, &lex); err != nil {
		return Lexicon{}, fmt.Errorf("parse mood words %s: %w", path, err)
	}
	return lex, nil
}

// DefaultLexicon returns the built-in lexicon
func DefaultLexicon() Lexicon {
	var lex Lexicon
	if err := json.Unmarshal(defaultLexicon, &lex); err != nil {
		panic(fmt.Sprintf("embedded mood words: %v", err))
	}
	return lex
}

var negators = map[string]bool{
	"not": true, "no": true, "never": true, "nothing": true, "hardly": true,
	"don't": true, "doesn't": true, "didn't": true, "isn't": true, "aren't": true,
	"wasn't": true, "weren't": true, "can't": true, "cannot": true, "won't": true,
	"dont": true, "isnt": true, "cant": true,
}

// Classifier scores lines against a lexicon
type Classifier struct {
	ac       *ahocorasick.Automaton
	patterns []string
	weights  []float64
	stop     *stopwords.Stopwords
}

// New compiles a classifier for the lexicon
func New(lex Lexicon) (*Classifier, error) {
	c := &Classifier{stop: stopwords.MustGet("en")}

	index := make(map[string]int)
	add := func(words []string, weight float64) {
		for _, w := range words {
			key := normalize(w)
			if key == "" {
				continue
			}
			if i, ok := index[key]; ok {
				c.weights[i] += weight
				continue
			}
			index[key] = len(c.patterns)
			c.patterns = append(c.patterns, key)
			c.weights = append(c.weights, weight)
		}
	}
	add(lex.Positive, 1)
	add(lex.Negative, -1)

	if len(c.patterns) == 0 {
		return c, nil
	}

	automaton, err := ahocorasick.NewBuilder().
		AddStrings(c.patterns).
		SetMatchKind(ahocorasick.LeftmostLongest).
		SetPrefilter(true).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build mood automaton: %w", err)
	}
	c.ac = automaton
	return c, nil
}

var (
	defaultOnce       sync.Once
	defaultClassifier *Classifier
)

// Default returns a shared classifier over the built-in lexicon
func Default() *Classifier {
	defaultOnce.Do(func() {
		c, err := New(DefaultLexicon())
		if err != nil {
			panic(fmt.Sprintf("default mood classifier: %v", err))
		}
		defaultClassifier = c
	})
	return defaultClassifier
}

type hit struct {
	start, end int
	pattern    int
}

// Score returns the polarity of input in [-1, 1]
func (c *Classifier) Score(input string) float64 {
	text := normalize(input)
	if text == "" || c.ac == nil {
		return 0
	}
	tokens := strings.Fields(text)

	var hits []hit
	for _, m := range c.ac.FindAllOverlapping([]byte(text)) {
		if !onWordBoundary(text, m.Start, m.End) {
			continue
		}
		hits = append(hits, hit{start: m.Start, end: m.End, pattern: m.PatternID})
	}
	if len(hits) == 0 {
		return 0
	}

	// leftmost first, longer phrase wins a shared start
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].start != hits[j].start {
			return hits[i].start < hits[j].start
		}
		return hits[i].end > hits[j].end
	})

	var sum float64
	covered := -1
	for _, h := range hits {
		if h.start < covered {
			continue
		}
		covered = h.end

		w := c.weights[h.pattern]
		if negated(tokens, tokenIndex(text, h.start)) {
			w = -w / 2
		}
		sum += w
	}

	content := 0
	for _, t := range tokens {
		if !c.stop.Contains(t) {
			content++
		}
	}
	if content == 0 {
		content = 1
	}

	score := sum / float64(content)
	switch {
	case score > 1:
		return 1
	case score < -1:
		return -1
	}
	return score
}

// Classify maps the polarity of input onto a mood
func (c *Classifier) Classify(input string) Mood {
	score := c.Score(input)
	switch {
	case score > Threshold:
		return Positive
	case score < -Threshold:
		return Negative
	}
	return Neutral
}

// normalize lowercases and reduces everything but letters, digits and
// apostrophes to single spaces
func normalize(s string) string {
	var b strings.Builder
	space := true
	for _, r := range strings.ToLower(s) {
		if r == '’' || r == '‘' {
			r = '\''
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' {
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	return strings.TrimSpace(b.String())
}

func onWordBoundary(text string, start, end int) bool {
	if start > 0 && text[start-1] != ' ' {
		return false
	}
	return end >= len(text) || text[end] == ' '
}

// tokenIndex converts a byte offset at a token start to the token position
func tokenIndex(text string, offset int) int {
	return strings.Count(text[:offset], " ")
}

// negated reports whether one of the two tokens before i is a negator,
// as in "not good" or "not very good"
func negated(tokens []string, i int) bool {
	for j := i - 1; j >= 0 && j >= i-2; j-- {
		if negators[tokens[j]] {
			return true
		}
	}
	return false
}
