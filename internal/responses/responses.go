// Package responses holds the canned reply tables Biblio picks from:
// greetings, goodbyes, jokes, mood replies and exact-phrase answers.
package responses

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
)

//go:embed responses.json
var defaultResponses []byte

// List is a set of interchangeable replies. In JSON it may be written as a
// single string or as an array of strings.
type List []string

// UnmarshalJSON accepts both "text" and ["text", ...].
func (l *List) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*l = List{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("expected string or list of strings: %w", err)
	}
	*l = many
	return nil
}

// Table is the full set of canned replies. It is read-only after loading.
type Table struct {
	Greetings List            `json:"greetings"`
	Goodbye   List            `json:"goodbye"`
	Jokes     List            `json:"jokes"`
	Fallback  List            `json:"fallback"`
	Mood      map[string]List `json:"mood"`
	Canned    map[string]List `json:"canned"`
}

// Default returns the table shipped with the binary.
func Default() *Table {
	t, err := Parse(defaultResponses)
	if err != nil {
		panic(fmt.Sprintf("embedded responses.json: %v", err))
	}
	return t
}

// Load reads a response table from a JSON file.
func Load(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read responses file: %w", err)
	}
	t, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid responses file %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a response table and normalises its canned keys.
func Parse(raw []byte) (*Table, error) {
	var t Table
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, err
	}
	canned := make(map[string]List, len(t.Canned))
	for k, v := range t.Canned {
		canned[normalizeKey(k)] = v
	}
	t.Canned = canned
	if t.Mood == nil {
		t.Mood = map[string]List{}
	}
	return &t, nil
}

// CannedReply returns the replies registered for an exact phrase, if any.
func (t *Table) CannedReply(input string) (List, bool) {
	l, ok := t.Canned[normalizeKey(input)]
	return l, ok && len(l) > 0
}

// MoodReplies returns the replies for a mood, falling back to the generic
// list when the mood has none configured.
func (t *Table) MoodReplies(mood string) List {
	if l := t.Mood[mood]; len(l) > 0 {
		return l
	}
	return t.Fallback
}

func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimRight(s, "?!.")
	return strings.Join(strings.Fields(s), " ")
}

// Picker selects one reply out of a list.
type Picker interface {
	Pick(options []string) string
}

// PickerFunc adapts a function to the Picker interface.
type PickerFunc func(options []string) string

func (f PickerFunc) Pick(options []string) string { return f(options) }

// RandomPicker picks uniformly at random.
type RandomPicker struct{}

// Pick returns a random element, or "" for an empty list.
func (RandomPicker) Pick(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[rand.IntN(len(options))]
}

// FirstPicker always returns the first option. Useful for deterministic output.
var FirstPicker = PickerFunc(func(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[0]
})
