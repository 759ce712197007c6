// Package dispatch holds the pattern table and runs user input against it.
package dispatch

import (
	"errors"
	"fmt"
	"strings"

	"biblio/internal/pattern"
	"biblio/internal/tools"
)

// Entry pairs a pattern with the name of the tool that answers it.
type Entry struct {
	Pattern pattern.Pattern
	Handler string
}

// Table is tried in declared order; earlier entries win.
type Table []Entry

// NewEntry parses a textual pattern into an entry.
func NewEntry(text, handler string) Entry {
	return Entry{Pattern: pattern.Parse(text), Handler: handler}
}

// DefaultTable returns the built-in question templates.
func DefaultTable() Table {
	return Table{
		NewEntry("when was [PERSON] born", tools.ToolNameBirthDate),
		NewEntry("what is the polar radius of [PLANET]", tools.ToolNamePolarRadius),
		NewEntry("what is the decision date of case [CASE]", tools.ToolNameDecisionDate),
		NewEntry("what is the hex triplet of [COLOR]", tools.ToolNameHexTriplet),
		NewEntry("what is the rgb value of [COLOR]", tools.ToolNameRGBValue),
		NewEntry("calculate [EXPRESSION]", tools.ToolNameCalculate),
		NewEntry("what is the weather in [CITY]", tools.ToolNameWeather),
		NewEntry("what time is it", tools.ToolNameTime),
		NewEntry("tell me a joke", tools.ToolNameJoke),
		NewEntry("% bye", tools.ToolNameBye),
	}
}

// ToolLookup finds tools by name.
type ToolLookup interface {
	Get(name string) (tools.Tool, error)
}

// Resolve checks that every entry names a known tool and has a usable
// pattern, reporting all problems at once.
func (t Table) Resolve(lookup ToolLookup) error {
	var errs []error
	for i, e := range t {
		if len(e.Pattern) == 0 {
			errs = append(errs, fmt.Errorf("entry %d: empty pattern", i))
		}
		if _, err := lookup.Get(e.Handler); err != nil {
			errs = append(errs, fmt.Errorf("entry %d (%s): %w", i, e.Pattern, err))
		}
	}
	return errors.Join(errs...)
}

// String renders the table one entry per line.
func (t Table) String() string {
	var b strings.Builder
	for _, e := range t {
		fmt.Fprintf(&b, "%-45s -> %s\n", e.Pattern, e.Handler)
	}
	return b.String()
}
