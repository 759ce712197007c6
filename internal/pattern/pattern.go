// Package pattern implements the phrase templates Biblio answers to and the
// token matcher that aligns them against a line of user input.
package pattern

import (
	"strings"
)

// WildcardMarker is the bare wildcard token accepted alongside [NAME] slots.
const WildcardMarker = "%"

// Element is one position of a Pattern: either a literal word or a wildcard slot.
type Element struct {
	Literal  string
	Wildcard bool
	Name     string // slot name for [NAME] wildcards, informational only
}

// Pattern is an ordered, immutable sequence of elements.
type Pattern []Element

// Binding holds the text captured by each wildcard, left to right.
type Binding []string

// Lit returns a literal element.
func Lit(word string) Element {
	return Element{Literal: word}
}

// Slot returns a named wildcard element.
func Slot(name string) Element {
	return Element{Wildcard: true, Name: name}
}

// Parse builds a Pattern from its textual form, e.g. "when was [PERSON] born".
// Tokens written as [NAME] or % are wildcards, every other token is a
// lowercased literal.
func Parse(s string) Pattern {
	fields := strings.Fields(s)
	p := make(Pattern, 0, len(fields))
	for _, f := range fields {
		switch {
		case f == WildcardMarker:
			p = append(p, Slot(""))
		case len(f) >= 2 && strings.HasPrefix(f, "[") && strings.HasSuffix(f, "]"):
			p = append(p, Slot(f[1:len(f)-1]))
		default:
			p = append(p, Lit(strings.ToLower(f)))
		}
	}
	return p
}

// Wildcards returns the number of wildcard slots in the pattern.
func (p Pattern) Wildcards() int {
	n := 0
	for _, e := range p {
		if e.Wildcard {
			n++
		}
	}
	return n
}

// String renders the pattern back into its textual form.
func (p Pattern) String() string {
	parts := make([]string, len(p))
	for i, e := range p {
		switch {
		case e.Wildcard && e.Name != "":
			parts[i] = "[" + e.Name + "]"
		case e.Wildcard:
			parts[i] = WildcardMarker
		default:
			parts[i] = e.Literal
		}
	}
	return strings.Join(parts, " ")
}

// Tokenize turns a raw input line into the token sequence matched against
// patterns: lowercased, trailing sentence punctuation dropped, whitespace split.
func Tokenize(line string) []string {
	line = strings.ToLower(strings.TrimSpace(line))
	line = strings.TrimRight(line, "?!.")
	return strings.Fields(line)
}
