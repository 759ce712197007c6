package pattern

import "strings"

// Match aligns pattern p against source in a single forward pass.
//
// Literals must equal source tokens verbatim. A wildcard opens an
// accumulator that absorbs source tokens until the next literal of the
// pattern is found, or until the source is exhausted when the wildcard is
// last. There is no backtracking: two adjacent wildcards collapse into the
// second one, and a wildcard stops at the first occurrence of the literal
// that follows it.
//
// The returned Binding has one entry per closed wildcard. ok is false when
// the pattern does not account for the whole source.
func Match(p Pattern, source []string) (Binding, bool) {
	var (
		pi, si       int
		bindings     = Binding{}
		acc          strings.Builder
		accumulating bool
	)

	closeSlot := func() {
		bindings = append(bindings, strings.TrimLeft(acc.String(), " "))
		accumulating = false
	}
	absorb := func(tok string) {
		if acc.Len() > 0 {
			acc.WriteByte(' ')
		}
		acc.WriteString(tok)
	}

	for {
		switch {
		case pi == len(p) && si == len(source):
			if accumulating {
				closeSlot()
			}
			return bindings, true

		case pi == len(p):
			if !accumulating {
				return nil, false
			}
			absorb(source[si])
			si++

		case p[pi].Wildcard:
			accumulating = true
			acc.Reset()
			pi++

		case si == len(source):
			return nil, false

		case p[pi].Literal == source[si]:
			if accumulating {
				closeSlot()
			}
			pi++
			si++

		default:
			if !accumulating {
				return nil, false
			}
			absorb(source[si])
			si++
		}
	}
}
