package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"biblio/internal/pattern"
	"biblio/internal/tools"
)

// Policy decides what happens once a pattern has matched.
type Policy int

const (
	// FirstMatch returns the first successful handler result.
	FirstMatch Policy = iota
	// AccumulateAll runs every matching handler and joins their output.
	AccumulateAll
)

func (p Policy) String() string {
	switch p {
	case FirstMatch:
		return "first-match"
	case AccumulateAll:
		return "accumulate-all"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy accepts the names printed by Policy.String. An empty name
// selects FirstMatch.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first-match", "first":
		return FirstMatch, nil
	case "accumulate-all", "accumulate", "all":
		return AccumulateAll, nil
	}
	return FirstMatch, fmt.Errorf("unknown dispatch policy %q", s)
}

// Kind classifies a dispatch outcome.
type Kind int

const (
	Unmatched Kind = iota
	Reply
	Terminate
)

func (k Kind) String() string {
	switch k {
	case Reply:
		return "reply"
	case Terminate:
		return "terminate"
	}
	return "unmatched"
}

// NoOutputReply is returned under AccumulateAll when patterns matched but
// no handler produced anything.
const NoOutputReply = "None."

// Outcome is the result of one dispatch.
type Outcome struct {
	Kind    Kind
	Text    string
	Handler string // last handler that contributed, if any
}

// Executor runs a named tool.
type Executor interface {
	Execute(ctx context.Context, name string, binding pattern.Binding) (*tools.Result, error)
}

// Dispatcher matches token lists against a table and runs the handlers.
type Dispatcher struct {
	table  Table
	exec   Executor
	policy Policy
}

// New creates a dispatcher. The table is not copied and must not be
// modified afterwards.
func New(table Table, exec Executor, policy Policy) *Dispatcher {
	return &Dispatcher{table: table, exec: exec, policy: policy}
}

// Table returns the active pattern table.
func (d *Dispatcher) Table() Table { return d.table }

// Policy returns the selection policy.
func (d *Dispatcher) Policy() Policy { return d.policy }

// Dispatch tries the table against tokens. A failing handler counts as a
// non-match and the scan continues; a handler asking to end the session
// stops it immediately.
func (d *Dispatcher) Dispatch(ctx context.Context, tokens []string) Outcome {
	var (
		matched int
		lines   []string
		last    string
	)

	for _, e := range d.table {
		binding, ok := pattern.Match(e.Pattern, tokens)
		if !ok {
			continue
		}
		matched++

		result, err := d.exec.Execute(ctx, e.Handler, binding)
		if err != nil {
			log.Debug().Str("component", "dispatch").Str("handler", e.Handler).
				Err(err).Msg("handler failed, trying next pattern")
			continue
		}

		last = e.Handler
		lines = append(lines, result.Lines...)

		if result.EndSession {
			return Outcome{Kind: Terminate, Text: strings.Join(lines, " "), Handler: e.Handler}
		}
		if d.policy == FirstMatch {
			return Outcome{Kind: Reply, Text: result.Text(), Handler: e.Handler}
		}
	}

	switch {
	case matched == 0:
		return Outcome{Kind: Unmatched}
	case d.policy == FirstMatch:
		// every matching handler failed
		return Outcome{Kind: Unmatched}
	case len(lines) == 0:
		return Outcome{Kind: Reply, Text: NoOutputReply, Handler: last}
	}
	return Outcome{Kind: Reply, Text: strings.Join(lines, " "), Handler: last}
}
