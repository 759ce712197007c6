// internal/chat/responder.go
package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"biblio/internal/dispatch"
	"biblio/internal/mood"
	"biblio/internal/pattern"
	"biblio/internal/responses"
	"biblio/internal/tools"
)

// Fixed replies
const (
	SearchPrompt      = "Please specify what you want to search for."
	SearchNotFound    = "Sorry, I couldn't find any information on that topic."
	SearchUnavailable = "Sorry, I can't reach the encyclopedia right now."
	NoReply           = "I don't understand."
)

var (
	terminationPhrases = map[string]bool{"quit": true, "exit": true, "bye": true}
	greetingWords      = map[string]bool{"hello": true, "hi": true, "hey": true}
)

// IsTermination reports whether a line ends the session on its own
func IsTermination(line string) bool {
	return terminationPhrases[strings.Join(pattern.Tokenize(line), " ")]
}

// Dispatcher runs tokenized input against the pattern table
type Dispatcher interface {
	Dispatch(ctx context.Context, tokens []string) dispatch.Outcome
}

// MoodClassifier labels the sentiment of a line
type MoodClassifier interface {
	Classify(input string) mood.Mood
}

// Options wires a Responder to its collaborators. Responses, Mood and
// Picker default to the built-in table, lexicon and a random picker.
type Options struct {
	Dispatcher      Dispatcher
	Summaries       tools.SummarySource
	Mood            MoodClassifier
	Responses       *responses.Table
	Picker          responses.Picker
	SummaryMaxChars int
}

// Responder turns one line of input into one reply. It keeps no state
// between turns and is safe for concurrent use when its collaborators are.
type Responder struct {
	dispatcher      Dispatcher
	summaries       tools.SummarySource
	mood            MoodClassifier
	table           *responses.Table
	picker          responses.Picker
	summaryMaxChars int
}

// NewResponder creates a responder
func NewResponder(opts Options) *Responder {
	r := &Responder{
		dispatcher:      opts.Dispatcher,
		summaries:       opts.Summaries,
		mood:            opts.Mood,
		table:           opts.Responses,
		picker:          opts.Picker,
		summaryMaxChars: opts.SummaryMaxChars,
	}
	if r.table == nil {
		r.table = responses.Default()
	}
	if r.mood == nil {
		r.mood = mood.Default()
	}
	if r.picker == nil {
		r.picker = responses.RandomPicker{}
	}
	if r.summaryMaxChars <= 0 {
		r.summaryMaxChars = tools.DefaultSummaryMaxChars
	}
	return r
}

// Respond selects the reply for a line of input
func (r *Responder) Respond(ctx context.Context, line string) Reply {
	reply := r.respond(ctx, line)
	reply.Turn = uuid.NewString()

	log.Debug().Str("component", "chat").Str("turn", reply.Turn).
		Str("state", reply.State.String()).Str("handler", reply.Handler).
		Msg("turn complete")
	return reply
}

func (r *Responder) respond(ctx context.Context, line string) Reply {
	tokens := pattern.Tokenize(line)

	switch {
	case IsTermination(line):
		return Reply{State: Exit, Text: r.pick(r.table.Goodbye)}
	case len(tokens) > 0 && greetingWords[strings.TrimRight(tokens[0], ",.!?;:")]:
		return Reply{State: Greeting, Text: r.pick(r.table.Greetings)}
	case len(tokens) >= 2 && tokens[0] == "search" && tokens[1] == "for":
		return r.search(ctx, line)
	}

	out := r.dispatcher.Dispatch(ctx, tokens)
	switch out.Kind {
	case dispatch.Terminate:
		text := out.Text
		if text == "" {
			text = r.pick(r.table.Goodbye)
		}
		return Reply{State: Exit, Text: text, Handler: out.Handler}
	case dispatch.Reply:
		return Reply{State: Dispatched, Text: out.Text, Handler: out.Handler}
	}
	return r.moodFallback(line)
}

// search answers "search for <topic>" with an encyclopedia summary
func (r *Responder) search(ctx context.Context, line string) Reply {
	words := strings.Fields(strings.TrimRight(strings.TrimSpace(line), "?!."))
	topic := ""
	if len(words) > 2 {
		topic = strings.Join(words[2:], " ")
	}
	if topic == "" {
		return Reply{State: SearchFallback, Text: SearchPrompt}
	}
	if r.summaries == nil {
		return Reply{State: SearchFallback, Text: SearchUnavailable}
	}

	summary, err := r.summaries.Summary(ctx, topic, r.summaryMaxChars)
	switch {
	case errors.Is(err, tools.ErrNotFound):
		return Reply{State: SearchFallback, Text: SearchNotFound}
	case err != nil:
		log.Warn().Str("component", "chat").Str("topic", topic).Err(err).Msg("summary lookup failed")
		return Reply{State: SearchFallback, Text: SearchUnavailable}
	}
	return Reply{State: SearchFallback, Text: summary}
}

// moodFallback answers input no pattern could handle: an exact canned
// phrase first, then a reply matching the mood of the line
func (r *Responder) moodFallback(line string) Reply {
	if canned, ok := r.table.CannedReply(line); ok {
		return Reply{State: MoodFallback, Text: r.pick(canned)}
	}

	m := r.mood.Classify(line)
	text := r.pick(r.table.MoodReplies(string(m)))
	if text == "" {
		text = NoReply
	}
	log.Debug().Str("component", "chat").Str("mood", string(m)).Msg("mood fallback")
	return Reply{State: MoodFallback, Text: text}
}

func (r *Responder) pick(options []string) string {
	return r.picker.Pick(options)
}
