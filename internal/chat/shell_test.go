package chat

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblio/internal/dispatch"
	"biblio/internal/mood"
)

func TestShell_Run(t *testing.T) {
	r := newTestResponder(dispatchFunc(func(ctx context.Context, tokens []string) dispatch.Outcome {
		return dispatch.Outcome{Kind: dispatch.Reply, Text: "14"}
	}), nil, fixedMood(mood.Neutral))
	sh := NewShell(r, "", "")

	in := strings.NewReader("hello\ncalculate 3 + 4 * 2\nbye\nnever read\n")
	var out bytes.Buffer
	require.NoError(t, sh.Run(context.Background(), in, &out))

	want := strings.Join(sh.Banner(), "\n") + "\n" +
		"You: Biblio: Hello there!\n" +
		"You: Biblio: 14\n" +
		"You: Biblio: Goodbye!\n"
	assert.Equal(t, want, out.String())
}

func TestShell_EOF(t *testing.T) {
	r := newTestResponder(dispatchFunc(unmatched), nil, fixedMood(mood.Positive))
	sh := NewShell(r, "Bot", "Me")

	var out bytes.Buffer
	require.NoError(t, sh.Run(context.Background(), strings.NewReader("great stuff"), &out))

	assert.True(t, strings.HasPrefix(out.String(), "Hi, I'm Bot.\n"))
	assert.True(t, strings.HasSuffix(out.String(), "Me: Bot: Glad to hear it!\nMe: \n"))
}

func TestShell_Cancelled(t *testing.T) {
	r := newTestResponder(dispatchFunc(unmatched), nil, fixedMood(mood.Neutral))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := NewShell(r, "", "").Run(ctx, strings.NewReader("hello\n"), &out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotContains(t, out.String(), "You:")
}
