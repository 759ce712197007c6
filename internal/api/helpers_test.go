package api

import (
	"context"
	"testing"

	"biblio/internal/chat"
	"biblio/internal/config"
	"biblio/internal/dispatch"
	"biblio/internal/responses"
	"biblio/internal/tools"
)

// newTestBot wires a responder over the built-in table. Only tools that
// need no network are exercised by these tests.
func newTestBot(t *testing.T) (*chat.Responder, dispatch.Table) {
	t.Helper()
	reg, err := tools.NewDefaultRegistry(tools.Deps{Picker: responses.FirstPicker})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	table := dispatch.DefaultTable()
	r := chat.NewResponder(chat.Options{
		Dispatcher: dispatch.New(table, reg, dispatch.FirstMatch),
		Picker:     responses.FirstPicker,
	})
	return r, table
}

type echoResponder struct{}

func (echoResponder) Respond(ctx context.Context, line string) chat.Reply {
	return chat.Reply{Turn: "t", State: chat.Dispatched, Text: line}
}

func testConfig() *config.Config {
	return config.Default()
}
