package chat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_String(t *testing.T) {
	assert.Equal(t, "greeting", Greeting.String())
	assert.Equal(t, "exit", Exit.String())
	assert.Equal(t, "State(42)", State(42).String())
}

func TestReply_JSON(t *testing.T) {
	data, err := json.Marshal(Reply{Turn: "t1", State: Dispatched, Text: "14", Handler: "calculate"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"turn":"t1","state":"dispatched","reply":"14","handler":"calculate"}`, string(data))

	var back Reply
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, Dispatched, back.State)

	assert.Error(t, json.Unmarshal([]byte(`{"state":"sleeping"}`), &back))
}

func TestReply_Ends(t *testing.T) {
	assert.True(t, Reply{State: Exit}.Ends())
	assert.False(t, Reply{State: MoodFallback}.Ends())
}
