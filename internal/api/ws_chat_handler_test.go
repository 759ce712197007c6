package api

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblio/internal/chat"
)

func dialTestWS(t *testing.T, responder Responder) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws/chat", WSChatHandler(responder))

	s := httptest.NewServer(r)
	t.Cleanup(s.Close)

	wsURL := "ws" + strings.TrimPrefix(s.URL, "http") + "/ws/chat"
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err, "WebSocket dial failed")
	t.Cleanup(func() { ws.Close() })
	ws.SetReadDeadline(time.Now().Add(5 * time.Second))
	return ws
}

func TestWSChatHandler_Conversation(t *testing.T) {
	responder, _ := newTestBot(t)
	ws := dialTestWS(t, responder)

	require.NoError(t, ws.WriteJSON(ChatRequest{Message: "calculate 10 / 4"}))
	var reply chat.Reply
	require.NoError(t, ws.ReadJSON(&reply))
	assert.Equal(t, "2.5", reply.Text)
	assert.Equal(t, chat.Dispatched, reply.State)

	require.NoError(t, ws.WriteJSON(ChatRequest{Message: "bye"}))
	require.NoError(t, ws.ReadJSON(&reply))
	assert.Equal(t, chat.Exit, reply.State)

	// server closes after saying goodbye
	_, _, err := ws.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}

func TestWSChatHandler_BadFrames(t *testing.T) {
	ws := dialTestWS(t, echoResponder{})

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte("{nope")))
	var resp map[string]string
	require.NoError(t, ws.ReadJSON(&resp))
	assert.Equal(t, "invalid JSON", resp["error"])

	require.NoError(t, ws.WriteJSON(ChatRequest{}))
	require.NoError(t, ws.ReadJSON(&resp))
	assert.Equal(t, "missing message", resp["error"])

	// connection is still usable
	require.NoError(t, ws.WriteJSON(ChatRequest{Message: "ping"}))
	var reply chat.Reply
	require.NoError(t, ws.ReadJSON(&reply))
	assert.Equal(t, "ping", reply.Text)
}
