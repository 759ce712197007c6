package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type safeWSConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *safeWSConn) WriteJSON(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

func (s *safeWSConn) ReadMessage() (int, []byte, error) {
	return s.conn.ReadMessage()
}

func (s *safeWSConn) CloseNormal(reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
	return s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
}

func (s *safeWSConn) Close() error {
	return s.conn.Close()
}

// GET /ws/chat: one {"message": "..."} frame in, one reply frame out,
// until the user says goodbye or disconnects
func WSChatHandler(responder Responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawConn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warn().Str("component", "api").Err(err).Msg("websocket upgrade failed")
			return
		}
		conn := &safeWSConn{conn: rawConn}
		defer conn.Close()

		ctx := c.Request.Context()
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Debug().Str("component", "api").Err(err).Msg("websocket read ended")
				}
				return
			}

			var req ChatRequest
			if err := json.Unmarshal(msg, &req); err != nil {
				conn.WriteJSON(map[string]string{"error": "invalid JSON"})
				continue
			}
			if strings.TrimSpace(req.Message) == "" {
				conn.WriteJSON(map[string]string{"error": "missing message"})
				continue
			}

			reply := responder.Respond(ctx, req.Message)
			if err := conn.WriteJSON(reply); err != nil {
				return
			}
			if reply.Ends() {
				conn.CloseNormal("goodbye")
				return
			}
		}
	}
}
