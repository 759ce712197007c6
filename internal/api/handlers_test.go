package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"biblio/internal/chat"
	"biblio/internal/config"
	"biblio/internal/dispatch"
)

func TestHealthHandler_ReturnsOk(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", healthHandler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "ok") {
		t.Errorf("expected response to contain 'ok', got: %s", w.Body.String())
	}
}

func TestConfigHandler_HidesSecret(t *testing.T) {
	cfg := config.Default()
	cfg.Bot.Name = "Libby"
	cfg.Server.JWTSecret = "super-secret"

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/config", configHandler(cfg))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/config", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"Libby"`) {
		t.Errorf("expected bot name in response, got: %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "super-secret") {
		t.Errorf("jwt secret leaked: %s", w.Body.String())
	}
}

func TestPatternsHandler_ListsTable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/patterns", patternsHandler(dispatch.DefaultTable()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/patterns", nil))

	var body struct {
		Patterns []patternInfo `json:"patterns"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Patterns) != 10 {
		t.Fatalf("expected 10 patterns, got %d", len(body.Patterns))
	}
	first := body.Patterns[0]
	if first.Pattern != "when was [PERSON] born" || first.Handler != "birth_date" || first.Wildcards != 1 {
		t.Errorf("unexpected first pattern: %+v", first)
	}
}

func postChat(r http.Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestChatHandler_Calculates(t *testing.T) {
	responder, _ := newTestBot(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/chat", ChatHandler(responder))

	w := postChat(r, `{"message": "calculate 3 + 4 * 2"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	var reply chat.Reply
	if err := json.Unmarshal(w.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if reply.Text != "14" || reply.State != chat.Dispatched || reply.Turn == "" {
		t.Errorf("unexpected reply: %+v", reply)
	}
}

func TestChatHandler_BadRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/chat", ChatHandler(echoResponder{}))

	for _, body := range []string{`{"message": "   "}`, `not json`, `{}`} {
		w := postChat(r, body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, w.Code)
		}
		if !strings.Contains(w.Body.String(), `"message"`) {
			t.Errorf("body %q: expected error message, got %s", body, w.Body.String())
		}
	}
}
