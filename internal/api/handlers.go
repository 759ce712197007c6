package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"biblio/internal/config"
	"biblio/internal/dispatch"
)

// GET /health
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// GET /config
func configHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only return non-sensitive config fields
		c.JSON(http.StatusOK, gin.H{
			"server": gin.H{
				"host":    cfg.Server.Host,
				"port":    cfg.Server.Port,
				"subpath": cfg.Server.Subpath,
				"auth":    cfg.Server.JWTSecret != "",
			},
			"bot": gin.H{
				"name":              cfg.Bot.Name,
				"dispatch_policy":   cfg.Bot.DispatchPolicy,
				"summary_max_chars": cfg.Bot.SummaryMaxChars,
			},
		})
	}
}

type patternInfo struct {
	Pattern   string `json:"pattern"`
	Handler   string `json:"handler"`
	Wildcards int    `json:"wildcards"`
}

// GET /patterns
func patternsHandler(table dispatch.Table) gin.HandlerFunc {
	infos := make([]patternInfo, 0, len(table))
	for _, e := range table {
		infos = append(infos, patternInfo{
			Pattern:   e.Pattern.String(),
			Handler:   e.Handler,
			Wildcards: e.Pattern.Wildcards(),
		})
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"patterns": infos})
	}
}

type ChatRequest struct {
	Message string `json:"message"`
}

// POST /chat
func ChatHandler(responder Responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request body"}})
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Message must not be empty"}})
			return
		}
		c.JSON(http.StatusOK, responder.Respond(c.Request.Context(), req.Message))
	}
}
