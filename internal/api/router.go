package api

import (
	"context"
	"path"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"biblio/internal/auth"
	"biblio/internal/chat"
	"biblio/internal/config"
	"biblio/internal/dispatch"
)

// Responder answers one line of chat input
type Responder interface {
	Respond(ctx context.Context, line string) chat.Reply
}

func SetupRouter(cfg *config.Config, responder Responder, table dispatch.Table) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	subpath := cfg.Server.Subpath // e.g. "/biblio", always starts with '/'
	if subpath == "" {
		subpath = "/"
	}

	group := r.Group(subpath)
	{
		group.GET("/health", healthHandler)
		group.GET("/config", configHandler(cfg))

		// Everything that talks to the bot needs a token when a secret is configured
		secured := group.Group("", auth.Middleware(cfg.Server.JWTSecret))
		secured.GET("/patterns", patternsHandler(table))
		secured.POST("/chat", ChatHandler(responder))
		secured.GET("/ws/chat", WSChatHandler(responder))
	}

	log.Debug().Str("component", "api").Str("subpath", path.Clean(subpath)).
		Bool("auth", cfg.Server.JWTSecret != "").Msg("routes registered")
	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().Str("component", "api").
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}
