package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"biblio/internal/api"
	"biblio/internal/auth"
	"biblio/internal/chat"
)

func runShell(cmd *cobra.Command, args []string) error {
	b, err := buildBot(cfg)
	if err != nil {
		return err
	}
	shell := chat.NewShell(b.responder, cfg.Bot.Name, cfg.Bot.UserLabel)
	err = shell.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question]",
		Short: "Answer a single question and exit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := buildBot(cfg)
			if err != nil {
				return err
			}
			reply := b.responder.Respond(cmd.Context(), strings.Join(args, " "))
			fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
			return nil
		},
	}
}

func patternsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List the question templates and the tools behind them",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := buildBot(cfg)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), b.table.String())
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the chatbot over HTTP and websocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := buildBot(cfg)
			if err != nil {
				return err
			}

			gin.SetMode(gin.ReleaseMode)
			r := api.SetupRouter(cfg, b.responder, b.table)
			addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
			srv := &http.Server{Addr: addr, Handler: r}

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("component", "main").Str("addr", addr).
					Str("subpath", cfg.Server.Subpath).Msg("starting server")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server error: %w", err)
			case <-cmd.Context().Done():
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			log.Info().Str("component", "main").Msg("shutting down")
			return srv.Shutdown(ctx)
		},
	}
}

func tokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Server.JWTSecret == "" {
				return errors.New("server.jwtSecret is not set in config")
			}
			token, err := auth.GenerateJWT(cfg.Server.JWTSecret, subject, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "biblio-client", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
