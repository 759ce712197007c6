package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"biblio/internal/config"
	"biblio/internal/logging"
)

var version = "dev"

var (
	cfgPath string
	verbose bool
	cfg     *config.Config
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "biblio",
		Short: "Biblio - a small encyclopedia chatbot",
		Long: `Biblio answers questions about people, planets, court cases and colours
by reading encyclopedia infoboxes. It also does arithmetic, tells the time
and the weather, and summarises any topic on request.

Start the interactive shell:  biblio
Ask a single question:        biblio ask "when was albert einstein born"
Serve over HTTP:              biblio serve`,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
		RunE:              runShell,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.json", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Biblio %s\n", version)
		},
	})
	rootCmd.AddCommand(askCmd())
	rootCmd.AddCommand(patternsCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(tokenCmd())

	return rootCmd
}

func initConfig(cmd *cobra.Command, args []string) error {
	config.ResetConfigForTest()
	c, err := config.LoadConfig(cfgPath)
	if err != nil {
		return err
	}
	cfg = c

	level := cfg.Log.Level
	if verbose {
		level = logging.LevelDebug
	}
	_, err = logging.Setup(level, cfg.Log.Pretty, cmd.ErrOrStderr())
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
