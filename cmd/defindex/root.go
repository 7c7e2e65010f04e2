package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"defindex/internal/config"
	"defindex/internal/engine"
	"defindex/internal/server"
)

var cfg *config.Config

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "defindex",
		Short:        "Definition lookup server backed by the codeindex engine",
		Long:         "defindex serves a single MCP capability, query_definition, by delegating to the external codeindex engine. The remaining subcommands drive the engine directly for maintenance.",
		Version:      server.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			return err
		},
	}

	root.AddCommand(
		newServeCmd(),
		newIndexCmd(),
		newQueryCmd(),
		newStatusCmd(),
		newCleanCmd(),
		newInitCmd(),
		newTestCmd(),
		newVisualizeCmd(),
		newDebugPathCmd(),
	)
	return root
}

// cliLogger keeps CLI diagnostics human-readable; serve mode uses JSON
// instead so operator tooling can ingest the stream.
func cliLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
}

func cliGateway() *engine.Gateway {
	return engine.New(cfg.EngineBin, cfg.WorkDir, cliLogger())
}
