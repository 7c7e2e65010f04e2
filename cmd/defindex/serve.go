package main

import (
	"log"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"defindex/internal/definition"
	"defindex/internal/engine"
	"defindex/internal/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the query_definition capability over MCP stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout is the protocol channel; all diagnostics go to stderr.
			logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

			gw := engine.New(cfg.EngineBin, cfg.WorkDir, logger)
			res := definition.NewResolver(gw, cfg.IndexPath, logger)
			s := server.New(res, logger)

			logger.Info("serving MCP over stdio",
				"version", server.Version,
				"engine_bin", gw.Bin(),
				"index_path", res.IndexPath())

			return mcpserver.ServeStdio(s,
				mcpserver.WithErrorLogger(log.New(os.Stderr, "defindex: ", log.LstdFlags)))
		},
	}
}
