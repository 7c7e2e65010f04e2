// Package server is the MCP boundary: it declares the query_definition
// capability and guarantees that every outcome, success or failure,
// leaves as a well-formed tool response. Protocol framing, capability
// listing, and unknown-tool rejection belong to mcp-go.
package server

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"defindex/internal/definition"
)

// Version is set at build time via ldflags.
var Version = "dev"

const serverName = "defindex"

// New wires the MCP server with the single query_definition tool.
func New(res *definition.Resolver, logger *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		Version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, true),
		server.WithRecovery(),
		server.WithInstructions("Looks up the definition of the code reference at a given file position by delegating to the codeindex engine. If the index has not been built yet, pass source_dir so it can be built on demand."),
	)

	h := newQueryDefinitionTool(res, logger)
	s.AddTool(h.Definition(), h.Handle)

	return s
}
