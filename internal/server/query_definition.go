package server

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"defindex/internal/definition"
)

const toolQueryDefinition = "query_definition"

type queryDefinitionTool struct {
	resolver *definition.Resolver
	logger   *slog.Logger
}

func newQueryDefinitionTool(res *definition.Resolver, logger *slog.Logger) *queryDefinitionTool {
	if logger == nil {
		logger = slog.Default()
	}
	return &queryDefinitionTool{resolver: res, logger: logger}
}

func (t *queryDefinitionTool) Definition() mcp.Tool {
	return mcp.NewTool(toolQueryDefinition,
		mcp.WithDescription("Find the definition of the code reference at a file position. Builds the code index first when it does not exist yet (requires source_dir in that case)."),
		mcp.WithString("source_path",
			mcp.Required(),
			mcp.Description("Path of the source file containing the reference"),
		),
		mcp.WithNumber("line",
			mcp.Required(),
			mcp.Description("1-based line number of the reference"),
		),
		mcp.WithNumber("column",
			mcp.Required(),
			mcp.Description("1-based column number of the reference"),
		),
		mcp.WithString("source_dir",
			mcp.Description("Project root used to build the index when it is missing"),
		),
	)
}

// Handle is the single catch-and-wrap point: no error value escapes as
// a protocol fault, every failure becomes an error-flagged result.
func (t *queryDefinitionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := t.logger.With("tool", toolQueryDefinition, "request_id", uuid.NewString())

	q := definition.Query{
		SourcePath: req.GetString("source_path", ""),
		Line:       req.GetInt("line", 0),
		Column:     req.GetInt("column", 0),
		SourceDir:  req.GetString("source_dir", ""),
	}
	log.Info("lookup", "source_path", q.SourcePath, "line", q.Line, "column", q.Column)

	out, err := t.resolver.Resolve(ctx, q)
	if err != nil {
		log.Error("lookup failed", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}
