// Package definition orchestrates one definition lookup: validate the
// request, make sure the index artifact exists (building it on demand),
// run the query, and hand the engine's answer back untouched.
package definition

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"defindex/internal/engine"
)

// Query describes one definition lookup. Constructed per request and
// never reused.
type Query struct {
	SourcePath string
	Line       int
	Column     int
	SourceDir  string
}

// Validate rejects requests the engine should never see. Line and
// column only need to look like positions; out-of-range values are the
// engine's concern.
func (q Query) Validate() error {
	if strings.TrimSpace(q.SourcePath) == "" {
		return &ValidationError{Field: "source_path", Reason: "required"}
	}
	if q.Line < 1 {
		return &ValidationError{Field: "line", Reason: "must be a positive integer"}
	}
	if q.Column < 1 {
		return &ValidationError{Field: "column", Reason: "must be a positive integer"}
	}
	return nil
}

// Engine is the slice of the gateway the resolver drives.
type Engine interface {
	BuildIndex(ctx context.Context, sourceDir string, opts engine.BuildOptions) (string, error)
	QueryDefinition(ctx context.Context, sourcePath string, line, column int) (string, error)
}

// Resolver runs the lookup sequence. It keeps no state between calls:
// the index artifact lives on the filesystem, appears and disappears
// outside this process, and is re-checked on every request.
type Resolver struct {
	eng       Engine
	indexPath string
	logger    *slog.Logger
}

// NewResolver returns a resolver that checks for the index artifact at
// indexPath before each query.
func NewResolver(eng Engine, indexPath string, logger *slog.Logger) *Resolver {
	if strings.TrimSpace(indexPath) == "" {
		indexPath = engine.DefaultIndexPath
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{eng: eng, indexPath: indexPath, logger: logger}
}

// IndexPath reports where the resolver looks for the index artifact.
func (r *Resolver) IndexPath() string { return r.indexPath }

// Resolve performs one lookup: at most one build invocation, then
// exactly one query invocation. Every failure comes back as an error
// value; callers at the boundary wrap it into the response.
func (r *Resolver) Resolve(ctx context.Context, q Query) (string, error) {
	if err := q.Validate(); err != nil {
		return "", err
	}
	if !r.indexExists() {
		if strings.TrimSpace(q.SourceDir) == "" {
			return "", &MissingIndexError{IndexPath: r.indexPath}
		}
		r.logger.Info("index artifact missing, building", "index_path", r.indexPath, "source_dir", q.SourceDir)
		if _, err := r.eng.BuildIndex(ctx, q.SourceDir, engine.BuildOptions{}); err != nil {
			return "", err
		}
	}
	return r.eng.QueryDefinition(ctx, q.SourcePath, q.Line, q.Column)
}

// indexExists is a bare presence check (file or directory), not a
// validity check of the artifact's contents. A stat failure other than
// not-exist (permissions, a file in the path) still counts as absent,
// but is logged so a rebuild loop is traceable to its cause.
func (r *Resolver) indexExists() bool {
	_, err := os.Stat(r.indexPath)
	if err == nil {
		return true
	}
	if !errors.Is(err, fs.ErrNotExist) {
		r.logger.Warn("index artifact stat failed, treating as absent", "index_path", r.indexPath, "error", err)
	}
	return false
}
