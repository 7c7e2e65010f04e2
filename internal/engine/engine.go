// Package engine shells out to the external code-index engine and
// normalizes each invocation into stdout-or-error. It owns no state
// beyond the engine binary's identity; the index artifact on disk
// belongs to the engine, never to this process.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// DefaultBin is the engine binary resolved via PATH when no override
// is configured.
const DefaultBin = "codeindex"

// DefaultIndexPath is where the engine keeps its index artifact,
// relative to the working directory.
const DefaultIndexPath = ".codeindex/index.db"

// Gateway invokes one engine operation per call. Safe for concurrent
// use; it holds no mutable state.
type Gateway struct {
	bin    string
	dir    string
	logger *slog.Logger
}

// New returns a Gateway for the given engine binary. dir is the
// working directory for invocations; empty means the process cwd.
func New(bin, dir string, logger *slog.Logger) *Gateway {
	if strings.TrimSpace(bin) == "" {
		bin = DefaultBin
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{bin: bin, dir: dir, logger: logger}
}

// Bin reports the engine binary this gateway invokes.
func (g *Gateway) Bin() string { return g.bin }

// BuildOptions tune an index build.
type BuildOptions struct {
	Force    bool
	Language string
	DB       string
}

// BuildIndex builds (or rebuilds) the index for sourceDir and returns
// the engine's build report verbatim.
func (g *Gateway) BuildIndex(ctx context.Context, sourceDir string, opts BuildOptions) (string, error) {
	if strings.TrimSpace(sourceDir) == "" {
		return "", fmt.Errorf("engine: build index: source directory required")
	}
	args := []string{"index", sourceDir}
	if opts.Force {
		args = append(args, "-f")
	}
	if opts.Language != "" {
		args = append(args, "--language", opts.Language)
	}
	if opts.DB != "" {
		args = append(args, "--db", opts.DB)
	}
	return g.invoke(ctx, args)
}

// QueryDefinition asks the engine for the definition of the reference
// at path:line:column. The engine's answer is passed through verbatim;
// this layer does not parse it.
func (g *Gateway) QueryDefinition(ctx context.Context, sourcePath string, line, column int) (string, error) {
	if strings.TrimSpace(sourcePath) == "" {
		return "", fmt.Errorf("engine: query definition: source path required")
	}
	return g.invoke(ctx, []string{"query", "definition", Position(sourcePath, line, column)})
}

// Status reports the engine's view of the index for sourceDir.
func (g *Gateway) Status(ctx context.Context, sourceDir string) (string, error) {
	return g.invoke(ctx, []string{"status", sourceDir})
}

// CleanOptions tune a clean run.
type CleanOptions struct {
	Delete bool
}

// Clean clears engine caches; with Delete it removes the index too.
func (g *Gateway) Clean(ctx context.Context, opts CleanOptions) (string, error) {
	args := []string{"clean"}
	if opts.Delete {
		args = append(args, "--delete")
	}
	return g.invoke(ctx, args)
}

// Init prepares projectDir for indexing.
func (g *Gateway) Init(ctx context.Context, projectDir string) (string, error) {
	return g.invoke(ctx, []string{"init", projectDir})
}

// Test runs the engine's self-tests against testsDir.
func (g *Gateway) Test(ctx context.Context, testsDir string) (string, error) {
	return g.invoke(ctx, []string{"test", testsDir})
}

// VisualizeOptions tune a visualization run.
type VisualizeOptions struct {
	Format string
	Output string
}

// Visualize renders the engine's graph view for sourceFile.
func (g *Gateway) Visualize(ctx context.Context, sourceFile string, opts VisualizeOptions) (string, error) {
	args := []string{"visualize", sourceFile}
	if opts.Format != "" {
		args = append(args, "--format", opts.Format)
	}
	if opts.Output != "" {
		args = append(args, "--output", opts.Output)
	}
	return g.invoke(ctx, args)
}

// DebugPath dumps the engine's resolution trace for a position.
func (g *Gateway) DebugPath(ctx context.Context, sourcePath string, line, column int) (string, error) {
	return g.invoke(ctx, []string{"debug-path", Position(sourcePath, line, column)})
}

// invoke runs one engine subprocess to completion and returns its
// stdout. Diagnostics go to the logger only; callers decide what, if
// anything, reaches the response channel.
func (g *Gateway) invoke(ctx context.Context, args []string) (string, error) {
	start := time.Now()
	g.logger.Info("engine invoke", "bin", g.bin, "args", strings.Join(args, " "))

	res, err := runCommand(ctx, g.dir, g.bin, args...)
	if err != nil {
		execErr := &ExecError{Bin: g.bin, Args: args, Err: err}
		g.logger.Error("engine spawn failed", "bin", g.bin, "args", strings.Join(args, " "), "error", err)
		return "", execErr
	}
	if res.ExitCode != 0 {
		execErr := &ExecError{Bin: g.bin, Args: args, ExitCode: res.ExitCode, Stderr: res.Stderr}
		g.logger.Error("engine exited non-zero",
			"bin", g.bin,
			"args", strings.Join(args, " "),
			"exit_code", res.ExitCode,
			"stderr", strings.TrimSpace(res.Stderr),
			"duration", time.Since(start))
		return "", execErr
	}
	g.logger.Info("engine done", "bin", g.bin, "args", strings.Join(args, " "), "duration", time.Since(start))
	return res.Stdout, nil
}

// Position formats the single position token the engine expects.
func Position(path string, line, column int) string {
	return path + ":" + strconv.Itoa(line) + ":" + strconv.Itoa(column)
}
