// Package config loads process configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"defindex/internal/engine"
)

// Config holds everything the binary needs to reach the engine.
type Config struct {
	// EngineBin is the engine executable, resolved via PATH unless
	// given as a path.
	EngineBin string
	// IndexPath is the well-known location of the index artifact.
	// Load resolves it against WorkDir when relative, so the resolver
	// stats the same artifact the engine writes.
	IndexPath string
	// WorkDir is the working directory for engine invocations; empty
	// means the process cwd.
	WorkDir string
	// LogLevel for the diagnostic stream.
	LogLevel slog.Level
}

// Load reads configuration from the environment. A missing .env file
// is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	workDir := strings.TrimSpace(os.Getenv("CODEINDEX_WORKDIR"))
	indexPath := firstNonEmpty(strings.TrimSpace(os.Getenv("CODEINDEX_DB")), engine.DefaultIndexPath)
	if workDir != "" && !filepath.IsAbs(indexPath) {
		indexPath = filepath.Join(workDir, indexPath)
	}

	return &Config{
		EngineBin: firstNonEmpty(strings.TrimSpace(os.Getenv("CODEINDEX_BIN")), engine.DefaultBin),
		IndexPath: indexPath,
		WorkDir:   workDir,
		LogLevel:  parseLevel(os.Getenv("LOG_LEVEL")),
	}, nil
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
