package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"defindex/internal/engine"
)

// The maintenance subcommands are thin passthroughs: argv in, engine
// stdout out, engine stderr surfaced through the returned error.

func newIndexCmd() *cobra.Command {
	var opts engine.BuildOptions
	cmd := &cobra.Command{
		Use:   "index <dir>",
		Short: "Build the index for a source tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := cliGateway().BuildIndex(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "rebuild even if an index exists")
	cmd.Flags().StringVar(&opts.Language, "language", "", "restrict indexing to one language")
	cmd.Flags().StringVar(&opts.DB, "db", "", "index database path override")
	return cmd
}

func newQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query <path:line:column>",
		Short: "Find the definition of the reference at a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, line, col, err := parsePosition(args[0])
			if err != nil {
				return err
			}
			out, err := cliGateway().QueryDefinition(cmd.Context(), path, line, col)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [dir]",
		Short: "Show index status for a source tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			out, err := cliGateway().Status(cmd.Context(), dir)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
}

func newCleanCmd() *cobra.Command {
	var opts engine.CleanOptions
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clear engine caches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := cliGateway().Clean(cmd.Context(), opts)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.Delete, "delete", false, "also delete the index artifact")
	return cmd
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <dir>",
		Short: "Prepare a project directory for indexing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := cliGateway().Init(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
}

func newTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test <dir>",
		Short: "Run the engine's self-tests against a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := cliGateway().Test(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
}

func newVisualizeCmd() *cobra.Command {
	var opts engine.VisualizeOptions
	cmd := &cobra.Command{
		Use:   "visualize <file>",
		Short: "Render the engine's graph view of a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := cliGateway().Visualize(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.Format, "format", "", "output format")
	cmd.Flags().StringVar(&opts.Output, "output", "", "output file path")
	return cmd
}

func newDebugPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "debug-path <path:line:column>",
		Short: "Dump the engine's resolution trace for a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, line, col, err := parsePosition(args[0])
			if err != nil {
				return err
			}
			out, err := cliGateway().DebugPath(cmd.Context(), path, line, col)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
}

// parsePosition splits a path:line:column token from the right, so
// paths containing colons (drive letters) still parse.
func parsePosition(tok string) (path string, line, col int, err error) {
	i := strings.LastIndex(tok, ":")
	if i <= 0 {
		return "", 0, 0, fmt.Errorf("invalid position %q, want path:line:column", tok)
	}
	col, err = strconv.Atoi(tok[i+1:])
	if err != nil || col < 1 {
		return "", 0, 0, fmt.Errorf("invalid position %q, want path:line:column", tok)
	}
	rest := tok[:i]
	j := strings.LastIndex(rest, ":")
	if j <= 0 {
		return "", 0, 0, fmt.Errorf("invalid position %q, want path:line:column", tok)
	}
	line, err = strconv.Atoi(rest[j+1:])
	if err != nil || line < 1 {
		return "", 0, 0, fmt.Errorf("invalid position %q, want path:line:column", tok)
	}
	return rest[:j], line, col, nil
}
