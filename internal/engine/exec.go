package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Result is the raw outcome of one engine subprocess. Transient: the
// gateway turns it into stdout-or-error and drops it.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// ExecError reports an engine invocation that exited non-zero or could
// not be spawned at all. Stderr carries the engine's diagnostic text;
// Err is set only for spawn failures.
type ExecError struct {
	Bin      string
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExecError) Error() string {
	argv := e.Bin + " " + strings.Join(e.Args, " ")
	if e.Err != nil {
		return fmt.Sprintf("engine: %s: %v", argv, e.Err)
	}
	msg := fmt.Sprintf("engine: %s: exit status %d", argv, e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *ExecError) Unwrap() error { return e.Err }

// runCommand is injectable in tests.
var runCommand = func(ctx context.Context, dir, bin string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		// Spawn failure: binary missing, permission denied, etc.
		return res, err
	}
	return res, nil
}
