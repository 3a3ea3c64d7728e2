// Package shell provides the shell-line executor adapter.
package shell

import (
	"bytes"
	"context"
	"os"
	"os/exec"

	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor by handing lines to the host shell.
// Quoting is the caller's responsibility.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// Run executes the line with stdio inherited from the process.
func (e *Executor) Run(ctx context.Context, line string) error {
	cmd := exec.CommandContext(ctx, shellName, shellFlag, line) //nolint:gosec // user provided command
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return e.wrap(err, line)
	}
	return nil
}

// Capture executes the line reading stdout until EOF. Stderr inherits. The
// captured buffer is returned even when the command fails.
func (e *Executor) Capture(ctx context.Context, line string) ([]byte, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, shellName, shellFlag, line) //nolint:gosec // user provided command
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return out.Bytes(), e.wrap(err, line)
	}
	return out.Bytes(), nil
}

// wrap normalizes a subprocess failure into a zerr with the exit code and
// the offending line attached.
func (e *Executor) wrap(err error, line string) error {
	exitCode := -1
	if exitErr, ok := err.(*exec.ExitError); ok {
		exitCode = exitErr.ExitCode()
	}
	wrapped := zerr.With(zerr.With(zerr.Wrap(err, "shell command failed"),
		"command", line), "exit_code", exitCode)
	if e.logger != nil {
		e.logger.Error(wrapped)
	}
	return wrapped
}
