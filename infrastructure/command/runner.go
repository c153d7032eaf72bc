package command

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Runner defines the interface for running external commands
// This allows mocking exec.Command in tests
type Runner interface {
	// Run executes a command, discarding its output
	Run(ctx context.Context, name string, args ...string) error
	// Output executes a command and returns its stdout
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// CombinedOutput executes a command and returns stdout and stderr interleaved
	CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner is the production implementation using os/exec
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes a command and returns any error
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.Run()
}

// Output executes a command and returns its output.
// On failure the returned error is an *exec.ExitError carrying stderr.
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) == 0 {
		exitErr.Stderr = stderr.Bytes()
	}
	return out, err
}

// CombinedOutput executes a command and returns stdout and stderr together
func (r *ExecRunner) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// ExitCode extracts the process exit code from err.
// It returns 0 for a nil error and -1 when the process never ran.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// Ensure ExecRunner implements Runner
var _ Runner = (*ExecRunner)(nil)
