package invoker

import (
	"context"
	"errors"
	"os/exec"
	"syscall"
)

// RunResult is the raw outcome of one process execution.
type RunResult struct {
	Output   string // Combined stdout and stderr
	ExitCode int    // -1 only when the process never started
}

// Runner executes one process to completion. A non-nil error means either a
// start failure (ExitCode -1) or a non-zero exit.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (RunResult, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, dir, name string, args ...string) (RunResult, error)

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, dir, name string, args ...string) (RunResult, error) {
	return f(ctx, dir, name, args...)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run executes the command and captures combined output and exit code.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (RunResult, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	cmd.Dir = dir

	output, err := cmd.CombinedOutput()
	result := RunResult{Output: string(output)}
	if err == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		result.ExitCode = -1
		return result, err
	}
	result.ExitCode = exitCode(exitErr)
	return result, err
}

// exitCode reports a process killed by a signal as 128+signal, like a shell does.
func exitCode(exitErr *exec.ExitError) int {
	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return 128 + int(status.Signal())
	}
	if code := exitErr.ExitCode(); code >= 0 {
		return code
	}
	return 128
}
