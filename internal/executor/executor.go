// Package executor runs approved shell commands and captures their output.
// It performs no policy checks; authorization is the gate's responsibility.
package executor

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"time"
)

// Result represents the outcome of a command that was launched.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// ShellExecutor executes raw command strings through a shell-interpreting
// subprocess so pipes, redirection and globbing behave as typed. Both output
// streams are captured in full; truncation for logging happens at the audit
// layer, not here.
type ShellExecutor struct {
	shell string
}

// NewShellExecutor creates a ShellExecutor using /bin/sh.
func NewShellExecutor() *ShellExecutor {
	return &ShellExecutor{shell: "/bin/sh"}
}

// Run executes command in dir and returns its captured output and exit code.
// A non-zero exit is not an error; the exit code is carried in the Result.
// Launch failures return a nil Result and a *CommandError.
func (e *ShellExecutor) Run(ctx context.Context, command, dir string) (*Result, error) {
	cmd := exec.CommandContext(ctx, e.shell, "-c", command)
	cmd.Dir = dir
	cmd.Stdin = nil

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, &CommandError{Command: command, Stage: "start", Cause: err}
	}

	err := cmd.Wait()
	return &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode(err),
	}, nil
}

// RunWithTimeout executes command with an externally imposed deadline. On
// expiry the child is interrupted first and killed after grace. The core
// contract has no built-in timeout; this wrapper is for callers that need to
// bound run time.
func (e *ShellExecutor) RunWithTimeout(ctx context.Context, command, dir string, timeout, grace time.Duration) (*Result, error) {
	cmd := exec.Command(e.shell, "-c", command)
	cmd.Dir = dir
	cmd.Stdin = nil

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, &CommandError{Command: command, Stage: "start", Cause: err}
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	var execErr error
	select {
	case err := <-done:
		execErr = err
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		execErr = ctx.Err()
	case <-time.After(timeout):
		_ = cmd.Process.Signal(os.Interrupt)
		select {
		case <-done:
		case <-time.After(grace):
			_ = cmd.Process.Kill()
			<-done
		}
		execErr = ErrTimeout
	}

	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode(execErr),
	}
	if execErr == ErrTimeout || execErr == context.Canceled || execErr == context.DeadlineExceeded {
		result.ExitCode = -1
		return result, execErr
	}
	return result, nil
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	type exitCoder interface {
		ExitCode() int
	}
	if ec, ok := err.(exitCoder); ok {
		return ec.ExitCode()
	}
	return -1
}
