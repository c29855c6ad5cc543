// Package sysexec provides command execution for fontprep, with an
// interface that allows tests to substitute a mock executor.
package sysexec

import (
	"bytes"
	"context"
	"os"
	"os/exec"
)

// CommandExecutor is an interface for executing commands, allowing for testing.
type CommandExecutor interface {
	LookPath(file string) (string, error)
	Run(name string, args ...string) (string, error)
	RunContext(ctx context.Context, name string, args ...string) (string, error)
	CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error)
	FileExists(path string) bool
}

// RealExecutor is the default command executor that uses the real system.
type RealExecutor struct{}

// LookPath finds the path to an executable.
func (e *RealExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes a command and returns its output.
func (e *RealExecutor) Run(name string, args ...string) (string, error) {
	return e.RunContext(context.Background(), name, args...)
}

// RunContext executes a command with a context and returns its output.
func (e *RealExecutor) RunContext(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		// Some tools write diagnostics to stderr only
		if stderr.Len() > 0 {
			return stderr.String(), err
		}
		return stdout.String(), err
	}
	// Prefer stdout, fall back to stderr (some tools output version to stderr)
	output := stdout.String()
	if output == "" {
		output = stderr.String()
	}
	return output, nil
}

// CombinedOutput runs a command and returns combined stdout and stderr.
func (e *RealExecutor) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// FileExists checks if a file exists.
func (e *RealExecutor) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
