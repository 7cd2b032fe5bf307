package system

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// Debugger receives command traces.
type Debugger interface {
	Debug(format string, args ...interface{})
}

// Executor handles execution of external commands
type Executor struct {
	log Debugger
}

// NewExecutor creates a new executor. log may be nil.
func NewExecutor(log Debugger) *Executor {
	return &Executor{log: log}
}

// RunOutput executes a command and returns stdout
func (e *Executor) RunOutput(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	if e.log != nil {
		e.log.Debug("Executing: %s", cmd.String())
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s failed: %w: %s",
			name, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// CommandExists checks if a command is available in PATH
func (e *Executor) CommandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// MissingCommands returns the subset of deps not found in PATH.
func (e *Executor) MissingCommands(deps []string) []string {
	var missing []string
	for _, dep := range deps {
		if !e.CommandExists(dep) {
			missing = append(missing, dep)
		}
	}
	return missing
}
