package buildtool

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Command is an external process invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Runner executes build commands. Tests substitute a recording runner.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// CommandError carries the captured output of a failed command.
type CommandError struct {
	Command Command
	Stdout  string
	Stderr  string
	Err     error
}

func (e *CommandError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s failed: %v", e.Command, e.Err)
	if out := strings.TrimSpace(e.Stdout); out != "" {
		b.WriteString("\nStdout:\n")
		b.WriteString(out)
	}
	if out := strings.TrimSpace(e.Stderr); out != "" {
		b.WriteString("\nStderr:\n")
		b.WriteString(out)
	}
	return b.String()
}

func (e *CommandError) Unwrap() error { return e.Err }

// ExecRunner runs commands with os/exec, capturing stdout and stderr.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &CommandError{
			Command: c,
			Stdout:  stdout.String(),
			Stderr:  stderr.String(),
			Err:     err,
		}
	}
	return nil
}
