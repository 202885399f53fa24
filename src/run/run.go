// Package run executes the external tools the build pipelines drive. Every
// invocation blocks until the child exits; the orchestrator is strictly
// sequential and never runs two tools at once.
package run

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Command describes one external process invocation.
type Command struct {
	Step  string            // pipeline step this invocation belongs to ("configure", "compile", ...)
	Argv  []string          // program and arguments; Argv[0] is resolved via PATH
	Dir   string            // working directory override, empty for inherited
	Env   map[string]string // extra environment entries layered over the parent env
	Check bool              // treat a non-zero exit as a *ToolError
}

// Result is the outcome of one invocation. It is created per call and
// discarded once the caller has inspected it.
type Result struct {
	ExitCode int
}

// Runner executes commands. The exec-backed implementation is ExecRunner;
// tests substitute fakes that record the commands they receive.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// ExecRunner runs commands via os/exec with inherited stdio.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner creates a runner wired to the process's own stdio.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run launches the command and waits for it. The command line is echoed to
// stdout before execution so every tool invocation is auditable in the log.
// With cmd.Check set, a non-zero exit comes back as a *ToolError carrying
// the child's exit code; otherwise the caller reads Result.ExitCode.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (*Result, error) {
	if len(cmd.Argv) == 0 {
		return nil, fmt.Errorf("run: empty command")
	}

	fmt.Fprintf(r.Stdout, "exec: %s\n", strings.Join(cmd.Argv, " "))

	c := exec.CommandContext(ctx, cmd.Argv[0], cmd.Argv[1:]...)
	c.Dir = cmd.Dir
	c.Stdout = r.Stdout
	c.Stderr = r.Stderr
	if len(cmd.Env) > 0 {
		c.Env = mergedEnv(cmd.Env)
	}

	err := c.Run()
	if err == nil {
		return &Result{ExitCode: 0}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res := &Result{ExitCode: exitErr.ExitCode()}
		if cmd.Check {
			return res, &ToolError{Step: cmd.Step, Tool: cmd.Argv[0], Code: res.ExitCode}
		}
		return res, nil
	}

	// The process never started (not found, permission, canceled context).
	return nil, fmt.Errorf("run: starting %s: %w", cmd.Argv[0], err)
}

// mergedEnv layers extra entries over the inherited environment.
func mergedEnv(extra map[string]string) []string {
	env := os.Environ()
	for k, v := range extra {
		env = append(env, k+"="+v)
	}
	return env
}
