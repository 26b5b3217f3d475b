// Package runner executes external commands and reports their outcome as
// typed results.
//
// Every external tool the pipeline drives (terraform, ansible-playbook) goes
// through this package, so stage logic can be unit-tested against a fake
// without spawning real processes. A non-zero exit status is data, not an
// error: callers inspect Result.ExitCode and decide what is fatal.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Command describes a single external command invocation.
type Command struct {
	// Name is the binary to run, resolved via PATH unless absolute.
	Name string

	// Args are passed to the binary verbatim.
	Args []string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Env entries are appended to the inherited process environment.
	Env []string

	// Stream selects live output to the operator instead of capture.
	// Stderr is captured in both modes so failures can surface the tool's
	// raw diagnostics.
	Stream bool
}

// Result holds the outcome of a completed command.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner runs external commands.
//
// Run returns an error only when the command could not be started or was
// interrupted; a command that ran to completion with a non-zero exit status
// yields a nil error and the status in Result.ExitCode.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ExecRunner is the production Runner backed by os/exec. Child processes
// share the process group default behavior and are killed when ctx is
// cancelled, so an operator interrupt never leaves them orphaned.
type ExecRunner struct {
	// Stdout and Stderr receive live output in streaming mode.
	Stdout io.Writer
	Stderr io.Writer
}

// New returns an ExecRunner streaming to the process's stdout and stderr.
func New() *ExecRunner {
	return &ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes cmd and waits for it to finish.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}

	var stdout, stderr bytes.Buffer
	if cmd.Stream {
		c.Stdout = r.Stdout
		c.Stderr = io.MultiWriter(r.Stderr, &stderr)
	} else {
		c.Stdout = &stdout
		c.Stderr = &stderr
	}

	err := c.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if c.ProcessState != nil {
		res.ExitCode = c.ProcessState.ExitCode()
	}

	if err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			// Ran to completion with a non-zero status; the exit code
			// carries the outcome.
			if ctx.Err() != nil {
				return res, fmt.Errorf("%s interrupted: %w", cmd.Name, ctx.Err())
			}
			return res, nil
		}
		return res, fmt.Errorf("failed to run %s: %w", cmd.Name, err)
	}
	return res, nil
}
