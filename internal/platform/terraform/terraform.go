// Package terraform drives the Terraform CLI through its
// init / plan / apply / output lifecycle.
//
// Long-running subcommands stream their output to the operator; output
// queries run captured so the values can be parsed. Non-zero exits surface
// the tool's raw stderr in typed errors.
package terraform

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/webstead/webstead/internal/runner"
)

// CLI wraps terraform invocations rooted at a working directory.
type CLI struct {
	run      runner.Runner
	dir      string
	planFile string
}

// New returns a CLI for the given working directory. planFile is the plan
// artifact path relative to dir.
func New(run runner.Runner, dir, planFile string) *CLI {
	return &CLI{run: run, dir: dir, planFile: planFile}
}

// PlanPath returns the absolute-ish path of the plan artifact.
func (c *CLI) PlanPath() string {
	return filepath.Join(c.dir, c.planFile)
}

// PlanFailedError reports a failed plan step.
type PlanFailedError struct {
	ExitCode int
	Stderr   string
}

func (e *PlanFailedError) Error() string {
	return fmt.Sprintf("terraform plan failed (exit %d):\n%s", e.ExitCode, e.Stderr)
}

// ApplyFailedError reports a failed apply step. Infrastructure may be
// partially created; reconciliation is left to terraform's own state.
type ApplyFailedError struct {
	ExitCode int
	Stderr   string
}

func (e *ApplyFailedError) Error() string {
	return fmt.Sprintf("terraform apply failed (exit %d):\n%s", e.ExitCode, e.Stderr)
}

// OutputNotFoundError reports a missing or empty named output.
type OutputNotFoundError struct {
	Name   string
	Stderr string
}

func (e *OutputNotFoundError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("terraform output %q not found or empty", e.Name)
	}
	return fmt.Sprintf("terraform output %q not found or empty:\n%s", e.Name, e.Stderr)
}

// Init prepares the working directory. Safe to repeat.
func (c *CLI) Init(ctx context.Context) error {
	res, err := c.run.Run(ctx, runner.Command{
		Name:   "terraform",
		Args:   []string{"init", "-input=false"},
		Dir:    c.dir,
		Stream: true,
	})
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("terraform init failed (exit %d):\n%s", res.ExitCode, res.Stderr)
	}
	return nil
}

// Plan computes pending changes and writes the plan artifact. It does not
// mutate live infrastructure.
func (c *CLI) Plan(ctx context.Context) error {
	res, err := c.run.Run(ctx, runner.Command{
		Name:   "terraform",
		Args:   []string{"plan", "-input=false", "-out=" + c.planFile},
		Dir:    c.dir,
		Stream: true,
	})
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return &PlanFailedError{ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return nil
}

// Apply consumes the plan artifact and mutates live infrastructure. The
// artifact is not removed here; the provisioning stage owns its lifetime.
func (c *CLI) Apply(ctx context.Context) error {
	res, err := c.run.Run(ctx, runner.Command{
		Name:   "terraform",
		Args:   []string{"apply", "-input=false", c.planFile},
		Dir:    c.dir,
		Stream: true,
	})
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return &ApplyFailedError{ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return nil
}

// RemovePlan deletes the plan artifact so a stale plan can never be applied
// on a later run. A missing artifact is not an error.
func (c *CLI) RemovePlan() error {
	if err := os.Remove(c.PlanPath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove plan artifact: %w", err)
	}
	return nil
}

// Output reads a named output from the applied state. Pure read, callable
// repeatedly. A missing or empty value is an OutputNotFoundError.
func (c *CLI) Output(ctx context.Context, name string) (string, error) {
	res, err := c.run.Run(ctx, runner.Command{
		Name: "terraform",
		Args: []string{"output", "-raw", name},
		Dir:  c.dir,
	})
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", &OutputNotFoundError{Name: name, Stderr: res.Stderr}
	}
	value := strings.TrimSpace(res.Stdout)
	if value == "" {
		return "", &OutputNotFoundError{Name: name}
	}
	return value, nil
}

// Destroy tears down all managed infrastructure. Confirmation is the
// caller's responsibility.
func (c *CLI) Destroy(ctx context.Context) error {
	res, err := c.run.Run(ctx, runner.Command{
		Name:   "terraform",
		Args:   []string{"destroy", "-input=false", "-auto-approve"},
		Dir:    c.dir,
		Stream: true,
	})
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("terraform destroy failed (exit %d):\n%s", res.ExitCode, res.Stderr)
	}
	return nil
}
