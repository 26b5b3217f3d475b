// Package provisioning sequences the deployment pipeline: preflight,
// infrastructure provisioning, fact extraction, reachability polling,
// configuration, and the final summary.
//
// Phases run strictly in order on a single goroutine; each phase fully
// completes before the next begins, and the first failure stops the run.
// This root package holds the shared interfaces, state, and pipeline loop;
// the phase implementations live alongside in per-phase files.
package provisioning

import (
	"context"

	"github.com/webstead/webstead/internal/config"
	"github.com/webstead/webstead/internal/preflight"
)

// Phase is one step of the deployment pipeline.
type Phase interface {
	// Name returns the phase name used in logs and error wrapping.
	Name() string

	// Provision executes the phase against the shared context.
	Provision(ctx *Context) error
}

// InfraTool drives the infrastructure CLI lifecycle.
// Implemented by internal/platform/terraform.CLI.
type InfraTool interface {
	// Init prepares the working directory. Idempotent.
	Init(ctx context.Context) error

	// Plan stages pending changes into the plan artifact without mutating
	// live infrastructure.
	Plan(ctx context.Context) error

	// Apply consumes the plan artifact and mutates live infrastructure.
	Apply(ctx context.Context) error

	// RemovePlan deletes the plan artifact; missing artifact is not an error.
	RemovePlan() error

	// Output reads a named value from applied state. Pure read.
	Output(ctx context.Context, name string) (string, error)
}

// ConfigTool applies configuration stages to the provisioned host.
// Implemented by internal/platform/ansible.Runner.
type ConfigTool interface {
	// WriteInventory records the resolved host address and connection
	// material for the stages, returning the inventory path.
	WriteInventory(host string) (string, error)

	// RunStage executes one configuration stage to completion.
	RunStage(ctx context.Context, stage config.Stage) error
}

// Prober performs a single reachability probe with no internal retries.
type Prober interface {
	Probe(ctx context.Context) error
}

// ProberFactory builds a Prober once the target address is known.
type ProberFactory func(host string) (Prober, error)

// PreflightChecker verifies tools and credentials before mutation begins.
// Implemented by internal/preflight.Checker.
type PreflightChecker interface {
	Check(ctx context.Context) (*preflight.Identity, error)
}

// Confirmer gates the apply step on an explicit operator decision.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}
