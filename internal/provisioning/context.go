package provisioning

import (
	"context"
	"io"
	"os"

	"github.com/webstead/webstead/internal/config"
)

// Fact names resolved from infrastructure outputs.
const (
	FactPublicIP = "instance_public_ip"
	FactSiteURL  = "site_url"
)

// Reachability is the poller-owned state of the target host.
type Reachability int

const (
	// ReachabilityUnknown is the initial state before any probe.
	ReachabilityUnknown Reachability = iota

	// ReachabilityReachable is terminal: a probe succeeded.
	ReachabilityReachable

	// ReachabilityExhausted is terminal: the attempt budget ran out.
	ReachabilityExhausted
)

func (r Reachability) String() string {
	switch r {
	case ReachabilityReachable:
		return "reachable"
	case ReachabilityExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// State holds the shared results of pipeline phases. It is progressively
// populated as phases complete and is never persisted across runs.
type State struct {
	// Facts are the infrastructure outputs, written once after apply and
	// re-queryable from the tool at any time.
	Facts map[string]string

	// Confirmed records that the operator approved the apply.
	Confirmed bool

	// Reachability is owned exclusively by the readiness phase.
	Reachability Reachability

	// InventoryPath is the generated host inventory consumed by the
	// configuration stages.
	InventoryPath string
}

// NewState creates an empty pipeline state.
func NewState() *State {
	return &State{Facts: make(map[string]string)}
}

// Context wraps the dependencies and state shared by all pipeline phases.
type Context struct {
	context.Context
	Config    *config.Config
	State     *State
	Infra     InfraTool
	Configure ConfigTool
	NewProber ProberFactory
	Preflight PreflightChecker
	Confirm   Confirmer
	Observer  Observer

	// Out receives operator-facing reports (the summary). Defaults to
	// stdout in NewContext.
	Out io.Writer
}

// NewContext creates a pipeline context with a console observer and stdout
// reporting.
func NewContext(ctx context.Context, cfg *config.Config) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Observer: NewConsoleObserver(),
		Out:      os.Stdout,
	}
}
