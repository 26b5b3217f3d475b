package provisioning

import (
	"github.com/webstead/webstead/internal/ui"
)

// SummaryPhase reports the resolved service URL, the SSH connection recipe,
// and the teardown command. Pure presentation; it only runs after every
// other phase succeeded.
type SummaryPhase struct{}

// Name implements Phase.
func (p *SummaryPhase) Name() string { return "summary" }

// Provision implements Phase.
func (p *SummaryPhase) Provision(ctx *Context) error {
	keyPath, err := ctx.Config.SSH.KeyPath()
	if err != nil {
		return err
	}

	ui.Summary{
		SiteURL:     ctx.State.Facts[FactSiteURL],
		Host:        ctx.State.Facts[FactPublicIP],
		User:        ctx.Config.SSH.User,
		KeyPath:     keyPath,
		TeardownCmd: "webstead destroy",
	}.Print(ctx.Out)
	return nil
}
