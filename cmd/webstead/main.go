// Package main is the entry point for the webstead CLI.
//
// webstead provisions a single cloud host and configures it to serve a web
// application, driving Terraform and Ansible as one linear, human-gated
// pipeline.
//
// Commands: deploy, destroy, doctor, version.
//
// For detailed usage information, run:
//
//	webstead --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/webstead/webstead/cmd/webstead/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// An operator interrupt cancels the context, which kills any running
	// child process instead of orphaning it.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
