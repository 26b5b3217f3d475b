// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/webstead/webstead/internal/config"
	"github.com/webstead/webstead/internal/platform/ansible"
	"github.com/webstead/webstead/internal/platform/ssh"
	"github.com/webstead/webstead/internal/platform/terraform"
	"github.com/webstead/webstead/internal/preflight"
	"github.com/webstead/webstead/internal/provisioning"
	"github.com/webstead/webstead/internal/runner"
	"github.com/webstead/webstead/internal/ui"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile loads the deployment configuration.
	loadConfigFile = config.Load

	// newRunner creates the external command runner.
	newRunner = func() runner.Runner {
		return runner.New()
	}

	// newConfirmer creates the apply confirmation provider.
	newConfirmer = func() provisioning.Confirmer {
		return ui.NewConfirmer()
	}

	// newChecker creates the preflight checker.
	newChecker = func(awsCfg config.AWSConfig) provisioning.PreflightChecker {
		return preflight.NewChecker(awsCfg)
	}

	// newInfraTool creates the terraform wrapper.
	newInfraTool = func(run runner.Runner, cfg *config.Config) provisioning.InfraTool {
		return terraform.New(run, cfg.TerraformDir, cfg.PlanFile)
	}

	// newConfigTool creates the ansible wrapper.
	newConfigTool = func(run runner.Runner, cfg *config.Config) provisioning.ConfigTool {
		return ansible.NewRunner(run, cfg.AnsibleDir, cfg.InventoryFile, cfg.SSH)
	}

	// newProberFactory builds SSH probers for resolved host addresses.
	newProberFactory = func(cfg *config.Config) provisioning.ProberFactory {
		return func(host string) (provisioning.Prober, error) {
			keyPath, err := cfg.SSH.KeyPath()
			if err != nil {
				return nil, err
			}
			return ssh.NewProber(&ssh.Config{
				Host:           host,
				Port:           cfg.SSH.Port,
				User:           cfg.SSH.User,
				PrivateKeyPath: keyPath,
				Timeout:        cfg.Readiness.ConnectTimeout.Std(),
			})
		}
	}
)

// Deploy runs the full deployment pipeline: preflight, provisioning with a
// confirmation gate, fact extraction, readiness polling, configuration
// stages, and the final summary.
//
// An operator decline at the confirmation gate is not a failure: Deploy
// logs a warning and returns nil so the CLI exits 0.
func Deploy(ctx context.Context, configPath string) error {
	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return err
	}

	log.Printf("Deploying project: %s", cfg.ProjectName)

	run := newRunner()
	pCtx := provisioning.NewContext(ctx, cfg)
	pCtx.Infra = newInfraTool(run, cfg)
	pCtx.Configure = newConfigTool(run, cfg)
	pCtx.NewProber = newProberFactory(cfg)
	pCtx.Preflight = newChecker(cfg.AWS)
	pCtx.Confirm = newConfirmer()

	if err := provisioning.RunPhases(pCtx, provisioning.Phases()); err != nil {
		if errors.Is(err, provisioning.ErrUserAborted) {
			log.Printf("Warning: %v; no changes were applied", err)
			return nil
		}
		return err
	}
	return nil
}
