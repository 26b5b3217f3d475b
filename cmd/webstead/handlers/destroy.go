package handlers

import (
	"context"
	"log"

	"github.com/webstead/webstead/internal/platform/terraform"
)

// Destroyer tears down provisioned infrastructure - matches terraform.CLI.
type Destroyer interface {
	Destroy(ctx context.Context) error
}

// newDestroyer creates the teardown tool; replaced in tests.
var newDestroyer = func(dir, planFile string) Destroyer {
	return terraform.New(newRunner(), dir, planFile)
}

// Destroy tears down everything terraform provisioned, after an explicit
// confirmation. Declining aborts cleanly with exit code 0.
func Destroy(ctx context.Context, configPath string) error {
	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return err
	}

	confirmed, err := newConfirmer().Confirm("Destroy all provisioned infrastructure? This cannot be undone.")
	if err != nil {
		return err
	}
	if !confirmed {
		log.Printf("Warning: destroy aborted by operator; nothing was deleted")
		return nil
	}

	log.Printf("Destroying infrastructure for project: %s", cfg.ProjectName)

	if err := newDestroyer(cfg.TerraformDir, cfg.PlanFile).Destroy(ctx); err != nil {
		return err
	}

	log.Printf("Infrastructure for %s destroyed", cfg.ProjectName)
	return nil
}
