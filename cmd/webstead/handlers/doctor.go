package handlers

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/charmbracelet/lipgloss"

	"github.com/webstead/webstead/internal/preflight"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// lookPath probes the executable search path; replaced in tests.
var lookPath = exec.LookPath

// Doctor runs only the preflight checks and reports the results. Nothing is
// created or modified; a failed check exits 1.
func Doctor(ctx context.Context, configPath string) error {
	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return err
	}

	var missing []preflight.Tool
	for _, tool := range preflight.RequiredTools() {
		_, err := lookPath(tool.Name)
		fmt.Printf("%s %s - %s\n", mark(err == nil), tool.Name, tool.Description)
		if err != nil {
			missing = append(missing, tool)
		}
	}
	if len(missing) > 0 {
		return &preflight.MissingToolError{Tool: missing[0]}
	}

	identity, err := newChecker(cfg.AWS).Check(ctx)
	if err != nil {
		fmt.Printf("%s AWS credentials\n", mark(false))
		return err
	}

	fmt.Printf("%s AWS credentials - %s (account %s)\n", mark(true), identity.ARN, identity.Account)
	return nil
}

func mark(ok bool) string {
	if ok {
		return okStyle.Render("✓")
	}
	return failStyle.Render("✗")
}
