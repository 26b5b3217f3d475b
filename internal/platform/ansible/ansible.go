// Package ansible runs configuration playbooks against the provisioned host
// and generates the inventory that connects them to it.
package ansible

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/webstead/webstead/internal/config"
	"github.com/webstead/webstead/internal/runner"
)

// hostAlias is the inventory name of the single provisioned host.
const hostAlias = "web"

// StageFailedError reports a configuration stage that exited non-zero.
// Remaining stages are not run.
type StageFailedError struct {
	Stage    string
	ExitCode int
	Stderr   string
}

func (e *StageFailedError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("configuration stage %q failed (exit %d)", e.Stage, e.ExitCode)
	}
	return fmt.Sprintf("configuration stage %q failed (exit %d):\n%s", e.Stage, e.ExitCode, e.Stderr)
}

// hostVars are the per-host connection parameters written to the inventory.
type hostVars struct {
	AnsibleHost          string `yaml:"ansible_host"`
	AnsibleUser          string `yaml:"ansible_user"`
	AnsiblePort          int    `yaml:"ansible_port,omitempty"`
	AnsiblePrivateKey    string `yaml:"ansible_ssh_private_key_file"`
	AnsibleSSHCommonArgs string `yaml:"ansible_ssh_common_args"`
}

type inventory struct {
	All struct {
		Hosts map[string]hostVars `yaml:"hosts"`
	} `yaml:"all"`
}

// Runner invokes playbooks from a directory against a generated inventory.
type Runner struct {
	run           runner.Runner
	dir           string
	inventoryFile string
	ssh           config.SSHConfig
}

// NewRunner returns a Runner rooted at dir. inventoryFile is relative to dir.
func NewRunner(run runner.Runner, dir, inventoryFile string, ssh config.SSHConfig) *Runner {
	return &Runner{run: run, dir: dir, inventoryFile: inventoryFile, ssh: ssh}
}

// InventoryPath returns the path of the generated inventory.
func (r *Runner) InventoryPath() string {
	return filepath.Join(r.dir, r.inventoryFile)
}

// WriteInventory writes the host inventory for the resolved address. It is
// the hand-off artifact between provisioning and configuration.
func (r *Runner) WriteInventory(host string) (string, error) {
	keyPath, err := r.ssh.KeyPath()
	if err != nil {
		return "", err
	}

	var inv inventory
	inv.All.Hosts = map[string]hostVars{
		hostAlias: {
			AnsibleHost:       host,
			AnsibleUser:       r.ssh.User,
			AnsiblePort:       r.ssh.Port,
			AnsiblePrivateKey: keyPath,
			// First contact with a freshly created host; record the key
			// instead of prompting.
			AnsibleSSHCommonArgs: "-o StrictHostKeyChecking=accept-new",
		},
	}

	data, err := yaml.Marshal(&inv)
	if err != nil {
		return "", fmt.Errorf("failed to marshal inventory: %w", err)
	}

	path := r.InventoryPath()
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write inventory: %w", err)
	}
	return path, nil
}

// RunStage executes one configuration stage. Output streams to the operator;
// a non-zero exit is a StageFailedError.
func (r *Runner) RunStage(ctx context.Context, stage config.Stage) error {
	res, err := r.run.Run(ctx, runner.Command{
		Name:   "ansible-playbook",
		Args:   []string{stage.Playbook, "--inventory", r.inventoryFile},
		Dir:    r.dir,
		Env:    []string{"ANSIBLE_HOST_KEY_CHECKING=False"},
		Stream: true,
	})
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return &StageFailedError{Stage: stage.Name, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return nil
}
