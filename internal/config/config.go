// Package config loads and validates the deployment configuration.
//
// The configuration is an explicit object passed into every component that
// would otherwise read ambient process state (credentials, tool paths,
// timeouts). This keeps the pipeline testable without touching the real
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up in the working directory when no
// explicit path is given.
const DefaultFile = "webstead.yaml"

// Config holds the full deployment configuration.
type Config struct {
	// ProjectName labels the deployment in logs and generated artifacts.
	ProjectName string `yaml:"project_name"`

	// TerraformDir is the directory holding the infrastructure definitions.
	TerraformDir string `yaml:"terraform_dir"`

	// AnsibleDir is the directory holding the configuration playbooks.
	AnsibleDir string `yaml:"ansible_dir"`

	// PlanFile is the plan artifact path, relative to TerraformDir.
	PlanFile string `yaml:"plan_file"`

	// InventoryFile is where the generated host inventory is written,
	// relative to AnsibleDir.
	InventoryFile string `yaml:"inventory_file"`

	SSH       SSHConfig       `yaml:"ssh"`
	AWS       AWSConfig       `yaml:"aws"`
	Readiness ReadinessConfig `yaml:"readiness"`

	// Stages are the configuration stages, executed strictly in order.
	Stages []Stage `yaml:"stages"`
}

// SSHConfig holds the connection parameters for the provisioned host.
type SSHConfig struct {
	User           string `yaml:"user"`
	Port           int    `yaml:"port"`
	PrivateKeyPath string `yaml:"private_key_path"`
}

// AWSConfig selects how provider credentials are resolved.
// When Profile and the static keys are empty, the SDK's default chain
// (environment, shared config, instance metadata) applies.
type AWSConfig struct {
	Region          string `yaml:"region"`
	Profile         string `yaml:"profile"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

// ReadinessConfig bounds the SSH reachability poll. Worst-case blocking time
// is Attempts * Interval.
type ReadinessConfig struct {
	Attempts       int      `yaml:"attempts"`
	Interval       Duration `yaml:"interval"`
	ConnectTimeout Duration `yaml:"connect_timeout"`
}

// Duration wraps time.Duration so values like "10s" parse from YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Stage describes one configuration stage: a playbook executed against the
// provisioned host.
type Stage struct {
	// Name identifies the stage in errors and logs.
	Name string `yaml:"name"`

	// Playbook is the playbook file, relative to AnsibleDir.
	Playbook string `yaml:"playbook"`

	// Label is the human-facing description printed when the stage starts.
	Label string `yaml:"label"`
}

// KeyPath returns PrivateKeyPath with a leading "~/" expanded to the
// current user's home directory.
func (s SSHConfig) KeyPath() (string, error) {
	if !strings.HasPrefix(s.PrivateKeyPath, "~/") {
		return s.PrivateKeyPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, s.PrivateKeyPath[2:]), nil
}

// Default returns the built-in configuration used when no config file exists.
func Default() *Config {
	return &Config{
		ProjectName:   "webstead",
		TerraformDir:  "terraform",
		AnsibleDir:    "ansible",
		PlanFile:      "tfplan",
		InventoryFile: "inventory.yml",
		SSH: SSHConfig{
			User:           "ubuntu",
			Port:           22,
			PrivateKeyPath: "~/.ssh/id_ed25519",
		},
		AWS: AWSConfig{
			Region: "eu-central-1",
		},
		Readiness: ReadinessConfig{
			Attempts:       30,
			Interval:       Duration(10 * time.Second),
			ConnectTimeout: Duration(5 * time.Second),
		},
		Stages: []Stage{
			{Name: "webserver", Playbook: "webserver.yml", Label: "Installing and configuring the web server"},
			{Name: "site", Playbook: "site.yml", Label: "Publishing site content"},
		},
	}
}

// Load reads the configuration from path, falling back to defaults for any
// field left unset. An empty path loads webstead.yaml if present, otherwise
// the built-in defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultFile); os.IsNotExist(err) {
			return Default(), nil
		}
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.ProjectName == "" {
		return fmt.Errorf("project_name is required")
	}
	if c.TerraformDir == "" {
		return fmt.Errorf("terraform_dir is required")
	}
	if c.AnsibleDir == "" {
		return fmt.Errorf("ansible_dir is required")
	}
	if c.PlanFile == "" {
		return fmt.Errorf("plan_file is required")
	}
	if c.SSH.User == "" {
		return fmt.Errorf("ssh.user is required")
	}
	if c.Readiness.Attempts < 1 {
		return fmt.Errorf("readiness.attempts must be at least 1")
	}
	if c.Readiness.Interval <= 0 {
		return fmt.Errorf("readiness.interval must be positive")
	}
	if len(c.Stages) == 0 {
		return fmt.Errorf("at least one configuration stage is required")
	}
	for i, s := range c.Stages {
		if s.Name == "" || s.Playbook == "" {
			return fmt.Errorf("stage %d: name and playbook are required", i)
		}
	}
	return nil
}
