package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webstead/webstead/internal/config"
	"github.com/webstead/webstead/internal/preflight"
	"github.com/webstead/webstead/internal/provisioning"
	"github.com/webstead/webstead/internal/runner"
)

// saveAndRestoreFactories snapshots the injectable factory variables so each
// test can replace them freely.
func saveAndRestoreFactories(t *testing.T) {
	t.Helper()

	origLoadConfigFile := loadConfigFile
	origNewRunner := newRunner
	origNewConfirmer := newConfirmer
	origNewChecker := newChecker
	origNewInfraTool := newInfraTool
	origNewConfigTool := newConfigTool
	origNewProberFactory := newProberFactory
	origNewDestroyer := newDestroyer
	origLookPath := lookPath

	t.Cleanup(func() {
		loadConfigFile = origLoadConfigFile
		newRunner = origNewRunner
		newConfirmer = origNewConfirmer
		newChecker = origNewChecker
		newInfraTool = origNewInfraTool
		newConfigTool = origNewConfigTool
		newProberFactory = origNewProberFactory
		newDestroyer = origNewDestroyer
		lookPath = origLookPath
	})
}

type stubConfirmer struct {
	answer bool
}

func (s stubConfirmer) Confirm(string) (bool, error) { return s.answer, nil }

type stubChecker struct {
	err error
}

func (s stubChecker) Check(context.Context) (*preflight.Identity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &preflight.Identity{Account: "123456789012", ARN: "arn:aws:iam::123456789012:user/deployer"}, nil
}

type stubInfra struct {
	applyCalls int
	outputs    map[string]string
}

func (s *stubInfra) Init(context.Context) error  { return nil }
func (s *stubInfra) Plan(context.Context) error  { return nil }
func (s *stubInfra) Apply(context.Context) error { s.applyCalls++; return nil }
func (s *stubInfra) RemovePlan() error           { return nil }
func (s *stubInfra) Output(_ context.Context, name string) (string, error) {
	return s.outputs[name], nil
}

type stubConfigTool struct {
	stagesRun []string
}

func (s *stubConfigTool) WriteInventory(string) (string, error) { return "inventory.yml", nil }
func (s *stubConfigTool) RunStage(_ context.Context, stage config.Stage) error {
	s.stagesRun = append(s.stagesRun, stage.Name)
	return nil
}

type stubProber struct{}

func (stubProber) Probe(context.Context) error { return nil }

func stubPipeline(t *testing.T, confirmed bool) (*stubInfra, *stubConfigTool) {
	t.Helper()

	infra := &stubInfra{outputs: map[string]string{
		provisioning.FactPublicIP: "203.0.113.5",
		provisioning.FactSiteURL:  "http://203.0.113.5",
	}}
	configure := &stubConfigTool{}

	loadConfigFile = func(string) (*config.Config, error) {
		cfg := config.Default()
		cfg.SSH.PrivateKeyPath = "/tmp/test-key"
		return cfg, nil
	}
	newRunner = func() runner.Runner { return &runner.Fake{} }
	newConfirmer = func() provisioning.Confirmer { return stubConfirmer{answer: confirmed} }
	newChecker = func(config.AWSConfig) provisioning.PreflightChecker { return stubChecker{} }
	newInfraTool = func(runner.Runner, *config.Config) provisioning.InfraTool { return infra }
	newConfigTool = func(runner.Runner, *config.Config) provisioning.ConfigTool { return configure }
	newProberFactory = func(*config.Config) provisioning.ProberFactory {
		return func(string) (provisioning.Prober, error) { return stubProber{}, nil }
	}
	return infra, configure
}

func TestDeployConfigLoadError(t *testing.T) {
	saveAndRestoreFactories(t)

	loadConfigFile = func(string) (*config.Config, error) {
		return nil, errors.New("failed to read config file")
	}

	err := Deploy(context.Background(), "missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestDeployHappyPath(t *testing.T) {
	saveAndRestoreFactories(t)
	infra, configure := stubPipeline(t, true)

	err := Deploy(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, infra.applyCalls)
	assert.Equal(t, []string{"webserver", "site"}, configure.stagesRun)
}

func TestDeployUserAbortIsNotAnError(t *testing.T) {
	saveAndRestoreFactories(t)
	infra, configure := stubPipeline(t, false)

	err := Deploy(context.Background(), "")
	require.NoError(t, err, "a declined confirmation must exit 0")
	assert.Zero(t, infra.applyCalls)
	assert.Empty(t, configure.stagesRun)
}

func TestDeployPreflightFailurePropagates(t *testing.T) {
	saveAndRestoreFactories(t)
	infra, _ := stubPipeline(t, true)
	newChecker = func(config.AWSConfig) provisioning.PreflightChecker {
		return stubChecker{err: &preflight.MissingToolError{Tool: preflight.Tool{Name: "terraform"}}}
	}

	err := Deploy(context.Background(), "")
	require.Error(t, err)

	var missing *preflight.MissingToolError
	assert.ErrorAs(t, err, &missing)
	assert.Zero(t, infra.applyCalls)
}
