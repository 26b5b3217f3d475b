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
)

func TestDoctorAllChecksPass(t *testing.T) {
	saveAndRestoreFactories(t)

	loadConfigFile = func(string) (*config.Config, error) { return config.Default(), nil }
	lookPath = func(name string) (string, error) { return "/usr/bin/" + name, nil }
	newChecker = func(config.AWSConfig) provisioning.PreflightChecker { return stubChecker{} }

	require.NoError(t, Doctor(context.Background(), ""))
}

func TestDoctorMissingTool(t *testing.T) {
	saveAndRestoreFactories(t)

	loadConfigFile = func(string) (*config.Config, error) { return config.Default(), nil }
	lookPath = func(name string) (string, error) {
		if name == "terraform" {
			return "", errors.New("not found")
		}
		return "/usr/bin/" + name, nil
	}
	newChecker = func(config.AWSConfig) provisioning.PreflightChecker { return stubChecker{} }

	err := Doctor(context.Background(), "")
	require.Error(t, err)

	var missing *preflight.MissingToolError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "terraform", missing.Tool.Name)
}

func TestDoctorBadCredentials(t *testing.T) {
	saveAndRestoreFactories(t)

	cause := errors.New("403 Forbidden")
	loadConfigFile = func(string) (*config.Config, error) { return config.Default(), nil }
	lookPath = func(name string) (string, error) { return "/usr/bin/" + name, nil }
	newChecker = func(config.AWSConfig) provisioning.PreflightChecker {
		return stubChecker{err: &preflight.CredentialsError{Cause: cause}}
	}

	err := Doctor(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
}
