package terraform

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webstead/webstead/internal/runner"
)

func TestInitArgs(t *testing.T) {
	fake := &runner.Fake{}
	cli := New(fake, "infra", "tfplan")

	require.NoError(t, cli.Init(context.Background()))

	require.Len(t, fake.Calls, 1)
	call := fake.Calls[0]
	assert.Equal(t, "terraform", call.Name)
	assert.Equal(t, []string{"init", "-input=false"}, call.Args)
	assert.Equal(t, "infra", call.Dir)
	assert.True(t, call.Stream)
}

func TestPlanWritesArtifactArg(t *testing.T) {
	fake := &runner.Fake{}
	cli := New(fake, "infra", "tfplan")

	require.NoError(t, cli.Plan(context.Background()))

	require.Len(t, fake.Calls, 1)
	assert.Equal(t, []string{"plan", "-input=false", "-out=tfplan"}, fake.Calls[0].Args)
}

func TestPlanFailureCarriesExitAndStderr(t *testing.T) {
	fake := &runner.Fake{Handle: func(runner.Command) (runner.Result, error) {
		return runner.Result{ExitCode: 1, Stderr: "Error: Invalid resource type"}, nil
	}}
	cli := New(fake, "infra", "tfplan")

	err := cli.Plan(context.Background())
	require.Error(t, err)

	var planErr *PlanFailedError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, 1, planErr.ExitCode)
	assert.Contains(t, err.Error(), "Invalid resource type")
}

func TestApplyConsumesPlanArtifact(t *testing.T) {
	fake := &runner.Fake{}
	cli := New(fake, "infra", "tfplan")

	require.NoError(t, cli.Apply(context.Background()))

	require.Len(t, fake.Calls, 1)
	assert.Equal(t, []string{"apply", "-input=false", "tfplan"}, fake.Calls[0].Args)
}

func TestApplyFailure(t *testing.T) {
	fake := &runner.Fake{Handle: func(runner.Command) (runner.Result, error) {
		return runner.Result{ExitCode: 1, Stderr: "Error: creating EC2 Instance"}, nil
	}}
	cli := New(fake, "infra", "tfplan")

	err := cli.Apply(context.Background())
	require.Error(t, err)

	var applyErr *ApplyFailedError
	require.ErrorAs(t, err, &applyErr)
	assert.Contains(t, err.Error(), "creating EC2 Instance")
}

func TestOutputTrimsValue(t *testing.T) {
	fake := &runner.Fake{Handle: func(cmd runner.Command) (runner.Result, error) {
		assert.Equal(t, []string{"output", "-raw", "instance_public_ip"}, cmd.Args)
		assert.False(t, cmd.Stream)
		return runner.Result{Stdout: "203.0.113.5\n"}, nil
	}}
	cli := New(fake, "infra", "tfplan")

	value, err := cli.Output(context.Background(), "instance_public_ip")
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.5", value)
}

func TestOutputIsIdempotent(t *testing.T) {
	fake := &runner.Fake{Handle: func(runner.Command) (runner.Result, error) {
		return runner.Result{Stdout: "203.0.113.5"}, nil
	}}
	cli := New(fake, "infra", "tfplan")

	first, err1 := cli.Output(context.Background(), "instance_public_ip")
	second, err2 := cli.Output(context.Background(), "instance_public_ip")
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
	assert.Len(t, fake.Calls, 2)
}

func TestOutputEmptyValueIsNotFound(t *testing.T) {
	fake := &runner.Fake{Handle: func(runner.Command) (runner.Result, error) {
		return runner.Result{Stdout: "  \n"}, nil
	}}
	cli := New(fake, "infra", "tfplan")

	_, err := cli.Output(context.Background(), "instance_public_ip")
	require.Error(t, err)

	var notFound *OutputNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "instance_public_ip", notFound.Name)
}

func TestOutputMissingOutput(t *testing.T) {
	fake := &runner.Fake{Handle: func(runner.Command) (runner.Result, error) {
		return runner.Result{ExitCode: 1, Stderr: `Error: Output "nope" not found`}, nil
	}}
	cli := New(fake, "infra", "tfplan")

	_, err := cli.Output(context.Background(), "nope")
	require.Error(t, err)

	var notFound *OutputNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, err.Error(), "not found")
}

func TestRemovePlanDeletesArtifact(t *testing.T) {
	dir := t.TempDir()
	planPath := filepath.Join(dir, "tfplan")
	require.NoError(t, os.WriteFile(planPath, []byte("plan"), 0o600))

	cli := New(&runner.Fake{}, dir, "tfplan")
	require.NoError(t, cli.RemovePlan())

	_, err := os.Stat(planPath)
	assert.True(t, os.IsNotExist(err))
}

func TestRemovePlanToleratesMissingArtifact(t *testing.T) {
	cli := New(&runner.Fake{}, t.TempDir(), "tfplan")
	assert.NoError(t, cli.RemovePlan())
}

func TestDestroyArgs(t *testing.T) {
	fake := &runner.Fake{}
	cli := New(fake, "infra", "tfplan")

	require.NoError(t, cli.Destroy(context.Background()))

	require.Len(t, fake.Calls, 1)
	assert.Equal(t, []string{"destroy", "-input=false", "-auto-approve"}, fake.Calls[0].Args)
}
