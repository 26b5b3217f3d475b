// Package preflight verifies that the external tools and cloud credentials
// the pipeline depends on are usable before any mutating stage runs.
//
// All probes are read-only and idempotent: checking twice with an unchanged
// environment yields identical results.
package preflight

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/webstead/webstead/internal/config"
)

// Tool is an external binary the pipeline shells out to.
type Tool struct {
	// Name is the binary name looked up on PATH.
	Name string

	// Description explains what the tool is used for.
	Description string

	// InstallURL points at installation instructions.
	InstallURL string
}

// RequiredTools returns the tools the deployment pipeline invokes.
func RequiredTools() []Tool {
	return []Tool{
		{
			Name:        "terraform",
			Description: "Provisions the cloud infrastructure",
			InstallURL:  "https://developer.hashicorp.com/terraform/install",
		},
		{
			Name:        "ansible-playbook",
			Description: "Configures the provisioned host",
			InstallURL:  "https://docs.ansible.com/ansible/latest/installation_guide/",
		},
	}
}

// MissingToolError reports a required binary absent from PATH.
type MissingToolError struct {
	Tool Tool
}

func (e *MissingToolError) Error() string {
	return fmt.Sprintf("required tool %q not found in PATH: %s (install: %s)",
		e.Tool.Name, e.Tool.Description, e.Tool.InstallURL)
}

// CredentialsError reports that the cloud provider rejected or could not
// resolve credentials. Cause carries the provider's raw diagnostic.
type CredentialsError struct {
	Cause error
}

func (e *CredentialsError) Error() string {
	return fmt.Sprintf(`AWS credentials are missing or invalid: %v

Configure credentials one of these ways:
  - a profile in ~/.aws/credentials plus "aws.profile" in the config
  - explicit "aws.access_key_id" / "aws.secret_access_key" in the config
  - the AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY environment variables`, e.Cause)
}

func (e *CredentialsError) Unwrap() error {
	return e.Cause
}

// Identity is the resolved caller identity returned by the provider.
type Identity struct {
	Account string
	ARN     string
	UserID  string
}

// STSAPI is the subset of the STS client the checker uses.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// Checker runs the preflight probes. LookPath and NewSTS are injectable for
// tests; the zero values use the real PATH lookup and STS client.
type Checker struct {
	AWS      config.AWSConfig
	Tools    []Tool
	LookPath func(name string) (string, error)
	NewSTS   func(ctx context.Context, cfg config.AWSConfig) (STSAPI, error)
}

// NewChecker returns a Checker with the default tool list and real probes.
func NewChecker(awsCfg config.AWSConfig) *Checker {
	return &Checker{
		AWS:      awsCfg,
		Tools:    RequiredTools(),
		LookPath: exec.LookPath,
		NewSTS:   newSTSClient,
	}
}

// Check probes all required tools, then the provider identity. The first
// failure is returned; nothing below the preflight gate runs without a pass.
func (c *Checker) Check(ctx context.Context) (*Identity, error) {
	for _, tool := range c.Tools {
		if _, err := c.LookPath(tool.Name); err != nil {
			return nil, &MissingToolError{Tool: tool}
		}
	}
	return c.checkIdentity(ctx)
}

func (c *Checker) checkIdentity(ctx context.Context) (*Identity, error) {
	client, err := c.NewSTS(ctx, c.AWS)
	if err != nil {
		return nil, &CredentialsError{Cause: err}
	}

	out, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, &CredentialsError{Cause: err}
	}

	id := &Identity{
		Account: aws.ToString(out.Account),
		ARN:     aws.ToString(out.Arn),
		UserID:  aws.ToString(out.UserId),
	}
	if id.Account == "" {
		return nil, &CredentialsError{Cause: fmt.Errorf("identity response carried no account")}
	}
	return id, nil
}

// newSTSClient builds an STS client honoring the explicit credential
// selection from the config instead of ambient-only resolution.
func newSTSClient(ctx context.Context, cfg config.AWSConfig) (STSAPI, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return sts.NewFromConfig(awsCfg), nil
}
