// Package ssh probes SSH reachability of a freshly provisioned host.
//
// A probe is a single TCP connect plus SSH handshake with a short timeout.
// Retrying belongs to the caller; one probe never retries internally.
//
// Security: host key verification is disabled, since the probe is the first
// contact with a host that did not exist moments earlier.
package ssh

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/crypto/ssh"
)

const (
	defaultPort    = 22
	defaultTimeout = 5 * time.Second
)

// Config holds the probe target and credentials.
type Config struct {
	Host           string
	Port           int
	User           string
	PrivateKeyPath string

	// Timeout bounds the TCP connect and the handshake. If zero,
	// defaultTimeout is used.
	Timeout time.Duration
}

// Prober performs reachability probes against one host. The private key is
// parsed once at construction.
type Prober struct {
	config *Config
	signer ssh.Signer
}

// NewProber validates the config, loads the private key, and returns a
// ready Prober.
func NewProber(cfg *Config) (*Prober, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("config host cannot be empty")
	}
	if cfg.User == "" {
		return nil, fmt.Errorf("config user cannot be empty")
	}
	if cfg.PrivateKeyPath == "" {
		return nil, fmt.Errorf("config private key path cannot be empty")
	}

	configCopy := *cfg
	if configCopy.Port == 0 {
		configCopy.Port = defaultPort
	}
	if configCopy.Timeout == 0 {
		configCopy.Timeout = defaultTimeout
	}

	key, err := os.ReadFile(configCopy.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key: %w", err)
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	return &Prober{config: &configCopy, signer: signer}, nil
}

// Probe attempts one TCP connect and SSH handshake. A nil return means the
// host accepted the connection and authenticated the key.
func (p *Prober) Probe(ctx context.Context) error {
	addr := net.JoinHostPort(p.config.Host, fmt.Sprintf("%d", p.config.Port))

	dialer := net.Dialer{Timeout: p.config.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}

	if err := conn.SetDeadline(time.Now().Add(p.config.Timeout)); err != nil {
		_ = conn.Close()
		return fmt.Errorf("set deadline on %s: %w", addr, err)
	}

	clientConfig := &ssh.ClientConfig{
		User:            p.config.User,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(p.signer)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec // First contact with a just-created host
		Timeout:         p.config.Timeout,
	}

	c, chans, reqs, err := ssh.NewClientConn(conn, addr, clientConfig)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("ssh handshake with %s: %w", addr, err)
	}
	client := ssh.NewClient(c, chans, reqs)
	return client.Close()
}
