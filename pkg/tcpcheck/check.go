package tcpcheck

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/vertti/smoketest/pkg/check"
)

// DefaultTimeout bounds a connection attempt.
const DefaultTimeout = 5 * time.Second

// Dialer abstracts network dialing for testability.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Check verifies TCP connectivity to a host:port, e.g. a backend API port.
type Check struct {
	Name     string        // display name (default: "tcp: <address>")
	Address  string        // host:port to connect to
	Timeout  time.Duration // connection timeout (default 5s)
	Optional bool          // report failures as WARN
	Dialer   Dialer        // injected for testing
}

// Run executes the TCP connectivity check.
func (c *Check) Run(ctx context.Context) check.Result {
	result := check.Result{Name: c.Name}
	if result.Name == "" {
		result.Name = "tcp: " + c.Address
	}
	return check.Soften(c.run(ctx, &result), c.Optional)
}

func (c *Check) run(ctx context.Context, result *check.Result) check.Result {
	if _, _, err := net.SplitHostPort(c.Address); err != nil {
		return result.Failf("invalid address %q: %v", c.Address, err)
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	dialer := c.Dialer
	if dialer == nil {
		dialer = &net.Dialer{}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := dialer.DialContext(ctx, "tcp", c.Address)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return result.Failf("connection timed out after %s", timeout)
		}
		return result.Failf("connection failed: %v", err)
	}
	defer func() { _ = conn.Close() }()

	result.AddDetailf("connected to %s", c.Address)
	return result.Pass()
}
