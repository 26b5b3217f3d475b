package provisioning

import (
	"errors"
	"fmt"
	"time"
)

// ErrUserAborted reports that the operator declined the apply confirmation.
// It is the only non-error termination: the CLI exits 0 with a warning
// instead of a failure.
var ErrUserAborted = errors.New("deployment aborted by operator")

// ReachabilityTimeoutError reports that the attempt budget was exhausted
// without a successful probe.
type ReachabilityTimeoutError struct {
	Host     string
	Attempts int
	Interval time.Duration
	LastErr  error
}

func (e *ReachabilityTimeoutError) Error() string {
	return fmt.Sprintf("host %s not reachable after %d attempts %v apart: %v",
		e.Host, e.Attempts, e.Interval, e.LastErr)
}

func (e *ReachabilityTimeoutError) Unwrap() error {
	return e.LastErr
}
