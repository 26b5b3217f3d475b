package runner

import "context"

// Fake is a scriptable Runner for tests. Handle decides the result of each
// call; all invocations are recorded in Calls in order.
type Fake struct {
	Handle func(cmd Command) (Result, error)
	Calls  []Command
}

// Run records the call and delegates to Handle. With no Handle set, every
// command succeeds with exit code 0.
func (f *Fake) Run(_ context.Context, cmd Command) (Result, error) {
	f.Calls = append(f.Calls, cmd)
	if f.Handle == nil {
		return Result{}, nil
	}
	return f.Handle(cmd)
}
