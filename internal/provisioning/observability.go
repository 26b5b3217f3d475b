package provisioning

import "log"

// Observer receives progress output during the pipeline run.
type Observer interface {
	Printf(format string, args ...any)
}

// ConsoleObserver implements Observer using the standard log package.
type ConsoleObserver struct{}

// NewConsoleObserver creates a console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{}
}

// Printf implements Observer.
func (o *ConsoleObserver) Printf(format string, args ...any) {
	log.Printf(format, args...)
}
