// Package ports defines the core interfaces for the application.
package ports

import "context"

// Executor runs shell lines. Lines are handed to the host shell verbatim;
// the caller is responsible for quoting.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run executes the line with stdio inherited. It returns an error when
	// the process exits non-zero.
	Run(ctx context.Context, line string) error

	// Capture executes the line reading stdout until EOF into the returned
	// buffer. Stderr inherits. The buffer is returned even on failure so
	// callers can surface it on the diagnostic stream.
	Capture(ctx context.Context, line string) ([]byte, error)
}
