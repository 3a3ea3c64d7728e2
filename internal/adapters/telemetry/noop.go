// Package telemetry provides implementations of ports.Telemetry: a no-op
// recorder for library embedding and a progrock-backed recorder for the CLI.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/forge/internal/core/ports"
)

// NoOp is a no-op implementation of ports.Telemetry.
type NoOp struct{}

// NewNoOp creates a new NoOp recorder.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Record returns an inert vertex and the context unchanged; the vertex is
// not attached to the context.
func (n *NoOp) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, noOpVertex{}
}

// Close does nothing.
func (n *NoOp) Close() error { return nil }

type noOpVertex struct{}

func (noOpVertex) Stdout() io.Writer { return io.Discard }

func (noOpVertex) Complete(error) {}
