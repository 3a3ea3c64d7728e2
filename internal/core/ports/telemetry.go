package ports

import (
	"context"
	"io"
)

type vertexKey struct{}

// Telemetry records build steps as vertices of a progress stream.
type Telemetry interface {
	// Record starts a vertex for a named step. The returned context carries
	// the vertex for nested steps.
	Record(ctx context.Context, name string) (context.Context, Vertex)

	// Close flushes and closes the recording session.
	Close() error
}

// Vertex is one recorded step.
type Vertex interface {
	// Stdout returns a writer capturing the step's output stream.
	Stdout() io.Writer

	// Complete marks the step finished, successfully or with an error.
	Complete(err error)
}

// ContextWithVertex attaches a vertex to the context.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexKey{}, v)
}

// VertexFromContext returns the vertex attached to the context, or nil.
func VertexFromContext(ctx context.Context) Vertex {
	v, _ := ctx.Value(vertexKey{}).(Vertex)
	return v
}
