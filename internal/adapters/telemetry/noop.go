// Package telemetry provides progress recording for launched processes.
package telemetry

import (
	"io"

	"sift/internal/core/ports"
)

// Noop is a no-op implementation of ports.Telemetry for quiet mode.
type Noop struct{}

// NewNoop creates a new Noop telemetry.
func NewNoop() *Noop {
	return &Noop{}
}

// Record returns a vertex that discards everything.
func (t *Noop) Record(_ string) ports.Vertex {
	return &NoopVertex{}
}

// Close does nothing.
func (t *Noop) Close() error { return nil }

// NoopVertex discards all recorded output.
type NoopVertex struct{}

// Stdout returns a discarding writer.
func (v *NoopVertex) Stdout() io.Writer { return io.Discard }

// Stderr returns a discarding writer.
func (v *NoopVertex) Stderr() io.Writer { return io.Discard }

// Complete does nothing.
func (v *NoopVertex) Complete(_ error) {}

// Cached does nothing.
func (v *NoopVertex) Cached() {}
