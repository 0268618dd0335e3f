package ports

import "io"

// Telemetry records live progress for launched processes.
//
//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks
type Telemetry interface {
	// Record starts recording a new vertex for a named process.
	Record(name string) Vertex
	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one process in the progress tape.
type Vertex interface {
	// Stdout returns a writer capturing the standard output stream.
	Stdout() io.Writer
	// Stderr returns a writer capturing the error output stream.
	Stderr() io.Writer
	// Complete marks the vertex as finished, successfully or with an error.
	Complete(err error)
	// Cached marks the vertex as a cache hit.
	Cached()
}
