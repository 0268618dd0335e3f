// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"io"
	"os"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"

	"sift/internal/core/ports"
)

// Recorder implements ports.Telemetry using the progrock library. The
// structured updates go to the tape; the raw byte stream is additionally
// teed to stream so the user sees tool output as it arrives.
type Recorder struct {
	w      progrock.Writer
	rec    *progrock.Recorder
	stream io.Writer
}

// New creates a Recorder with a default tape, streaming to stderr.
func New() ports.Telemetry {
	return NewRecorder(progrock.NewTape(), os.Stderr)
}

// NewRecorder creates a new Recorder with the given writer and live stream.
func NewRecorder(w progrock.Writer, stream io.Writer) *Recorder {
	rec := progrock.NewRecorder(w)
	return &Recorder{
		w:      w,
		rec:    rec,
		stream: stream,
	}
}

// Record starts recording a new vertex for a named process.
func (r *Recorder) Record(name string) ports.Vertex {
	d := digest.FromString(name)
	v := r.rec.Vertex(d, name)
	return &Vertex{vertex: v, stream: r.stream}
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
