package ports

import (
	"context"
	"io"

	"sift/internal/core/domain"
)

// Process is a handle to a launched child process.
type Process interface {
	// Wait blocks until the process exits and returns its exit code.
	// err is non-nil only for failures other than a nonzero exit.
	Wait() (exitCode int, err error)

	// Terminate kills the process and its descendant tree. Errors from
	// already-exited processes are ignored by callers.
	Terminate() error
}

// ProcessRunner launches external tool processes.
//
//go:generate mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type ProcessRunner interface {
	// Start launches cmd with stdout and stderr streamed to output as
	// bytes arrive.
	Start(ctx context.Context, cmd domain.Command, output io.Writer) (Process, error)
}
