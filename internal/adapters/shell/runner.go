// Package shell provides the process runner adapter over os/exec.
package shell

import (
	"context"
	"errors"
	"io"
	"os/exec"

	"go.trai.ch/zerr"

	"sift/internal/core/domain"
	"sift/internal/core/ports"
)

var _ ports.ProcessRunner = (*Runner)(nil)

// Runner launches external tool processes with their output streamed as
// bytes arrive. Each process runs in its own process group so the whole
// descendant tree can be terminated at once.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Start launches cmd. Stdout and stderr are both wired to output; the
// caller decides how to tee the stream between live display and the
// buffer kept for classification.
func (r *Runner) Start(ctx context.Context, cmd domain.Command, output io.Writer) (ports.Process, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...) //nolint:gosec // tool commands come from config
	if cmd.Dir != "" {
		c.Dir = cmd.Dir
	}
	c.Stdout = output
	c.Stderr = output

	setupProcessGroup(c)

	if err := c.Start(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to start command"), "command", cmd.Name)
	}

	r.logger.Info("started " + cmd.Name)
	return &process{cmd: c}, nil
}

type process struct {
	cmd *exec.Cmd
}

// Wait blocks until the process exits. A nonzero exit is reported
// through the exit code, not the error; err is reserved for failures of
// the wait itself.
func (p *process) Wait() (int, error) {
	err := p.cmd.Wait()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code == 0 {
			// Killed by signal; ExitCode reports -1 in that case, but be
			// defensive about platforms that report 0 with an error.
			code = -1
		}
		return code, nil
	}

	return -1, zerr.Wrap(err, "wait failed")
}

// Terminate kills the process and its descendant tree. Racing with the
// process's natural exit is expected; callers ignore the error for
// already-exited processes.
func (p *process) Terminate() error {
	return terminate(p.cmd)
}
