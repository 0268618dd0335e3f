// Package runner implements the execution coordinator: it launches the
// selected lint and test commands as concurrent child processes,
// streams their output, and cancels siblings on the first failure.
package runner

import (
	"bytes"
	"context"
	"io"
	"time"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"sift/internal/core/domain"
	"sift/internal/core/ports"
)

// JobKind tells the later stages how to classify a job's output.
type JobKind string

const (
	// KindLint is the batched lint invocation.
	KindLint JobKind = "lint"
	// KindTest is the filtered test invocation.
	KindTest JobKind = "test"
)

// Job is one external command plus the files it attempts.
type Job struct {
	Kind    JobKind
	Name    string
	Command domain.Command
	Files   []string
}

// Result pairs a job with its raw process outcome.
type Result struct {
	Job     Job
	Outcome domain.Outcome
}

// Coordinator drives the concurrent run. A single controlling goroutine
// consumes completion events; parallelism comes from the child
// processes themselves.
type Coordinator struct {
	procs  ports.ProcessRunner
	logger ports.Logger
}

// New creates a new Coordinator.
func New(procs ports.ProcessRunner, logger ports.Logger) *Coordinator {
	return &Coordinator{
		procs:  procs,
		logger: logger,
	}
}

// BuildJobs assembles the commands for a run. The lint command batches
// its file list; the test command carries one inclusion flag per spec
// file. Empty selections produce no job for that track.
func BuildJobs(cfg domain.Config, lintSel, testSel domain.Selection, disableLint bool) []Job {
	var jobs []Job

	if !disableLint && len(lintSel.ToRun) > 0 && len(cfg.LintCommand) > 0 {
		args := append([]string{}, cfg.LintCommand[1:]...)
		args = append(args, lintSel.ToRun...)
		jobs = append(jobs, Job{
			Kind:    KindLint,
			Name:    "lint",
			Command: domain.Command{Name: cfg.LintCommand[0], Args: args},
			Files:   lintSel.ToRun,
		})
	}

	if len(testSel.ToRun) > 0 && len(cfg.TestCommand) > 0 {
		args := append([]string{}, cfg.TestCommand[1:]...)
		for _, spec := range testSel.ToRun {
			args = append(args, cfg.IncludeFlag+"="+spec)
		}
		jobs = append(jobs, Job{
			Kind:    KindTest,
			Name:    "test",
			Command: domain.Command{Name: cfg.TestCommand[0], Args: args},
			Files:   testSel.ToRun,
		})
	}

	return jobs
}

type completion struct {
	idx      int
	exitCode int
	err      error
}

type tracked struct {
	proc    ports.Process
	vertex  ports.Vertex
	buf     *bytes.Buffer
	started time.Time
	done    bool
}

// Run launches every job back-to-back and waits for all of them to
// report exit. The first nonzero exit triggers a fire-and-forget
// termination of every other tracked process; racing with a natural
// completion is not an error. Finalization happens exactly once, after
// the expected number of completions.
func (c *Coordinator) Run(ctx context.Context, jobs []Job, telemetry ports.Telemetry) ([]Result, error) {
	results := make([]Result, len(jobs))
	track := make([]*tracked, len(jobs))
	completions := make(chan completion, len(jobs))

	var waiters errgroup.Group
	launched := 0
	for i, job := range jobs {
		vertex := telemetry.Record(job.Name + ": " + job.Command.Name)
		buf := &bytes.Buffer{}
		output := io.MultiWriter(buf, vertex.Stdout())

		proc, err := c.procs.Start(ctx, job.Command, output)
		if err != nil {
			vertex.Complete(err)
			// A job that never started must not orphan the ones that
			// did: kill them and wait out their completions.
			c.terminateSiblings(track, i)
			for drained := 0; drained < launched; drained++ {
				<-completions
			}
			_ = waiters.Wait()
			return nil, zerr.With(zerr.Wrap(err, "failed to launch job"), "job", job.Name)
		}

		track[i] = &tracked{proc: proc, vertex: vertex, buf: buf, started: time.Now()}
		launched++

		idx, p := i, proc
		waiters.Go(func() error {
			code, werr := p.Wait()
			completions <- completion{idx: idx, exitCode: code, err: werr}
			return nil
		})
	}

	cancelled := false
	for completed := 0; completed < launched; completed++ {
		res := <-completions

		tr := track[res.idx]
		tr.done = true
		job := jobs[res.idx]

		outcome := domain.Outcome{
			Name:     job.Name,
			ExitCode: res.exitCode,
			Output:   tr.buf.String(),
			Duration: time.Since(tr.started),
		}
		if res.err != nil {
			c.logger.Error(zerr.With(res.err, "job", job.Name))
			if outcome.ExitCode == 0 {
				outcome.ExitCode = -1
			}
		}
		results[res.idx] = Result{Job: job, Outcome: outcome}

		if outcome.Passed() {
			tr.vertex.Complete(nil)
		} else {
			tr.vertex.Complete(zerr.With(zerr.New("process failed"), "exit_code", outcome.ExitCode))
		}

		if !outcome.Passed() && !cancelled {
			cancelled = true
			c.terminateSiblings(track, res.idx)
		}
	}
	_ = waiters.Wait()

	return results, nil
}

// terminateSiblings kills every still-running tracked process and its
// descendant tree. Errors from already-exited processes are ignored.
func (c *Coordinator) terminateSiblings(track []*tracked, failedIdx int) {
	for i, tr := range track {
		if i == failedIdx || tr == nil || tr.done {
			continue
		}
		if err := tr.proc.Terminate(); err != nil {
			c.logger.Warn("failed to terminate sibling process: " + err.Error())
		}
	}
}
