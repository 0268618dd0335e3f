// Package app implements the application layer for sift.
package app

import (
	"context"
	"fmt"
	"time"

	"go.trai.ch/zerr"

	"sift/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"sift/internal/core/domain"
	"sift/internal/core/ports"
	"sift/internal/engine/classify"
	"sift/internal/engine/recorder"
	"sift/internal/engine/runner"
	"sift/internal/engine/selector"
)

// Options carries the per-invocation flags.
type Options struct {
	DisableLint  bool
	DisableCache bool
	Debug        bool
	Quiet        bool
}

// App represents the main application logic: detect, select, run,
// classify, record, report.
type App struct {
	detector   ports.ChangeDetector
	store      ports.FingerprintStore
	selector   *selector.Selector
	coord      *runner.Coordinator
	classifier *classify.Classifier
	recorder   *recorder.Recorder
	telemetry  ports.Telemetry
	cfg        domain.Config
	logger     ports.Logger
	report     *Report
}

// New creates a new App instance.
func New(
	detector ports.ChangeDetector,
	store ports.FingerprintStore,
	sel *selector.Selector,
	coord *runner.Coordinator,
	classifier *classify.Classifier,
	rec *recorder.Recorder,
	tel ports.Telemetry,
	cfg domain.Config,
	logger ports.Logger,
	report *Report,
) *App {
	return &App{
		detector:   detector,
		store:      store,
		selector:   sel,
		coord:      coord,
		classifier: classifier,
		recorder:   rec,
		telemetry:  tel,
		cfg:        cfg,
		logger:     logger,
		report:     report,
	}
}

// ClearCache deletes the persisted fingerprint store.
func (a *App) ClearCache() error {
	if err := a.store.Clear(); err != nil {
		return zerr.Wrap(err, "failed to clear cache")
	}
	return nil
}

// Run executes one check cycle. It returns domain.ErrChecksFailed when
// any launched process failed; every other error is an operational
// fault. Cached failures are reported but never fail a run that
// launched nothing.
func (a *App) Run(ctx context.Context, opts Options) error {
	started := time.Now()

	changes := a.detector.Detect(ctx)
	if opts.Debug {
		for _, c := range changes {
			a.logger.Info(fmt.Sprintf("change %s %s (%s)", c.StatusCode, c.Path, c.Type))
		}
	}
	if len(changes) == 0 {
		a.report.NothingToDo(time.Since(started))
		return nil
	}

	cache := domain.CacheMap{}
	if !opts.DisableCache {
		cache = a.store.Load()
	}

	testSel := a.selector.SelectTests(changes, cache)
	lintSel := domain.Selection{}
	if !opts.DisableLint {
		lintSel = a.selector.SelectLint(changes, cache)
	}
	if opts.Debug {
		a.logger.Info(fmt.Sprintf("selection: %d specs to run, %d cached; %d lint targets to run, %d cached",
			len(testSel.ToRun), len(testSel.Cached), len(lintSel.ToRun), len(lintSel.Cached)))
	}

	summary := a.cachedSummary(cache, testSel, lintSel)

	jobs := runner.BuildJobs(a.cfg, lintSel, testSel, opts.DisableLint)
	if len(jobs) == 0 {
		if summary.empty() {
			a.report.NothingToDo(time.Since(started))
			return nil
		}
		// Cached failures are reported, but a run that launches nothing
		// exits clean: only a launched process can fail the run.
		a.report.AllCached(summary, time.Since(started))
		return nil
	}

	tel := a.telemetry
	if opts.Quiet {
		tel = telemetry.NewNoop()
	}
	results, err := a.coord.Run(ctx, jobs, tel)
	// The injected recorder owns the tape; close it even when a quiet
	// run served a noop instead.
	if cerr := a.telemetry.Close(); cerr != nil {
		a.logger.Warn("failed to close telemetry: " + cerr.Error())
	}
	if err != nil {
		return zerr.Wrap(err, "check execution failed")
	}

	anyFailed := false
	for _, res := range results {
		switch res.Job.Kind {
		case runner.KindLint:
			anyFailed = a.handleLint(cache, res, opts) || anyFailed
		case runner.KindTest:
			anyFailed = a.handleTest(cache, res, opts) || anyFailed
		}
	}

	a.report.Summary(summary, time.Since(started), !anyFailed)

	if anyFailed {
		return domain.ErrChecksFailed
	}
	return nil
}

// handleTest classifies and records one finished test process and
// feeds the report. It returns true when the run counts as failed.
func (a *App) handleTest(cache domain.CacheMap, res runner.Result, opts Options) bool {
	if res.Outcome.Passed() {
		if !opts.DisableCache {
			a.recorder.RecordTestPass(cache, res.Job.Files)
		}
		a.report.JobPassed(res.Job.Name, len(res.Job.Files), res.Outcome.Duration)
		return false
	}

	cls := a.classifier.ClassifyTest(res.Outcome.Output)

	var attribution domain.Attribution
	if opts.DisableCache {
		attribution = a.recorder.Attribute(res.Job.Files, cls)
	} else {
		attribution = a.recorder.RecordTestFailure(cache, res.Job.Files, cls)
	}

	a.report.JobFailed(res.Job.Name, res.Outcome.ExitCode, res.Outcome.Duration)
	if cls.Kind == domain.FailureIncomplete {
		a.report.Incomplete(res.Job.Name)
	}
	for _, file := range res.Job.Files {
		if excerpt, ok := attribution[file]; ok {
			a.report.FileFailure(file, excerpt)
		}
	}
	return true
}

// handleLint classifies and records one finished lint process.
func (a *App) handleLint(cache domain.CacheMap, res runner.Result, opts Options) bool {
	if res.Outcome.Passed() {
		if !opts.DisableCache {
			a.recorder.RecordLintPass(cache, res.Job.Files)
		}
		a.report.JobPassed(res.Job.Name, len(res.Job.Files), res.Outcome.Duration)
		return false
	}

	cls := a.classifier.ClassifyLint(res.Outcome.Output)
	if !opts.DisableCache {
		a.recorder.RecordLintFailure(cache, res.Job.Files, cls)
	}

	a.report.JobFailed(res.Job.Name, res.Outcome.ExitCode, res.Outcome.Duration)
	for _, file := range cls.FailedFiles {
		a.report.FileFailure(file, cls.Summary)
	}
	return true
}

// cachedSummary counts the skipped files by their stored verdict and
// collects the stored excerpts of cached failures for the report.
func (a *App) cachedSummary(cache domain.CacheMap, testSel, lintSel domain.Selection) *cachedCounts {
	counts := &cachedCounts{}
	for _, spec := range testSel.Cached {
		counts.add(spec, cache[spec])
	}
	for _, path := range lintSel.Cached {
		counts.add(path, cache[domain.LintKey(path)])
	}
	return counts
}

type cachedFailure struct {
	path    string
	excerpt string
}

type cachedCounts struct {
	passed   int
	failures []cachedFailure
}

func (c *cachedCounts) add(path string, entry domain.CacheEntry) {
	if entry.Status == domain.StatusFailed {
		c.failures = append(c.failures, cachedFailure{path: path, excerpt: entry.Error})
		return
	}
	c.passed++
}

func (c *cachedCounts) failing() int {
	return len(c.failures)
}

func (c *cachedCounts) empty() bool {
	return c.passed == 0 && len(c.failures) == 0
}
