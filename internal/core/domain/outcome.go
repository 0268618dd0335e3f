package domain

import "time"

// Command is an external tool invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
}

// Outcome is the raw result of one finished child process.
type Outcome struct {
	Name     string
	ExitCode int
	Output   string
	Duration time.Duration
}

// Passed reports whether the process exited cleanly.
func (o Outcome) Passed() bool {
	return o.ExitCode == 0
}

// FailureKind classifies what shape a failed test run's output had.
type FailureKind string

const (
	// FailureOrdinary is a normal spec failure with a Karma aggregate line.
	FailureOrdinary FailureKind = "ordinary"
	// FailureCompile is a TypeScript compilation failure.
	FailureCompile FailureKind = "compile"
	// FailureIncomplete is truncated or still-in-progress output, typically
	// caused by the process being cancelled. Never cached.
	FailureIncomplete FailureKind = "incomplete"
)

// TestClassification is the parsed verdict for a failed test process.
type TestClassification struct {
	Kind    FailureKind
	Excerpt string
}

// Cacheable reports whether the failure may be recorded in the
// fingerprint store.
func (c TestClassification) Cacheable() bool {
	return c.Kind != FailureIncomplete
}

// LintClassification is the parsed verdict for a failed lint process.
type LintClassification struct {
	Summary     string
	FailedFiles []string
}

// FailedSet returns the failed files as a membership set.
func (c LintClassification) FailedSet() map[string]bool {
	set := make(map[string]bool, len(c.FailedFiles))
	for _, f := range c.FailedFiles {
		set[f] = true
	}
	return set
}

// Attribution maps a file path to the failure excerpt attributed to it.
type Attribution map[string]string
