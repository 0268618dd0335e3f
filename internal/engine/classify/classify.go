// Package classify turns raw tool output into per-file verdicts. The
// heuristics live behind a small line-oriented surface so they can
// evolve without touching orchestration.
package classify

import (
	"regexp"
	"strings"

	"sift/internal/core/domain"
)

var (
	// aggregateRe matches the Karma end-of-run summary.
	aggregateRe = regexp.MustCompile(`TOTAL: (\d+) FAILED, (\d+) SUCCESS`)

	// failedCaseRe matches a per-case failure marker.
	failedCaseRe = regexp.MustCompile(`FAILED\s*$`)

	// executedRe matches Karma execution progress lines.
	executedRe = regexp.MustCompile(`Executed \d+ of \d+`)

	// inProgressRe marks a progress line of a run that is still going.
	inProgressRe = regexp.MustCompile(`\(0 secs? /`)

	// compileMarkerRe matches TypeScript compiler diagnostics.
	compileMarkerRe = regexp.MustCompile(`error TS\d+|ERROR in`)

	// locationRe matches a file-location line following a diagnostic.
	locationRe = regexp.MustCompile(`[\w\-./\\]+\.(?:ts|html)[:(]\d+[,:]\d+`)

	// transientRe matches progress and browser chatter dropped from
	// fallback excerpts.
	transientRe = regexp.MustCompile(
		`Executed \d+ of \d+|^\s*$|^\d{2} \d{2} \d{4} \d{2}:\d{2}:\d{2}\.\d+:(INFO|LOG|WARN|DEBUG)|Connected on socket|^(INFO|LOG|WARN):`,
	)
)

const (
	// maxDiagnostics caps how many compiler errors are extracted.
	maxDiagnostics = 6
	// locationLookahead is how far below a diagnostic its file location
	// may appear.
	locationLookahead = 6
	// fallbackTail is how many non-transient lines the last-resort
	// excerpt keeps.
	fallbackTail = 15
)

// Classifier parses test and lint output.
type Classifier struct {
	pairing  domain.Pairing
	pathRe   *regexp.Regexp
	lintExts []string
}

// New creates a Classifier for the configured conventions.
func New(cfg domain.Config) *Classifier {
	return &Classifier{
		pairing:  cfg.Pairing,
		pathRe:   buildPathRegexp(cfg.LintExtensions),
		lintExts: cfg.LintExtensions,
	}
}

// buildPathRegexp matches path tokens ending in a lintable extension,
// under either path-separator convention.
func buildPathRegexp(exts []string) *regexp.Regexp {
	quoted := make([]string, len(exts))
	for i, ext := range exts {
		quoted[i] = regexp.QuoteMeta(strings.TrimPrefix(ext, "."))
	}
	return regexp.MustCompile(`(?:[A-Za-z]:)?[\w\-./\\]+\.(?:` + strings.Join(quoted, "|") + `)\b`)
}

// ClassifyTest parses the combined output of a failed test process.
//
// Outputs with the Karma aggregate line are ordinary failures whose
// canonical excerpt spans the first per-case failure marker through the
// aggregate. Without an aggregate the output is either a compiler
// failure, truncated (cancelled) output, or an unrecognized shape that
// degrades to a tail excerpt.
func (c *Classifier) ClassifyTest(output string) domain.TestClassification {
	lines := strings.Split(output, "\n")

	if idx := indexMatching(lines, aggregateRe); idx >= 0 {
		return domain.TestClassification{
			Kind:    domain.FailureOrdinary,
			Excerpt: failureSection(lines, idx),
		}
	}

	// No aggregate. Output of a cancelled sibling is still in progress
	// and must never be cached as a real failure.
	if truncated(lines) {
		return domain.TestClassification{Kind: domain.FailureIncomplete}
	}

	if diags := compileDiagnostics(lines); len(diags) > 0 {
		return domain.TestClassification{
			Kind:    domain.FailureCompile,
			Excerpt: strings.Join(diags, "\n"),
		}
	}

	tail := nonTransientTail(lines, fallbackTail)
	if len(tail) == 0 {
		return domain.TestClassification{Kind: domain.FailureIncomplete}
	}
	return domain.TestClassification{
		Kind:    domain.FailureOrdinary,
		Excerpt: strings.Join(tail, "\n"),
	}
}

// failureSection extracts the canonical text from the first per-case
// failure marker through the aggregate line.
func failureSection(lines []string, aggregateIdx int) string {
	start := aggregateIdx
	for i := 0; i < aggregateIdx; i++ {
		if failedCaseRe.MatchString(lines[i]) && !aggregateRe.MatchString(lines[i]) {
			start = i
			break
		}
	}
	return strings.Join(lines[start:aggregateIdx+1], "\n")
}

// truncated reports whether the output looks like a run that was still
// in flight: an in-progress execution line with no aggregate.
func truncated(lines []string) bool {
	for _, line := range lines {
		if executedRe.MatchString(line) && inProgressRe.MatchString(line) {
			return true
		}
	}
	return false
}

// compileDiagnostics extracts up to maxDiagnostics compiler errors,
// each paired with the file-location line found within a short
// lookahead window below it.
func compileDiagnostics(lines []string) []string {
	var diags []string
	for i := 0; i < len(lines) && len(diags) < maxDiagnostics; i++ {
		if !compileMarkerRe.MatchString(lines[i]) {
			continue
		}

		diag := strings.TrimSpace(lines[i])
		if !locationRe.MatchString(diag) {
			for j := i + 1; j < len(lines) && j <= i+locationLookahead; j++ {
				if locationRe.MatchString(lines[j]) {
					diag += "\n" + strings.TrimSpace(lines[j])
					break
				}
			}
		}
		diags = append(diags, diag)
	}
	return diags
}

// nonTransientTail returns the last n lines that carry signal.
func nonTransientTail(lines []string, n int) []string {
	var kept []string
	for _, line := range lines {
		if transientRe.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	if len(kept) > n {
		kept = kept[len(kept)-n:]
	}
	return kept
}

func indexMatching(lines []string, re *regexp.Regexp) int {
	for i, line := range lines {
		if re.MatchString(line) {
			return i
		}
	}
	return -1
}
