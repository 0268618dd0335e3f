package app

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"sift/internal/ui/output"
)

// Report renders the end-of-run verdicts. All writes go to a single
// writer, stdout in production.
type Report struct {
	w io.Writer

	passed   lipgloss.Style
	failed   lipgloss.Style
	faint    lipgloss.Style
	filename lipgloss.Style
}

// NewReport creates a Report writing to w, honoring NO_COLOR.
func NewReport(w io.Writer) *Report {
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(output.ColorProfile()))
	return &Report{
		w:        w,
		passed:   renderer.NewStyle().Foreground(lipgloss.Color("42")),  // Green
		failed:   renderer.NewStyle().Foreground(lipgloss.Color("160")), // Red
		faint:    renderer.NewStyle().Foreground(lipgloss.Color("240")), // Gray
		filename: renderer.NewStyle().Bold(true),
	}
}

// NothingToDo reports a run with no work: no detected changes, or
// changes that produced no candidates at all.
func (r *Report) NothingToDo(elapsed time.Duration) {
	fmt.Fprintf(r.w, "%s %s\n",
		r.passed.Render("PASSED"),
		r.faint.Render(fmt.Sprintf("nothing to do (%s)", round(elapsed))))
}

// AllCached reports a run where every candidate was served from the
// fingerprint store. Cached failures are listed, but with nothing
// launched the run itself passes.
func (r *Report) AllCached(counts *cachedCounts, elapsed time.Duration) {
	r.renderCached(counts)
	fmt.Fprintf(r.w, "%s %s\n",
		r.passed.Render("PASSED"),
		r.faint.Render(fmt.Sprintf("all up to date (%s)", round(elapsed))))
}

// JobPassed reports a clean process exit.
func (r *Report) JobPassed(name string, files int, dur time.Duration) {
	fmt.Fprintf(r.w, "%s %s %s\n",
		r.passed.Render("PASSED"),
		name,
		r.faint.Render(fmt.Sprintf("(%d files, %s)", files, round(dur))))
}

// JobFailed reports a nonzero process exit.
func (r *Report) JobFailed(name string, exitCode int, dur time.Duration) {
	fmt.Fprintf(r.w, "%s %s %s\n",
		r.failed.Render("FAILED"),
		name,
		r.faint.Render(fmt.Sprintf("(exit %d, %s)", exitCode, round(dur))))
}

// Incomplete marks a job whose output was cut off before a verdict.
func (r *Report) Incomplete(name string) {
	fmt.Fprintf(r.w, "%s %s\n",
		r.faint.Render("incomplete output for"),
		name)
}

// FileFailure prints the excerpt attributed to one file.
func (r *Report) FileFailure(path, excerpt string) {
	fmt.Fprintf(r.w, "\n%s\n", r.filename.Render(path))
	for _, line := range strings.Split(strings.TrimRight(excerpt, "\n"), "\n") {
		fmt.Fprintf(r.w, "  %s\n", line)
	}
}

// Summary prints the trailing run summary.
func (r *Report) Summary(counts *cachedCounts, elapsed time.Duration, ok bool) {
	r.renderCached(counts)
	verdict := r.failed.Render("FAILED")
	if ok {
		verdict = r.passed.Render("PASSED")
	}
	fmt.Fprintf(r.w, "%s %s\n",
		verdict,
		r.faint.Render(fmt.Sprintf("(%s)", round(elapsed))))
}

func (r *Report) renderCached(counts *cachedCounts) {
	if counts.passed > 0 {
		fmt.Fprintln(r.w, r.faint.Render(fmt.Sprintf("%d files cached passing", counts.passed)))
	}
	for _, f := range counts.failures {
		r.FileFailure(f.path, f.excerpt)
		fmt.Fprintln(r.w, r.faint.Render("cached failure, file unchanged since last run"))
	}
}

func round(d time.Duration) time.Duration {
	return d.Round(10 * time.Millisecond)
}
