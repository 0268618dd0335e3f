// Package git implements the change detector over the git status query.
package git

import (
	"context"
	"os/exec"
	"strings"

	"sift/internal/core/domain"
	"sift/internal/core/ports"

	"go.trai.ch/zerr"
)

var _ ports.ChangeDetector = (*Detector)(nil)

// Detector enumerates locally modified files via `git status --porcelain`.
type Detector struct {
	root   string
	logger ports.Logger

	// statusFn runs the status query. Overridable in tests.
	statusFn func(ctx context.Context) ([]byte, error)
}

// NewDetector creates a Detector rooted at the given directory.
func NewDetector(root string, logger ports.Logger) *Detector {
	d := &Detector{
		root:   root,
		logger: logger,
	}
	d.statusFn = d.gitStatus
	return d
}

// Detect returns the changed files in status order. A failing status
// query degrades to an empty list and a diagnostic; it never surfaces
// an error to the caller.
func (d *Detector) Detect(ctx context.Context) []domain.ChangeRecord {
	out, err := d.statusFn(ctx)
	if err != nil {
		d.logger.Error(zerr.Wrap(err, "status query failed"))
		return nil
	}
	return parseStatus(string(out))
}

func (d *Detector) gitStatus(ctx context.Context) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", "status", "--porcelain")
	cmd.Dir = d.root
	return cmd.Output()
}

// parseStatus parses porcelain output: a two-character status code, a
// space, then the path. Rename lines report "old -> new"; the new path
// is the one that exists and gets tracked.
func parseStatus(out string) []domain.ChangeRecord {
	var records []domain.ChangeRecord

	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if len(line) < 4 {
			continue
		}

		code := line[:2]
		path := strings.TrimSpace(line[3:])
		if i := strings.Index(path, " -> "); i >= 0 {
			path = path[i+len(" -> "):]
		}
		path = strings.Trim(path, `"`)

		records = append(records, domain.ChangeRecord{
			StatusCode: code,
			Path:       path,
			Type:       domain.ChangeTypeFromStatus(code),
		})
	}

	return records
}
