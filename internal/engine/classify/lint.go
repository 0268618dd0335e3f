package classify

import (
	"regexp"
	"strings"

	"sift/internal/core/domain"
)

var (
	// lintDiagRe matches a lint diagnostic line: error/warning keywords,
	// the failure glyph, or a leading line:column position.
	lintDiagRe = regexp.MustCompile(`(?i)\berror\b|\bwarning\b|✖|^\s*\d+:\d+`)
)

// ClassifyLint parses the combined output of a failed lint process. The
// summary keeps the diagnostic lines; FailedFiles is every referenced
// path with a lintable extension, normalized to forward slashes, so the
// cache writer knows exactly which attempted files actually failed.
func (c *Classifier) ClassifyLint(output string) domain.LintClassification {
	lines := strings.Split(output, "\n")

	var summary []string
	for _, line := range lines {
		if lintDiagRe.MatchString(line) {
			summary = append(summary, strings.TrimRight(line, " \t\r"))
		}
	}

	seen := make(map[string]bool)
	var failed []string
	for _, match := range c.pathRe.FindAllString(output, -1) {
		path := strings.ReplaceAll(match, `\`, "/")
		if !seen[path] {
			seen[path] = true
			failed = append(failed, path)
		}
	}

	return domain.LintClassification{
		Summary:     strings.Join(summary, "\n"),
		FailedFiles: failed,
	}
}
