package classify

import (
	"regexp"
	"strings"
)

// FilterForFile reduces a shared multi-file failure text to the parts
// that concern path. It keeps a leading aggregate line, then walks
// blocks delimited by per-case failure and execution markers, keeping
// blocks that reference the target and cutting a block short when it
// starts referencing a different test file. If nothing substantive
// survives, the unfiltered text is returned as a safe fallback.
func (c *Classifier) FilterForFile(text, path string) string {
	lines := strings.Split(text, "\n")

	var out []string
	if len(lines) > 0 && aggregateRe.MatchString(lines[0]) {
		out = append(out, lines[0])
		lines = lines[1:]
	}
	aggregateOnly := len(out)

	base := baseName(path)
	specRe := c.specTokenRe()

	var block []string
	flush := func() {
		if block == nil {
			return
		}
		kept := c.trimForeign(block, base, specRe)
		if mentions(kept, base, path) {
			out = append(out, kept...)
		}
		block = nil
	}

	for _, line := range lines {
		if failedCaseRe.MatchString(line) || executedRe.MatchString(line) {
			flush()
			block = []string{line}
			continue
		}
		if block != nil {
			block = append(block, line)
		}
	}
	flush()

	if len(out) == aggregateOnly {
		return text
	}
	return strings.Join(out, "\n")
}

// specTokenRe matches test-file path tokens in output lines.
func (c *Classifier) specTokenRe() *regexp.Regexp {
	return regexp.MustCompile(`[\w\-./\\]*` + regexp.QuoteMeta(c.pairing.TestSuffix))
}

// trimForeign cuts a block at the first reference to a different test
// file, keeping the lines that belong to the target.
func (c *Classifier) trimForeign(block []string, base string, specRe *regexp.Regexp) []string {
	for i, line := range block {
		for _, token := range specRe.FindAllString(line, -1) {
			if baseName(token) != base {
				return block[:i]
			}
		}
	}
	return block
}

// mentions reports whether any line references the target file.
func mentions(block []string, base, path string) bool {
	for _, line := range block {
		if strings.Contains(line, base) || strings.Contains(line, path) {
			return true
		}
	}
	return false
}

// baseName is filepath.Base under either separator convention.
func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
