// Package selector implements the run-vs-skip selection engine.
package selector

import (
	"os"
	"strings"

	"sift/internal/core/domain"
	"sift/internal/core/ports"
)

// Selector combines detected changes with the fingerprint cache to
// decide which spec files and lint targets must actually re-execute.
type Selector struct {
	store  ports.FingerprintStore
	cfg    domain.Config
	logger ports.Logger

	// exists checks a candidate on disk. Overridable in tests.
	exists func(path string) bool
}

// New creates a new Selector.
func New(store ports.FingerprintStore, cfg domain.Config, logger ports.Logger) *Selector {
	return &Selector{
		store:  store,
		cfg:    cfg,
		logger: logger,
		exists: fileExists,
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// SelectTests partitions candidate spec files into toRun and cached.
//
// Candidates are the explicitly changed spec files plus the spec
// counterpart of every changed non-test source file, kept in change
// order, deduplicated, and filtered to files that exist on disk.
// A candidate runs when its own content no longer matches the cache, or
// when its companion source exists and no longer matches.
func (s *Selector) SelectTests(changes []domain.ChangeRecord, cache domain.CacheMap) domain.Selection {
	pairing := s.cfg.Pairing

	seen := make(map[string]bool)
	var candidates []string
	for _, ch := range changes {
		var spec string
		switch {
		case pairing.IsSpec(ch.Path):
			spec = ch.Path
		case pairing.IsSource(ch.Path):
			spec = pairing.SpecFor(ch.Path)
		default:
			continue
		}
		if seen[spec] {
			continue
		}
		seen[spec] = true
		if !s.exists(spec) {
			continue
		}
		candidates = append(candidates, spec)
	}

	var sel domain.Selection
	for _, spec := range candidates {
		if s.specChanged(spec, cache) || s.sourceChanged(spec, cache) {
			sel.ToRun = append(sel.ToRun, spec)
		} else {
			sel.Cached = append(sel.Cached, spec)
		}
	}
	return sel
}

func (s *Selector) specChanged(spec string, cache domain.CacheMap) bool {
	entry, ok := cache[spec]
	return !ok || entry.Hash != s.store.Hash(spec)
}

func (s *Selector) sourceChanged(spec string, cache domain.CacheMap) bool {
	src := s.cfg.Pairing.SourceFor(spec)
	if src == spec || !s.exists(src) {
		return false
	}
	entry, ok := cache[domain.SourceKey(src)]
	return !ok || entry.Hash != s.store.Hash(src)
}

// SelectLint partitions changed lintable files into toRun and cached.
// Only content decides: a previously failing file with an unchanged
// fingerprint stays cached (and is reported among cached failures).
func (s *Selector) SelectLint(changes []domain.ChangeRecord, cache domain.CacheMap) domain.Selection {
	seen := make(map[string]bool)

	var sel domain.Selection
	for _, ch := range changes {
		if seen[ch.Path] || !s.lintable(ch.Path) {
			continue
		}
		seen[ch.Path] = true
		if !s.exists(ch.Path) {
			continue
		}

		entry, ok := cache[domain.LintKey(ch.Path)]
		if !ok || entry.Hash != s.store.Hash(ch.Path) {
			sel.ToRun = append(sel.ToRun, ch.Path)
		} else {
			sel.Cached = append(sel.Cached, ch.Path)
		}
	}
	return sel
}

func (s *Selector) lintable(path string) bool {
	for _, ext := range s.cfg.LintExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
