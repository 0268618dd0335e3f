// Package recorder persists run verdicts into the fingerprint store.
// It is the only component that mutates cache entries after a run.
package recorder

import (
	"strings"
	"time"

	"sift/internal/core/domain"
	"sift/internal/core/ports"
)

// ExcerptFilter narrows a failure excerpt down to the lines relevant
// to one file.
type ExcerptFilter interface {
	FilterForFile(text, path string) string
}

// Recorder writes classified outcomes back to the fingerprint store.
// Every record method mutates the given cache map in place and saves
// the whole map, so a crash mid-run loses at most the current batch.
type Recorder struct {
	store   ports.FingerprintStore
	filter  ExcerptFilter
	pairing domain.Pairing
	logger  ports.Logger
	now     func() time.Time
}

// New creates a new Recorder.
func New(store ports.FingerprintStore, filter ExcerptFilter, cfg domain.Config, logger ports.Logger) *Recorder {
	return &Recorder{
		store:   store,
		filter:  filter,
		pairing: cfg.Pairing,
		logger:  logger,
		now:     time.Now,
	}
}

// RecordTestPass marks every attempted spec file passed under its bare
// key, and its companion source passed under the source namespace when
// the source exists on disk. Unreadable files are skipped rather than
// cached with an empty hash.
func (r *Recorder) RecordTestPass(cache domain.CacheMap, attempted []string) {
	for _, spec := range attempted {
		r.put(cache, spec, spec, domain.StatusPassed, "")

		source := r.pairing.SourceFor(spec)
		if source != spec {
			r.put(cache, domain.SourceKey(source), source, domain.StatusPassed, "")
		}
	}
	r.store.Save(cache)
}

// Attribute maps a failed test run's excerpt onto the files it blames.
// Compile failures name the files they broke on; specs not mentioned
// were never reached and get no attribution. Incomplete output blames
// nobody.
func (r *Recorder) Attribute(attempted []string, cls domain.TestClassification) domain.Attribution {
	attribution := make(domain.Attribution, len(attempted))
	if !cls.Cacheable() {
		return attribution
	}
	for _, spec := range attempted {
		if cls.Kind == domain.FailureCompile && !strings.Contains(cls.Excerpt, spec) {
			continue
		}
		attribution[spec] = r.filter.FilterForFile(cls.Excerpt, spec)
	}
	return attribution
}

// RecordTestFailure caches a failed test run according to its
// classification and returns the per-file excerpt attribution used for
// reporting. Incomplete output writes nothing: a cancelled or truncated
// run must not poison the cache. Unattributed specs keep their prior
// cache state.
func (r *Recorder) RecordTestFailure(cache domain.CacheMap, attempted []string, cls domain.TestClassification) domain.Attribution {
	attribution := r.Attribute(attempted, cls)

	dirty := false
	for _, spec := range attempted {
		excerpt, ok := attribution[spec]
		if !ok {
			continue
		}
		r.put(cache, spec, spec, domain.StatusFailed, excerpt)
		dirty = true
	}

	if dirty {
		r.store.Save(cache)
	}
	return attribution
}

// RecordLintPass marks every attempted lint target passed.
func (r *Recorder) RecordLintPass(cache domain.CacheMap, attempted []string) {
	for _, path := range attempted {
		r.put(cache, domain.LintKey(path), path, domain.StatusPassed, "")
	}
	r.store.Save(cache)
}

// RecordLintFailure caches each attempted lint target by membership in
// the extracted failed-file set. Attempted files the linter did not
// complain about are marked passed, so a later run only retries the
// offenders.
func (r *Recorder) RecordLintFailure(cache domain.CacheMap, attempted []string, cls domain.LintClassification) {
	failed := cls.FailedSet()
	for _, path := range attempted {
		if failed[normalize(path)] {
			r.put(cache, domain.LintKey(path), path, domain.StatusFailed, cls.Summary)
		} else {
			r.put(cache, domain.LintKey(path), path, domain.StatusPassed, "")
		}
	}
	r.store.Save(cache)
}

// put hashes the file at path and stores an entry under key. Files
// that cannot be hashed are left out of the cache entirely.
func (r *Recorder) put(cache domain.CacheMap, key, path string, status domain.CacheStatus, errText string) {
	hash := r.store.Hash(path)
	if hash == "" {
		r.logger.Warn("skipping cache entry for unreadable file: " + path)
		return
	}
	cache[key] = domain.CacheEntry{
		Hash:      hash,
		Status:    status,
		Timestamp: r.now().UnixMilli(),
		Error:     errText,
	}
}

func normalize(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}
