package domain

// CacheStatus is the persisted outcome of a tracked file.
type CacheStatus string

const (
	// StatusPassed marks a file whose last run succeeded.
	StatusPassed CacheStatus = "passed"
	// StatusFailed marks a file whose last run failed.
	StatusFailed CacheStatus = "failed"
)

// CacheEntry is the persisted fingerprint record for a tracked file.
type CacheEntry struct {
	Hash      string      `json:"hash"`
	Status    CacheStatus `json:"status"`
	Timestamp int64       `json:"timestamp"`
	Error     string      `json:"error,omitempty"`
}

// CacheMap is the full persisted mapping. Keys live in three namespaces:
// the bare relative path for spec files, "source:<path>" for companion
// sources, and "lint:<path>" for lint targets.
type CacheMap map[string]CacheEntry

// SourceKey returns the cache key for a companion source file.
func SourceKey(path string) string {
	return "source:" + path
}

// LintKey returns the cache key for a lint target.
func LintKey(path string) string {
	return "lint:" + path
}
