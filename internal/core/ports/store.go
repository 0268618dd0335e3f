package ports

import "sift/internal/core/domain"

// FingerprintStore persists the file->outcome cache and computes content
// fingerprints.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type FingerprintStore interface {
	// Hash returns the content digest for path, or "" if unreadable.
	Hash(path string) string

	// Load deserializes the persisted mapping. Absent or corrupt files
	// degrade to an empty mapping.
	Load() domain.CacheMap

	// Save overwrites the persisted mapping in full. Write failures are
	// logged and swallowed.
	Save(cache domain.CacheMap)

	// Clear deletes the persisted mapping.
	Clear() error
}
