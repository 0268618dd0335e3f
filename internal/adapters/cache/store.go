// Package cache implements the durable fingerprint store backed by a
// flat JSON file.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"

	"sift/internal/core/domain"
	"sift/internal/core/ports"
)

var _ ports.FingerprintStore = (*Store)(nil)

// Store persists the file->outcome mapping at a fixed path. It performs
// no in-memory caching: the mapping is owned by the caller and threaded
// through the run, with every Save a full overwrite.
type Store struct {
	path   string
	logger ports.Logger
}

// NewStore creates a Store backed by the file at the given path.
func NewStore(path string, logger ports.Logger) *Store {
	return &Store{
		path:   filepath.Clean(path),
		logger: logger,
	}
}

// Hash computes the content digest of a file, or "" if it is unreadable.
func (s *Store) Hash(path string) string {
	f, err := os.Open(path) //nolint:gosec // Path comes from the status query
	if err != nil {
		return ""
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return ""
	}

	return fmt.Sprintf("%016x", hasher.Sum64())
}

// Load deserializes the persisted mapping. An absent or corrupt file
// degrades to an empty mapping; corruption is logged.
func (s *Store) Load() domain.CacheMap {
	cache := make(domain.CacheMap)

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("fingerprint store unreadable, starting empty: " + err.Error())
		}
		return cache
	}

	if len(data) == 0 {
		return cache
	}

	if err := json.Unmarshal(data, &cache); err != nil {
		s.logger.Warn("fingerprint store corrupt, starting empty: " + err.Error())
		return make(domain.CacheMap)
	}

	return cache
}

// Save overwrites the persisted mapping in full, creating the parent
// directory if needed. Failures are logged and swallowed; a skipped
// write must never abort the run.
func (s *Store) Save(cache domain.CacheMap) {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		s.logger.Warn("failed to marshal fingerprint store: " + err.Error())
		return
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		s.logger.Warn("failed to create fingerprint store directory: " + err.Error())
		return
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.logger.Warn("failed to write fingerprint store: " + err.Error())
	}
}

// Clear deletes the persisted mapping. A missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, "failed to clear fingerprint store"), "path", s.path)
	}
	return nil
}
