package selector_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"sift/internal/adapters/cache"
	"sift/internal/adapters/logger"
	"sift/internal/core/domain"
	"sift/internal/engine/selector"
)

type fixture struct {
	dir   string
	store *cache.Store
	sel   *selector.Selector
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	store := cache.NewStore(filepath.Join(dir, "cache.json"), logger.New())
	return &fixture{
		dir:   dir,
		store: store,
		sel:   selector.New(store, domain.DefaultConfig(), logger.New()),
	}
}

func (f *fixture) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (f *fixture) entry(path string) domain.CacheEntry {
	return domain.CacheEntry{Hash: f.store.Hash(path), Status: domain.StatusPassed}
}

func modified(paths ...string) []domain.ChangeRecord {
	records := make([]domain.ChangeRecord, len(paths))
	for i, p := range paths {
		records[i] = domain.ChangeRecord{StatusCode: " M", Path: p, Type: domain.ChangeModified}
	}
	return records
}

func TestSelectTests_Idempotent(t *testing.T) {
	f := newFixture(t)
	src := f.write(t, "foo.component.ts", "class Foo {}")
	spec := f.write(t, "foo.component.spec.ts", "describe('Foo')")

	cacheMap := domain.CacheMap{
		spec:                  f.entry(spec),
		domain.SourceKey(src): f.entry(src),
	}

	sel := f.sel.SelectTests(modified(spec), cacheMap)
	require.Empty(t, sel.ToRun)
	require.Equal(t, []string{spec}, sel.Cached)
}

func TestSelectTests_HashSensitivity(t *testing.T) {
	f := newFixture(t)
	spec := f.write(t, "foo.component.spec.ts", "describe('Foo')")

	cacheMap := domain.CacheMap{spec: f.entry(spec)}

	// One-byte change invalidates exactly this spec.
	f.write(t, "foo.component.spec.ts", "describe('Foo');")

	sel := f.sel.SelectTests(modified(spec), cacheMap)
	require.Equal(t, []string{spec}, sel.ToRun)
	require.Empty(t, sel.Cached)
}

func TestSelectTests_SourceTriggersSpec(t *testing.T) {
	f := newFixture(t)
	src := f.write(t, "a.ts", "export const a = 1")
	spec := f.write(t, "a.spec.ts", "describe('a')")

	// Spec entry is current, but the companion source has no entry.
	cacheMap := domain.CacheMap{spec: f.entry(spec)}

	sel := f.sel.SelectTests(modified(src), cacheMap)
	require.Equal(t, []string{spec}, sel.ToRun)
}

func TestSelectTests_SourceHashMismatchTriggersSpec(t *testing.T) {
	f := newFixture(t)
	src := f.write(t, "a.ts", "export const a = 1")
	spec := f.write(t, "a.spec.ts", "describe('a')")

	cacheMap := domain.CacheMap{
		spec:                  f.entry(spec),
		domain.SourceKey(src): {Hash: "stale", Status: domain.StatusPassed},
	}

	sel := f.sel.SelectTests(modified(spec), cacheMap)
	require.Equal(t, []string{spec}, sel.ToRun)
}

func TestSelectTests_MissingSpecFiltered(t *testing.T) {
	f := newFixture(t)
	src := f.write(t, "lonely.service.ts", "class Lonely {}")

	sel := f.sel.SelectTests(modified(src), domain.CacheMap{})
	require.True(t, sel.Empty())
}

func TestSelectTests_Dedupe(t *testing.T) {
	f := newFixture(t)
	src := f.write(t, "b.ts", "x")
	spec := f.write(t, "b.spec.ts", "y")

	// Both the source and its spec changed; the spec appears once.
	sel := f.sel.SelectTests(modified(src, spec), domain.CacheMap{})
	require.Equal(t, []string{spec}, sel.ToRun)
}

func TestSelectLint_ContentOnly(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "foo.component.ts", "class Foo {}")

	// A previously failing file with unchanged content stays cached.
	cacheMap := domain.CacheMap{
		domain.LintKey(path): {Hash: f.store.Hash(path), Status: domain.StatusFailed, Error: "1:1 error"},
	}

	sel := f.sel.SelectLint(modified(path), cacheMap)
	require.Empty(t, sel.ToRun)
	require.Equal(t, []string{path}, sel.Cached)
}

func TestSelectLint_ChangedContentRuns(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "foo.component.ts", "class Foo {}")

	cacheMap := domain.CacheMap{
		domain.LintKey(path): {Hash: "stale", Status: domain.StatusPassed},
	}

	sel := f.sel.SelectLint(modified(path), cacheMap)
	require.Equal(t, []string{path}, sel.ToRun)
}

func TestSelectLint_ExtensionFilter(t *testing.T) {
	f := newFixture(t)
	ts := f.write(t, "a.ts", "x")
	html := f.write(t, "a.html", "<div/>")
	png := f.write(t, "logo.png", "binary")

	sel := f.sel.SelectLint(modified(ts, html, png), domain.CacheMap{})
	require.Equal(t, []string{ts, html}, sel.ToRun)
}

func TestSelectLint_EmptyChanges(t *testing.T) {
	f := newFixture(t)
	sel := f.sel.SelectLint(nil, domain.CacheMap{})
	require.True(t, sel.Empty())
}
