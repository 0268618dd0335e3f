package recorder_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sift/internal/adapters/cache"
	"sift/internal/adapters/logger"
	"sift/internal/core/domain"
	"sift/internal/engine/classify"
	"sift/internal/engine/recorder"
)

type fixture struct {
	dir   string
	store *cache.Store
	rec   *recorder.Recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	cfg := domain.DefaultConfig()
	store := cache.NewStore(filepath.Join(dir, "cache.json"), logger.New())
	return &fixture{
		dir:   dir,
		store: store,
		rec:   recorder.New(store, classify.New(cfg), cfg, logger.New()),
	}
}

func (f *fixture) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRecordTestPass_CachesSpecAndSource(t *testing.T) {
	f := newFixture(t)
	src := f.write(t, "foo.component.ts", "class Foo {}")
	spec := f.write(t, "foo.component.spec.ts", "describe('Foo')")

	cacheMap := domain.CacheMap{}
	f.rec.RecordTestPass(cacheMap, []string{spec})

	require.Contains(t, cacheMap, spec)
	assert.Equal(t, domain.StatusPassed, cacheMap[spec].Status)
	assert.Equal(t, f.store.Hash(spec), cacheMap[spec].Hash)

	require.Contains(t, cacheMap, domain.SourceKey(src))
	assert.Equal(t, domain.StatusPassed, cacheMap[domain.SourceKey(src)].Status)

	// Persisted, not just mutated in memory.
	reloaded := f.store.Load()
	assert.Contains(t, reloaded, spec)
}

func TestRecordTestPass_SkipsMissingSource(t *testing.T) {
	f := newFixture(t)
	spec := f.write(t, "orphan.spec.ts", "describe('Orphan')")

	cacheMap := domain.CacheMap{}
	f.rec.RecordTestPass(cacheMap, []string{spec})

	assert.Contains(t, cacheMap, spec)
	src := filepath.Join(f.dir, "orphan.ts")
	assert.NotContains(t, cacheMap, domain.SourceKey(src))
}

func TestRecordTestFailure_Ordinary_CachesAllAttempted(t *testing.T) {
	f := newFixture(t)
	fooSpec := f.write(t, "foo.component.spec.ts", "describe('Foo')")
	barSpec := f.write(t, "bar.component.spec.ts", "describe('Bar')")

	cls := domain.TestClassification{
		Kind:    domain.FailureOrdinary,
		Excerpt: "FAILED FooComponent should render\nTOTAL: 1 FAILED, 3 SUCCESS",
	}

	cacheMap := domain.CacheMap{}
	attribution := f.rec.RecordTestFailure(cacheMap, []string{fooSpec, barSpec}, cls)

	require.Contains(t, cacheMap, fooSpec)
	require.Contains(t, cacheMap, barSpec)
	assert.Equal(t, domain.StatusFailed, cacheMap[fooSpec].Status)
	assert.Equal(t, domain.StatusFailed, cacheMap[barSpec].Status)
	assert.NotEmpty(t, cacheMap[fooSpec].Error)
	assert.Contains(t, attribution, fooSpec)
	assert.Contains(t, attribution, barSpec)
}

func TestRecordTestFailure_Compile_CachesOnlyMentionedFiles(t *testing.T) {
	f := newFixture(t)
	fooSpec := f.write(t, "foo.component.spec.ts", "describe('Foo')")
	barSpec := f.write(t, "bar.component.spec.ts", "describe('Bar')")

	cls := domain.TestClassification{
		Kind:    domain.FailureCompile,
		Excerpt: "ERROR in " + fooSpec + ":12:3 - error TS2304: Cannot find name 'Fo'.",
	}

	cacheMap := domain.CacheMap{}
	attribution := f.rec.RecordTestFailure(cacheMap, []string{fooSpec, barSpec}, cls)

	assert.Contains(t, cacheMap, fooSpec)
	assert.NotContains(t, cacheMap, barSpec, "unmentioned spec keeps its prior state")
	assert.Contains(t, attribution, fooSpec)
	assert.NotContains(t, attribution, barSpec)
}

func TestRecordTestFailure_Incomplete_WritesNothing(t *testing.T) {
	f := newFixture(t)
	spec := f.write(t, "foo.component.spec.ts", "describe('Foo')")

	cls := domain.TestClassification{Kind: domain.FailureIncomplete}

	cacheMap := domain.CacheMap{}
	attribution := f.rec.RecordTestFailure(cacheMap, []string{spec}, cls)

	assert.Empty(t, cacheMap)
	assert.Empty(t, attribution)
	assert.Empty(t, f.store.Load())
}

func TestRecordLintFailure_SplitsBySetMembership(t *testing.T) {
	f := newFixture(t)
	bad := f.write(t, "bad.ts", "var x = 1")
	good := f.write(t, "good.ts", "const y = 2")

	cls := domain.LintClassification{
		Summary:     "12:3 error no-var " + bad,
		FailedFiles: []string{bad},
	}

	cacheMap := domain.CacheMap{}
	f.rec.RecordLintFailure(cacheMap, []string{bad, good}, cls)

	require.Contains(t, cacheMap, domain.LintKey(bad))
	require.Contains(t, cacheMap, domain.LintKey(good))
	assert.Equal(t, domain.StatusFailed, cacheMap[domain.LintKey(bad)].Status)
	assert.Equal(t, domain.StatusPassed, cacheMap[domain.LintKey(good)].Status)
	assert.NotEmpty(t, cacheMap[domain.LintKey(bad)].Error)
	assert.Empty(t, cacheMap[domain.LintKey(good)].Error)
}

func TestRecordLintPass(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "clean.ts", "const z = 3")

	cacheMap := domain.CacheMap{}
	f.rec.RecordLintPass(cacheMap, []string{path})

	require.Contains(t, cacheMap, domain.LintKey(path))
	assert.Equal(t, domain.StatusPassed, cacheMap[domain.LintKey(path)].Status)
}

func TestRecord_SkipsUnreadableFiles(t *testing.T) {
	f := newFixture(t)
	missing := filepath.Join(f.dir, "gone.spec.ts")

	cacheMap := domain.CacheMap{}
	f.rec.RecordTestPass(cacheMap, []string{missing})

	assert.Empty(t, cacheMap)
}
