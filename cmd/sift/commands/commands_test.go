package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sift/cmd/sift/commands"
	"sift/internal/app"
)

// fakeChecker records how the CLI drives the application.
type fakeChecker struct {
	runCalls   []app.Options
	clearCalls int
	runErr     error
}

func (f *fakeChecker) Run(_ context.Context, opts app.Options) error {
	f.runCalls = append(f.runCalls, opts)
	return f.runErr
}

func (f *fakeChecker) ClearCache() error {
	f.clearCalls++
	return nil
}

func execute(t *testing.T, f *fakeChecker, args ...string) error {
	t.Helper()
	cli := commands.New(f)
	cli.SetArgs(args)
	return cli.Execute(context.Background())
}

func TestRoot_RunsChecksByDefault(t *testing.T) {
	f := &fakeChecker{}
	require.NoError(t, execute(t, f))
	require.Len(t, f.runCalls, 1)
	assert.Equal(t, app.Options{}, f.runCalls[0])
}

func TestRoot_FlagMapping(t *testing.T) {
	f := &fakeChecker{}
	require.NoError(t, execute(t, f, "--disable-lint", "--disable-cache", "--debug", "--quiet"))
	require.Len(t, f.runCalls, 1)
	assert.Equal(t, app.Options{
		DisableLint:  true,
		DisableCache: true,
		Debug:        true,
		Quiet:        true,
	}, f.runCalls[0])
}

func TestRoot_ClearCacheShortCircuits(t *testing.T) {
	f := &fakeChecker{}
	require.NoError(t, execute(t, f, "--clear-cache"))
	assert.Equal(t, 1, f.clearCalls)
	assert.Empty(t, f.runCalls, "clearing the cache must not start a run")
}

func TestRoot_PropagatesRunError(t *testing.T) {
	f := &fakeChecker{runErr: assert.AnError}
	err := execute(t, f)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestRoot_RejectsPositionalArgs(t *testing.T) {
	f := &fakeChecker{}
	assert.Error(t, execute(t, f, "unexpected"))
	assert.Empty(t, f.runCalls)
}

func TestVersionCommand(t *testing.T) {
	f := &fakeChecker{}
	require.NoError(t, execute(t, f, "version"))
	assert.Empty(t, f.runCalls)
}
