//go:build !windows

package runner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sift/internal/adapters/logger"
	"sift/internal/adapters/shell"
	"sift/internal/adapters/telemetry"
	"sift/internal/core/domain"
)

func newCoordinator() *Coordinator {
	return New(shell.NewRunner(logger.New()), logger.New())
}

func TestBuildJobs(t *testing.T) {
	cfg := domain.DefaultConfig()
	lintSel := domain.Selection{ToRun: []string{"src/a.ts", "src/b.html"}}
	testSel := domain.Selection{ToRun: []string{"src/a.spec.ts"}}

	jobs := BuildJobs(cfg, lintSel, testSel, false)
	require.Len(t, jobs, 2)

	assert.Equal(t, KindLint, jobs[0].Kind)
	assert.Equal(t, cfg.LintCommand[0], jobs[0].Command.Name)
	assert.Contains(t, jobs[0].Command.Args, "src/a.ts")
	assert.Contains(t, jobs[0].Command.Args, "src/b.html")

	assert.Equal(t, KindTest, jobs[1].Kind)
	assert.Contains(t, jobs[1].Command.Args, "--include=src/a.spec.ts")
}

func TestBuildJobs_LintDisabled(t *testing.T) {
	cfg := domain.DefaultConfig()
	lintSel := domain.Selection{ToRun: []string{"src/a.ts"}}
	testSel := domain.Selection{ToRun: []string{"src/a.spec.ts"}}

	jobs := BuildJobs(cfg, lintSel, testSel, true)
	require.Len(t, jobs, 1)
	assert.Equal(t, KindTest, jobs[0].Kind)
}

func TestBuildJobs_EmptySelections(t *testing.T) {
	jobs := BuildJobs(domain.DefaultConfig(), domain.Selection{}, domain.Selection{}, false)
	assert.Empty(t, jobs)
}

func TestRun_AllPass(t *testing.T) {
	c := newCoordinator()

	jobs := []Job{
		{Kind: KindLint, Name: "lint", Command: domain.Command{Name: "sh", Args: []string{"-c", "echo lint ok"}}},
		{Kind: KindTest, Name: "test", Command: domain.Command{Name: "sh", Args: []string{"-c", "echo test ok"}}},
	}

	results, err := c.Run(context.Background(), jobs, telemetry.NewNoop())
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.True(t, results[0].Outcome.Passed())
	assert.Contains(t, results[0].Outcome.Output, "lint ok")
	assert.True(t, results[1].Outcome.Passed())
	assert.Contains(t, results[1].Outcome.Output, "test ok")
}

func TestRun_RecordsExitCode(t *testing.T) {
	c := newCoordinator()

	jobs := []Job{
		{Kind: KindTest, Name: "test", Command: domain.Command{Name: "sh", Args: []string{"-c", "echo boom; exit 7"}}},
	}

	results, err := c.Run(context.Background(), jobs, telemetry.NewNoop())
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.False(t, results[0].Outcome.Passed())
	assert.Equal(t, 7, results[0].Outcome.ExitCode)
	assert.Contains(t, results[0].Outcome.Output, "boom")
}

func TestRun_FailureTerminatesSiblings(t *testing.T) {
	c := newCoordinator()

	jobs := []Job{
		{Kind: KindLint, Name: "lint", Command: domain.Command{Name: "sh", Args: []string{"-c", "exit 1"}}},
		{Kind: KindTest, Name: "test", Command: domain.Command{Name: "sh", Args: []string{"-c", "sleep 30"}}},
	}

	start := time.Now()
	results, err := c.Run(context.Background(), jobs, telemetry.NewNoop())
	require.NoError(t, err)

	assert.Less(t, time.Since(start), 10*time.Second, "sleeping sibling should be terminated, not awaited")
	assert.False(t, results[0].Outcome.Passed())
	assert.False(t, results[1].Outcome.Passed())
}

func TestRun_LaunchFailure(t *testing.T) {
	c := newCoordinator()

	jobs := []Job{
		{Kind: KindTest, Name: "test", Command: domain.Command{Name: "definitely-not-a-binary-xyz"}},
	}

	_, err := c.Run(context.Background(), jobs, telemetry.NewNoop())
	assert.Error(t, err)
}

func TestRun_LaunchFailureTerminatesLaunchedJobs(t *testing.T) {
	c := newCoordinator()

	jobs := []Job{
		{Kind: KindLint, Name: "lint", Command: domain.Command{Name: "sh", Args: []string{"-c", "sleep 30"}}},
		{Kind: KindTest, Name: "test", Command: domain.Command{Name: "definitely-not-a-binary-xyz"}},
	}

	start := time.Now()
	_, err := c.Run(context.Background(), jobs, telemetry.NewNoop())
	require.Error(t, err)
	assert.Less(t, time.Since(start), 10*time.Second,
		"already-launched job must be terminated and awaited, not orphaned")
}
