package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tk-425/caller-cli/internal/executor"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "caller.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestRecordAndList(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	_, err := repo.Record(ctx, Run{Name: "build", CommandLine: "npm run build", Launched: true, StartedAt: started, Duration: 1500 * time.Millisecond})
	require.NoError(t, err)
	_, err = repo.Record(ctx, Run{Name: "test", CommandLine: "go test ./...", Launched: true, ExitCode: 1})
	require.NoError(t, err)
	_, err = repo.Record(ctx, Run{Name: "build", CommandLine: "npm run build", Reason: "exec: \"npm\": not found", ExitCode: -1})
	require.NoError(t, err)

	all, err := repo.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "build", all[0].Name)
	assert.False(t, all[0].Launched)
	assert.Equal(t, "test", all[1].Name)
	assert.False(t, all[1].Success())
	assert.Equal(t, "run", all[2].Source)
	assert.True(t, all[2].Success())
	assert.True(t, started.Equal(all[2].StartedAt))
	assert.Equal(t, 1500*time.Millisecond, all[2].Duration)

	builds, err := repo.List(ctx, "build", 1)
	require.NoError(t, err)
	require.Len(t, builds, 1)
	assert.Equal(t, all[0].ID, builds[0].ID)
}

func TestLastRun(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	_, ok, err := repo.LastRun(ctx, "build")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.Record(ctx, Run{Name: "build", CommandLine: "make", Launched: true, ExitCode: 2})
	require.NoError(t, err)

	run, ok, err := repo.LastRun(ctx, "build")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, run.ExitCode)
}

func TestClear(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Record(ctx, Run{Name: "x", CommandLine: "echo x", Launched: true})
		require.NoError(t, err)
	}

	n, err := repo.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	all, err := repo.List(ctx, "", 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

type stubRunner struct{ out executor.Outcome }

func (s stubRunner) Run(context.Context, executor.Request) executor.Outcome { return s.out }

func TestRecordingRunner(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	r := &RecordingRunner{Next: stubRunner{out: executor.Completed(3)}, Repo: repo, Log: zerolog.Nop()}
	out := r.Run(ctx, executor.Request{Name: "deploy", Source: "run", Program: "make", Args: []string{"deploy"}})
	assert.Equal(t, 3, out.ExitCode)

	run, ok, err := repo.LastRun(ctx, "deploy")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "make deploy", run.CommandLine)
	assert.Equal(t, 3, run.ExitCode)
	assert.True(t, run.Launched)
}

func TestRecordingRunner_RecordFailureKeepsOutcome(t *testing.T) {
	repo := openTestRepo(t)
	require.NoError(t, repo.Close())

	r := &RecordingRunner{Next: stubRunner{out: executor.Completed(0)}, Repo: repo, Log: zerolog.Nop()}
	out := r.Run(context.Background(), executor.Request{Name: "x", Program: "true"})
	assert.True(t, out.Success())
}
