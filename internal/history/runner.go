package history

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tk-425/caller-cli/internal/executor"
)

// RecordingRunner records every run of the wrapped Runner. A failed insert
// is logged and never changes the outcome.
type RecordingRunner struct {
	Next executor.Runner
	Repo *Repository
	Log  zerolog.Logger
}

var _ executor.Runner = (*RecordingRunner)(nil)

func (r *RecordingRunner) Run(ctx context.Context, req executor.Request) executor.Outcome {
	start := time.Now()
	out := r.Next.Run(ctx, req)

	name := req.Name
	if name == "" {
		name = req.Program
	}
	dur := out.Duration
	if dur == 0 {
		dur = time.Since(start)
	}
	_, err := r.Repo.Record(ctx, Run{
		Name:        name,
		Source:      req.Source,
		CommandLine: req.CommandLine(),
		Launched:    out.Launched(),
		ExitCode:    out.ExitCode,
		Reason:      out.Reason,
		StartedAt:   start,
		Duration:    dur,
	})
	if err != nil {
		r.Log.Warn().Err(err).Str("name", name).Msg("record run")
	}
	return out
}
