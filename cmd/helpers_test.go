package cmd

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/tk-425/caller-cli/internal/ai"
	"github.com/tk-425/caller-cli/internal/executil"
	"github.com/tk-425/caller-cli/internal/executor"
	"github.com/tk-425/caller-cli/internal/prompt"
	"github.com/tk-425/caller-cli/internal/store"
)

// fakeRunner records requests instead of starting processes.
type fakeRunner struct {
	dry      bool
	requests []executor.Request
	// outcomes are returned in order; once exhausted every run succeeds
	outcomes []executor.Outcome
}

func (f *fakeRunner) Run(_ context.Context, req executor.Request) executor.Outcome {
	f.requests = append(f.requests, req)
	if len(f.outcomes) == 0 {
		return executor.Completed(0)
	}
	out := f.outcomes[0]
	f.outcomes = f.outcomes[1:]
	return out
}

func (f *fakeRunner) lines() []string {
	lines := make([]string, 0, len(f.requests))
	for _, r := range f.requests {
		lines = append(lines, r.CommandLine())
	}
	return lines
}

// fakeResolver answers every question with the next scripted reply.
type fakeResolver struct {
	replies   []string
	questions []string
}

func (f *fakeResolver) Ask(_ context.Context, question string) (string, error) {
	f.questions = append(f.questions, question)
	if len(f.replies) == 0 {
		return "", nil
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return r, nil
}

type testEnv struct {
	dir      string
	out      *bytes.Buffer
	prompt   *prompt.Fake
	runner   *fakeRunner
	git      *executil.RecordingExecutor
	resolver *fakeResolver
}

func (e *testEnv) store() *store.Store {
	return store.New(filepath.Join(e.dir, "caller-cli-commands.json"))
}

// setupCLI points caller at a fresh data dir and swaps every process,
// prompt and network seam for a fake. answers script the prompts in order.
func setupCLI(t *testing.T, c *cobra.Command, answers ...any) *testEnv {
	t.Helper()
	env := &testEnv{
		dir:      t.TempDir(),
		out:      &bytes.Buffer{},
		prompt:   &prompt.Fake{Answers: answers},
		runner:   &fakeRunner{},
		git:      &executil.RecordingExecutor{},
		resolver: &fakeResolver{},
	}
	t.Setenv("CALLER_HOME", env.dir)
	t.Setenv("CALLER_HISTORY_ENABLED", "false")

	oldPrompter, oldRunner, oldGit, oldResolver := newPrompter, newProcessRunner, newGitExecutor, newResolver
	newPrompter = func(*cobra.Command) prompt.Prompter { return env.prompt }
	newProcessRunner = func(_ *cobra.Command, dry bool, _ zerolog.Logger) executor.Runner {
		env.runner.dry = dry
		return env.runner
	}
	newGitExecutor = func() executil.Executor { return env.git }
	newResolver = func(context.Context, *app, string, io.Writer) (ai.Resolver, error) {
		return env.resolver, nil
	}

	c.SetOut(env.out)
	c.SetErr(env.out)
	c.SetIn(&bytes.Buffer{})
	t.Cleanup(func() {
		newPrompter, newProcessRunner, newGitExecutor, newResolver = oldPrompter, oldRunner, oldGit, oldResolver
		c.SetOut(nil)
		c.SetErr(nil)
		c.SetIn(nil)
	})
	return env
}

// setFlag sets a flag on c for the duration of the test.
func setFlag(t *testing.T, c *cobra.Command, name, value string) {
	t.Helper()
	f := c.Flags().Lookup(name)
	require.NotNil(t, f, "flag %s", name)
	old := f.Value.String()
	require.NoError(t, c.Flags().Set(name, value))
	t.Cleanup(func() {
		_ = c.Flags().Set(name, old)
		f.Changed = false
	})
}

// seed saves commands directly in the test store.
func (e *testEnv) seed(t *testing.T, m map[string]string) {
	t.Helper()
	require.NoError(t, e.store().Save(m))
}
