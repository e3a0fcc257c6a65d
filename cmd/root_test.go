package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tk-425/caller-cli/internal/apperr"
	"github.com/tk-425/caller-cli/internal/executor"
	"github.com/tk-425/caller-cli/internal/prompt"
	"github.com/tk-425/caller-cli/internal/version"
)

func TestRoot_RunsSavedCommand(t *testing.T) {
	env := setupCLI(t, rootCmd)
	env.seed(t, map[string]string{"hi": "echo hello world"})

	require.NoError(t, rootCmd.RunE(rootCmd, []string{"hi"}))
	require.Len(t, env.runner.requests, 1)
	req := env.runner.requests[0]
	assert.Equal(t, "echo", req.Program)
	assert.Equal(t, []string{"hello", "world"}, req.Args)
	assert.Equal(t, "run", req.Source)
	assert.Contains(t, env.out.String(), "Running:")
}

func TestRoot_NotFound(t *testing.T) {
	env := setupCLI(t, rootCmd)
	env.seed(t, map[string]string{"hi": "echo hello"})

	err := rootCmd.RunE(rootCmd, []string{"nope"})
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	assert.Empty(t, env.runner.requests)
}

func TestRoot_NotFoundSuggests(t *testing.T) {
	env := setupCLI(t, rootCmd)
	env.seed(t, map[string]string{"build": "make", "test": "go test ./..."})

	err := rootCmd.RunE(rootCmd, []string{"buld"})
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "Did you mean 'build'?")
}

func TestRoot_DestructiveNeedsForce(t *testing.T) {
	env := setupCLI(t, rootCmd)
	env.seed(t, map[string]string{"wipe": "rm -rf /"})

	err := rootCmd.RunE(rootCmd, []string{"wipe"})
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))
	assert.Empty(t, env.runner.requests)

	setFlag(t, rootCmd, "force", "true")
	setFlag(t, rootCmd, "dry-run", "true")
	require.NoError(t, rootCmd.RunE(rootCmd, []string{"wipe"}))
	require.Len(t, env.runner.requests, 1)
	assert.True(t, env.runner.dry)
}

func TestRoot_NonZeroExitIsError(t *testing.T) {
	env := setupCLI(t, rootCmd)
	env.seed(t, map[string]string{"bad": "false"})
	env.runner.outcomes = []executor.Outcome{executor.Completed(3)}

	err := rootCmd.RunE(rootCmd, []string{"bad"})
	assert.Equal(t, apperr.NonZeroExit, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "exit code 3")
}

func TestRoot_LaunchFailure(t *testing.T) {
	env := setupCLI(t, rootCmd)
	env.seed(t, map[string]string{"ghost": "no-such-program"})
	env.runner.outcomes = []executor.Outcome{executor.LaunchFailed("executable file not found")}

	err := rootCmd.RunE(rootCmd, []string{"ghost"})
	assert.Equal(t, apperr.LaunchFailed, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "Failed to start 'no-such-program'")
}

func TestRoot_NoArgsPrintsHelp(t *testing.T) {
	env := setupCLI(t, rootCmd)

	require.NoError(t, rootCmd.RunE(rootCmd, nil))
	assert.Contains(t, env.out.String(), "caller add build npm run build")
}

func TestRoot_RecordsHistoryWhenEnabled(t *testing.T) {
	env := setupCLI(t, rootCmd)
	t.Setenv("CALLER_HISTORY_ENABLED", "true")
	env.seed(t, map[string]string{"hi": "echo hi"})

	require.NoError(t, rootCmd.RunE(rootCmd, []string{"hi"}))

	historyCmd.SetOut(env.out)
	t.Cleanup(func() { historyCmd.SetOut(nil) })
	env.out.Reset()
	require.NoError(t, historyCmd.RunE(historyCmd, nil))
	assert.Contains(t, env.out.String(), "echo hi")
	assert.Contains(t, env.out.String(), "ok")
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		out  string
	}{
		{"nil", nil, 0, ""},
		{"interrupted", apperr.New(apperr.PromptInterrupted, "interrupted"), 0, "Process interrupted by user."},
		{"not found", apperr.New(apperr.NotFound, "No command found with the name 'x'"), 1, "No command found with the name 'x'"},
		{"plain", errors.New("boom"), 1, "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.Equal(t, tt.code, handleError(&buf, tt.err))
			if tt.out == "" {
				assert.Empty(t, buf.String())
			} else {
				assert.Contains(t, buf.String(), tt.out)
			}
		})
	}
}

func TestReservedNames(t *testing.T) {
	names := reservedNames()
	for _, n := range []string{"add", "remove", "rm", "rename", "list", "git", "ai", "del", "update", "history", "version", "help", "completion", prompt.Exit} {
		assert.Contains(t, names, n)
	}
}

func TestVersion(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, version.String()+"\n", buf.String())
}
