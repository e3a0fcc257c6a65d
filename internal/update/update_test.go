package update

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tk-425/caller-cli/internal/apperr"
	"github.com/tk-425/caller-cli/internal/executor"
)

type scriptedRunner struct {
	fail map[string]executor.Outcome
	ran  []string
}

func (s *scriptedRunner) Run(_ context.Context, req executor.Request) executor.Outcome {
	s.ran = append(s.ran, req.Name)
	if out, ok := s.fail[req.Name]; ok {
		return out
	}
	return executor.Completed(0)
}

func TestSteps(t *testing.T) {
	p := Plan{RepoDir: "/src/caller", Remote: "origin", Branch: "main"}
	steps := p.Steps()

	require.Len(t, steps, 3)
	assert.Equal(t, "git -C /src/caller reset --hard", steps[0].CommandLine())
	assert.Equal(t, "git -C /src/caller pull origin main", steps[1].CommandLine())
	assert.Equal(t, "go -C /src/caller install ./cmd/caller", steps[2].CommandLine())
}

func TestRun_AllSteps(t *testing.T) {
	r := &scriptedRunner{}
	p := Plan{RepoDir: t.TempDir(), Remote: "origin", Branch: "main"}

	var msgs []string
	err := Run(context.Background(), r, p, func(req executor.Request, out executor.Outcome) {
		msgs = append(msgs, out.Message(req))
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"update reset", "update pull", "update install"}, r.ran)
	assert.Equal(t, "Caller CLI successfully updated.", msgs[1])
}

func TestRun_AbortsOnFirstFailure(t *testing.T) {
	r := &scriptedRunner{fail: map[string]executor.Outcome{"update pull": executor.Completed(1)}}
	p := Plan{RepoDir: t.TempDir(), Remote: "origin", Branch: "main"}

	err := Run(context.Background(), r, p, nil)
	require.ErrorIs(t, err, apperr.ErrNonZeroExit)
	assert.Contains(t, err.Error(), "Caller CLI update failed.")
	assert.Equal(t, []string{"update reset", "update pull"}, r.ran)
}

func TestRun_MissingCheckout(t *testing.T) {
	r := &scriptedRunner{}
	p := Plan{RepoDir: filepath.Join(t.TempDir(), "missing")}

	err := Run(context.Background(), r, p, nil)
	require.ErrorIs(t, err, apperr.ErrInvalidInput)
	assert.Empty(t, r.ran)
}
