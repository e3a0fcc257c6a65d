// Package update rebuilds caller from its local source checkout.
package update

import (
	"context"
	"fmt"
	"os"

	"github.com/tk-425/caller-cli/internal/apperr"
	"github.com/tk-425/caller-cli/internal/executor"
)

// Plan says where the checkout lives and how to rebuild it.
type Plan struct {
	RepoDir     string
	Remote      string
	Branch      string
	InstallArgs []string
	GitPath     string
	GoPath      string
}

// Steps returns the update sequence: reset, pull, then install.
func (p Plan) Steps() []executor.Request {
	git := p.GitPath
	if git == "" {
		git = "git"
	}
	goBin := p.GoPath
	if goBin == "" {
		goBin = "go"
	}
	install := p.InstallArgs
	if len(install) == 0 {
		install = []string{"./cmd/caller"}
	}

	return []executor.Request{
		{
			Name:           "update reset",
			Source:         "update",
			Program:        git,
			Args:           []string{"-C", p.RepoDir, "reset", "--hard"},
			SuccessMessage: "Local changes discarded.",
			FailureMessage: "Failed to reset the Caller CLI checkout.",
		},
		{
			Name:           "update pull",
			Source:         "update",
			Program:        git,
			Args:           []string{"-C", p.RepoDir, "pull", p.Remote, p.Branch},
			SuccessMessage: "Caller CLI successfully updated.",
			FailureMessage: "Caller CLI update failed.",
		},
		{
			Name:           "update install",
			Source:         "update",
			Program:        goBin,
			Args:           append([]string{"-C", p.RepoDir, "install"}, install...),
			SuccessMessage: "Caller CLI successfully installed.",
			FailureMessage: "Caller CLI installation failed.",
		},
	}
}

// Check verifies the checkout directory exists.
func (p Plan) Check() error {
	if p.RepoDir == "" {
		return apperr.New(apperr.InvalidInput, "update.repo_dir is not set.")
	}
	info, err := os.Stat(p.RepoDir)
	if err != nil {
		return apperr.Wrap(apperr.InvalidInput, err, fmt.Sprintf("Caller CLI source not found at %s", p.RepoDir))
	}
	if !info.IsDir() {
		return apperr.New(apperr.InvalidInput, "%s is not a directory.", p.RepoDir)
	}
	return nil
}

// Run checks the plan and runs its steps in order, stopping at the first
// failing step. report is called after each step.
func Run(ctx context.Context, r executor.Runner, p Plan, report executor.Report) error {
	if err := p.Check(); err != nil {
		return err
	}
	return executor.RunSequence(ctx, r, p.Steps(), report)
}
