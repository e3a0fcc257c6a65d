package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tk-425/caller-cli/internal/gitcli"
	"github.com/tk-425/caller-cli/internal/logging"
	"github.com/tk-425/caller-cli/internal/prompt"
)

// Git menu entries.
const (
	gitAddAll         = "Add All"
	gitCommit         = "Commit"
	gitListBranches   = "List Branches"
	gitCreateBranch   = "Create Branch"
	gitPushCurrent    = "Push to current branch"
	gitPushSelectable = "Select branch to push"
)

var gitOptions = []string{
	gitAddAll,
	gitCommit,
	gitListBranches,
	gitCreateBranch,
	gitPushCurrent,
	gitPushSelectable,
}

var gitCmd = &cobra.Command{
	Use:   "git",
	Short: "Open the git menu",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		a.out.Title("- GIT COMMANDS -")

		choice, err := prompt.Menu(a.prompt, "Select a git command", gitOptions)
		if err != nil {
			return err
		}

		m := &gitMenu{
			cmd:    cmd,
			a:      a,
			client: gitcli.New(a.cfg.Git.Path, "", newGitExecutor()),
			remote: a.cfg.Git.Remote,
		}
		a.log.Debug().Str("choice", choice).Msg("git menu")

		switch choice {
		case gitAddAll:
			return m.addAll()
		case gitCommit:
			return m.commit()
		case gitListBranches:
			return m.switchBranch()
		case gitCreateBranch:
			return m.createBranch()
		case gitPushCurrent:
			return m.pushCurrent()
		case gitPushSelectable:
			return m.pushSelected()
		default:
			a.out.Infof(ClosingMessage)
			return nil
		}
	}),
}

type gitMenu struct {
	cmd    *cobra.Command
	a      *app
	client *gitcli.Client
	remote string
}

func (m *gitMenu) addAll() error {
	if err := prompt.ConfirmOrCancel(m.a.prompt, "Are you sure you want to add all?", "Git added cancelled."); err != nil {
		return err
	}
	req := m.client.AddAllRequest()
	return m.a.report(req, m.a.runner(m.cmd, false).Run(ctxOf(m.cmd), req))
}

func (m *gitMenu) commit() error {
	msg, err := m.a.prompt.Input("Commit Message:")
	if err != nil {
		return err
	}
	req, err := m.client.CommitRequest(msg)
	if err != nil {
		return err
	}
	if err := prompt.ConfirmOrCancel(m.a.prompt, fmt.Sprintf("Are you sure you want to commit with %q?", msg), "Git commit cancelled."); err != nil {
		return err
	}
	return m.a.report(req, m.a.runner(m.cmd, false).Run(ctxOf(m.cmd), req))
}

func (m *gitMenu) createBranch() error {
	name, err := m.a.prompt.Input("Create a new branch name:")
	if err != nil {
		return err
	}
	req, err := m.client.CreateBranchRequest(name)
	if err != nil {
		return err
	}
	if err := prompt.ConfirmOrCancel(m.a.prompt, fmt.Sprintf("Are you sure you want to create a branch named %q?", name), "Git branch creation cancelled."); err != nil {
		return err
	}
	return m.a.report(req, m.a.runner(m.cmd, false).Run(ctxOf(m.cmd), req))
}

// pickBranch lists local branches; ok is false when the user chose EXIT.
func (m *gitMenu) pickBranch() (branch string, ok bool, err error) {
	branches, err := m.client.Branches(ctxOf(m.cmd))
	if err != nil {
		return "", false, err
	}
	branch, err = prompt.Menu(m.a.prompt, "Select a branch", branches)
	if err != nil {
		return "", false, err
	}
	if branch == prompt.Exit {
		m.a.out.Infof(ClosingMessage)
		return "", false, nil
	}
	return branch, true, nil
}

func (m *gitMenu) switchBranch() error {
	branch, ok, err := m.pickBranch()
	if err != nil || !ok {
		return err
	}
	if err := m.client.Checkout(ctxOf(m.cmd), branch); err != nil {
		return err
	}
	m.a.out.Successf("Switched to branch: %s", branch)
	return nil
}

func (m *gitMenu) pushCurrent() error {
	branch, err := m.client.CurrentBranch(ctxOf(m.cmd))
	if err != nil {
		return err
	}
	m.a.out.Infof("Current branch: %s", branch)
	return m.push(branch)
}

func (m *gitMenu) pushSelected() error {
	branch, ok, err := m.pickBranch()
	if err != nil || !ok {
		return err
	}
	return m.push(branch)
}

// push asks before pushing, never after.
func (m *gitMenu) push(branch string) error {
	if err := prompt.ConfirmOrCancel(m.a.prompt, fmt.Sprintf("Do you want to push the branch %s?", branch), "Push branch cancelled."); err != nil {
		return err
	}
	log := logging.Component(m.a.log, "git")
	if err := m.client.Push(ctxOf(m.cmd), m.remote, branch); err != nil {
		log.Error().Err(err).Str("branch", branch).Msg("push failed")
		return err
	}
	log.Info().Str("remote", m.remote).Str("branch", branch).Msg("pushed")
	m.a.out.Successf("Push branch succeeded.")
	return nil
}

func init() {
	rootCmd.AddCommand(gitCmd)
}
