// Package gitcli wraps the git commands behind the git menu.
package gitcli

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/tk-425/caller-cli/internal/apperr"
	"github.com/tk-425/caller-cli/internal/executil"
	"github.com/tk-425/caller-cli/internal/executor"
	"github.com/tk-425/caller-cli/internal/security"
)

// Client runs git plumbing whose output is read back.
type Client struct {
	gitPath string
	dir     string
	exec    executil.Executor
}

// New creates a client for the repository in dir (empty means cwd).
func New(gitPath, dir string, exec executil.Executor) *Client {
	if gitPath == "" {
		gitPath = "git"
	}
	return &Client{gitPath: gitPath, dir: dir, exec: exec}
}

// GitPath is the git binary the client runs.
func (c *Client) GitPath() string { return c.gitPath }

func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	return c.exec.RunDir(ctx, c.dir, c.gitPath, args...)
}

// Branches lists local branch names.
func (c *Client) Branches(ctx context.Context) ([]string, error) {
	out, err := c.run(ctx, "branch", "--format=%(refname:short)")
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	lines := lo.Map(strings.Split(string(out), "\n"), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
	return lo.Compact(lines), nil
}

// CurrentBranch returns the checked-out branch. A detached or unborn HEAD
// is CurrentBranchUnavailable.
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "branch", "--show-current")
	if err != nil {
		return "", apperr.Wrap(apperr.CurrentBranchUnavailable, err, "Failed to get current branch.")
	}
	branch := strings.TrimSpace(string(out))
	if branch == "" {
		return "", apperr.New(apperr.CurrentBranchUnavailable, "Failed to get current branch.")
	}
	return branch, nil
}

// Checkout switches to an existing branch.
func (c *Client) Checkout(ctx context.Context, branch string) error {
	if err := ValidateBranchName(branch); err != nil {
		return err
	}
	if _, err := c.run(ctx, "checkout", branch); err != nil {
		return fmt.Errorf("checkout %s: %w", branch, err)
	}
	return nil
}

// Push pushes branch to remote.
func (c *Client) Push(ctx context.Context, remote, branch string) error {
	if err := ValidateBranchName(branch); err != nil {
		return err
	}
	if _, err := c.run(ctx, "push", remote, branch); err != nil {
		return fmt.Errorf("push %s %s: %w", remote, branch, err)
	}
	return nil
}

// AddAllRequest stages every change in the working tree.
func (c *Client) AddAllRequest() executor.Request {
	return executor.Request{
		Name:           "git add",
		Source:         "git",
		Program:        c.gitPath,
		Args:           []string{"add", "."},
		SuccessMessage: "Changes have been successfully staged for the next commit.",
		FailureMessage: "Failed to stage changes.",
	}
}

// CommitRequest commits staged changes with message.
func (c *Client) CommitRequest(message string) (executor.Request, error) {
	if strings.TrimSpace(message) == "" {
		return executor.Request{}, apperr.New(apperr.EmptyInput, "You must provide a commit message.")
	}
	if err := security.ValidateUntrusted("Commit message", message); err != nil {
		return executor.Request{}, err
	}
	return executor.Request{
		Name:           "git commit",
		Source:         "git",
		Program:        c.gitPath,
		Args:           []string{"commit", "-m", message},
		SuccessMessage: "Commit completed.",
		FailureMessage: "Commit failed.",
	}, nil
}

// CreateBranchRequest creates branch and switches to it.
func (c *Client) CreateBranchRequest(branch string) (executor.Request, error) {
	if err := ValidateBranchName(branch); err != nil {
		return executor.Request{}, err
	}
	return executor.Request{
		Name:           "git checkout -b",
		Source:         "git",
		Program:        c.gitPath,
		Args:           []string{"checkout", "-b", branch},
		SuccessMessage: "Branch created and now active.",
		FailureMessage: "Branch creation and checkout failed.",
	}, nil
}

// ValidateBranchName applies the main git check-ref-format rules and refuses
// shell control characters.
func ValidateBranchName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperr.New(apperr.EmptyInput, "You must provide a branch name.")
	}
	if err := security.ValidateUntrusted("Branch name", name); err != nil {
		return err
	}

	invalid := func(why string) error {
		return apperr.New(apperr.InvalidInput, "Invalid branch name '%s': %s.", name, why)
	}
	switch {
	case strings.HasPrefix(name, "-"):
		return invalid("cannot start with '-'")
	case strings.ContainsAny(name, " \t\n~^:?*[\\\x7f"):
		return invalid("contains a forbidden character")
	case strings.Contains(name, ".."):
		return invalid("cannot contain '..'")
	case strings.Contains(name, "@{"):
		return invalid("cannot contain '@{'")
	case name == "@":
		return invalid("cannot be '@'")
	case strings.HasSuffix(name, "/"), strings.HasSuffix(name, "."), strings.HasSuffix(name, ".lock"):
		return invalid("has a forbidden ending")
	case strings.HasPrefix(name, "/"), strings.Contains(name, "//"):
		return invalid("has an empty path component")
	}
	for _, r := range name {
		if r < 0x20 {
			return invalid("contains a control character")
		}
	}
	return nil
}
