package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tk-425/caller-cli/internal/apperr"
	"github.com/tk-425/caller-cli/internal/executor"
	"github.com/tk-425/caller-cli/internal/nameutil"
	"github.com/tk-425/caller-cli/internal/security"
)

// runSaved looks up name and runs its command line with inherited stdio.
func runSaved(cmd *cobra.Command, a *app, name string, dry, force bool) error {
	line, err := a.store.Get(name)
	if err != nil {
		return withSuggestions(a, name, err)
	}

	// Security: check if command is allowed
	if !force {
		if err := security.CheckAllowed(line); err != nil {
			return err
		}
	}

	program, args, err := executor.Split(line)
	if err != nil {
		return err
	}

	a.out.Running(line)
	req := executor.Request{
		Name:           name,
		Source:         "run",
		Program:        program,
		Args:           args,
		SuccessMessage: "Command executed successfully.",
	}
	return a.report(req, a.runner(cmd, dry).Run(ctxOf(cmd), req))
}

// withSuggestions appends close matches to a NotFound error.
func withSuggestions(a *app, name string, err error) error {
	if apperr.KindOf(err) != apperr.NotFound {
		return err
	}
	names, listErr := a.store.List()
	if listErr != nil {
		return err
	}
	similar := nameutil.Suggest(names, name, 3)
	if len(similar) == 0 {
		return err
	}
	return apperr.New(apperr.NotFound, "%s. Did you mean %s?", err.Error(), quoteAll(similar))
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("'%s'", n)
	}
	return strings.Join(quoted, ", ")
}
