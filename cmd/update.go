package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tk-425/caller-cli/internal/executor"
	"github.com/tk-425/caller-cli/internal/prompt"
	"github.com/tk-425/caller-cli/internal/update"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update caller from its source checkout",
	Long: `Discard local changes in the caller checkout (update.repo_dir), pull
update.branch from update.remote and reinstall with go install.
The first failing step stops the update.`,
	Args: cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		yes, _ := cmd.Flags().GetBool("yes")
		dry, _ := cmd.Flags().GetBool("dry-run")

		a.out.Title("- Update Caller-CLI -")
		if !yes {
			if err := prompt.ConfirmOrCancel(a.prompt, "Are you sure you want to update Caller-CLI?", "Update cancelled."); err != nil {
				return err
			}
		}

		plan := update.Plan{
			RepoDir:     a.cfg.Update.RepoDir,
			Remote:      a.cfg.Update.Remote,
			Branch:      a.cfg.Update.Branch,
			InstallArgs: a.cfg.Update.InstallArgs,
			GitPath:     a.cfg.Git.Path,
		}
		a.log.Info().Str("repo_dir", plan.RepoDir).Str("branch", plan.Branch).Msg("update started")

		return update.Run(ctxOf(cmd), a.runner(cmd, dry), plan, func(req executor.Request, out executor.Outcome) {
			if out.Success() && !dry {
				a.out.Successf("%s", out.Message(req))
			}
		})
	}),
}

func init() {
	updateCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	updateCmd.Flags().Bool("dry-run", false, "Print the update steps instead of running them")
	rootCmd.AddCommand(updateCmd)
}
