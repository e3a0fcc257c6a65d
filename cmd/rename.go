package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tk-425/caller-cli/internal/apperr"
	"github.com/tk-425/caller-cli/internal/nameutil"
	"github.com/tk-425/caller-cli/internal/prompt"
)

var renameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a saved command",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		oldName, newName := sanitizedName(a, args[0]), sanitizedName(a, args[1])
		yes, _ := cmd.Flags().GetBool("yes")

		if oldName == newName {
			return apperr.New(apperr.SameName, "Old name and new name cannot be the same.")
		}
		if _, err := a.store.Get(oldName); err != nil {
			return err
		}
		if a.store.Has(newName) {
			return apperr.New(apperr.DuplicateName, "The name '%s' already exists.", newName)
		}
		if err := nameutil.ValidateUnreserved(newName, reservedNames()); err != nil {
			return apperr.Wrap(apperr.InvalidInput, err, "")
		}

		a.out.Title("- Rename -")
		if !yes {
			if err := prompt.ConfirmOrCancel(a.prompt, "Are you sure you want to rename?", "Rename cancelled."); err != nil {
				return err
			}
		}

		if err := a.store.Rename(oldName, newName); err != nil {
			return err
		}
		a.log.Info().Str("old", oldName).Str("new", newName).Msg("command renamed")
		a.out.Successf("Command '%s' renamed to '%s'", oldName, newName)
		return nil
	}),
}

func init() {
	renameCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(renameCmd)
}
