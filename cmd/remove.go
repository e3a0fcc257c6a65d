package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tk-425/caller-cli/internal/prompt"
)

var removeCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a saved command",
	Args:    cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		name := args[0]
		yes, _ := cmd.Flags().GetBool("yes")

		if _, err := a.store.Get(name); err != nil {
			return err
		}

		a.out.Title("- Remove -")
		if !yes {
			if err := prompt.ConfirmOrCancel(a.prompt, fmt.Sprintf("Are you sure you want to remove '%s'?", name), "Remove cancelled."); err != nil {
				return err
			}
		}

		if err := a.store.Remove(name); err != nil {
			return err
		}
		a.log.Info().Str("name", name).Msg("command removed")
		a.out.Successf("Command '%s' removed.", name)
		return nil
	}),
}

func init() {
	removeCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(removeCmd)
}
