package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tk-425/caller-cli/internal/apperr"
	"github.com/tk-425/caller-cli/internal/nameutil"
	"github.com/tk-425/caller-cli/internal/prompt"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Pick a saved command from a list and run it",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		dry, _ := cmd.Flags().GetBool("dry-run")
		force, _ := cmd.Flags().GetBool("force")
		plain, _ := cmd.Flags().GetBool("print")
		filter, _ := cmd.Flags().GetString("filter")

		a.out.Title("- LIST -")
		names, err := a.store.List()
		if err != nil {
			return err
		}
		if filter != "" {
			names = nameutil.Filter(names, filter)
			if len(names) == 0 {
				return apperr.New(apperr.NotFound, "No command matches '%s'.", filter)
			}
		}

		if plain {
			m, err := a.store.Load()
			if err != nil {
				return err
			}
			for _, n := range names {
				a.out.Entry(n, m[n])
			}
			return nil
		}

		choice, err := prompt.Menu(a.prompt, "Select command", names)
		if err != nil {
			return err
		}
		if choice == prompt.Exit {
			a.out.Infof(ClosingMessage)
			return nil
		}
		return runSaved(cmd, a, choice, dry, force)
	}),
}

func init() {
	listCmd.Flags().Bool("dry-run", false, "Print the chosen command instead of running it")
	listCmd.Flags().Bool("force", false, "Run even if the command looks destructive")
	listCmd.Flags().BoolP("print", "p", false, "Print every saved command instead of prompting")
	listCmd.Flags().StringP("filter", "f", "", "Only show names fuzzy-matching this text")
	rootCmd.AddCommand(listCmd)
}
