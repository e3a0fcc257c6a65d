package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tk-425/caller-cli/internal/apperr"
	"github.com/tk-425/caller-cli/internal/keystore"
	"github.com/tk-425/caller-cli/internal/prompt"
)

var delCmd = &cobra.Command{
	Use:       "del <target>",
	Short:     "Delete stored data (currently only the AI API key)",
	Example:   "  caller del key",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"key"},
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		if args[0] != "key" {
			return apperr.New(apperr.InvalidInput, "Unknown target '%s'. Did you mean 'caller del key'?", args[0])
		}
		yes, _ := cmd.Flags().GetBool("yes")

		ks := keystore.New(a.cfg.AI.KeyService, a.cfg.AI.KeyAccount)
		if !yes {
			if err := prompt.ConfirmOrCancel(a.prompt, "Are you sure you want to delete the API key?", "Delete cancelled."); err != nil {
				return err
			}
		}
		if err := ks.Delete(); err != nil {
			return err
		}
		a.log.Info().Str("service", ks.Service).Msg("api key deleted")
		a.out.Successf("API key deleted.")
		return nil
	}),
}

func init() {
	delCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(delCmd)
}
