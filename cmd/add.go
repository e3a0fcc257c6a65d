package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tk-425/caller-cli/internal/apperr"
	"github.com/tk-425/caller-cli/internal/nameutil"
	"github.com/tk-425/caller-cli/internal/prompt"
	"github.com/tk-425/caller-cli/internal/security"
)

var addCmd = &cobra.Command{
	Use:   "add <name> <cmd...>",
	Short: "Save a command under a name",
	Long: `Save a command under a name. Everything after the name is the command:
  caller add build npm run build

The command is later run directly, not through a shell, so pipes and
redirections are passed to the program as plain arguments.`,
	Args: cobra.MinimumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		yes, _ := cmd.Flags().GetBool("yes")
		name := sanitizedName(a, args[0])
		tokens := args[1:]

		if strings.TrimSpace(name) == "" {
			return apperr.New(apperr.EmptyInput, "You must provide a command name.")
		}
		if err := nameutil.ValidateUnreserved(name, reservedNames()); err != nil {
			return apperr.Wrap(apperr.InvalidInput, err, "")
		}
		if strings.TrimSpace(strings.Join(tokens, "")) == "" {
			return apperr.New(apperr.EmptyInput, "You must provide a command for '%s'.", name)
		}
		if a.store.Has(name) {
			return apperr.New(apperr.DuplicateName, "The name '%s' already exists.", name)
		}

		line := strings.Join(tokens, " ")
		if security.ContainsMetachar(line) {
			a.out.Warnf("WARNING: Command contains shell metacharacters (%s).", security.Metachars)
			a.out.Warnf("They are not interpreted by a shell and will reach the program as-is.")
		}

		a.out.Title("- Add -")
		if !yes {
			if err := prompt.ConfirmOrCancel(a.prompt, fmt.Sprintf("Are you sure you want to add %q?", name), "Command added cancelled."); err != nil {
				return err
			}
		}

		entry, err := a.store.Add(name, tokens)
		if err != nil {
			return err
		}
		a.log.Info().Str("name", entry.Name).Str("command_line", entry.CommandLine).Msg("command added")
		a.out.Successf("Command '%s' added.", entry.Name)
		return nil
	}),
}

func init() {
	addCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	// everything after the name belongs to the saved command
	addCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(addCmd)
}
