package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/tk-425/caller-cli/internal/apperr"
	"github.com/tk-425/caller-cli/internal/ui"
	"github.com/tk-425/caller-cli/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "caller [name]",
	Short: "caller saves shell commands under short names and runs them",
	Long: `caller keeps a list of named commands and runs them by name.

  caller add build npm run build
  caller build
  caller list`,
	Args:          cobra.MaximumNArgs(1),
	Version:       version.Version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func runRoot(cmd *cobra.Command, args []string, a *app) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	dry, _ := cmd.Flags().GetBool("dry-run")
	force, _ := cmd.Flags().GetBool("force")
	return runSaved(cmd, a, args[0], dry, force)
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	return handleError(rootCmd.ErrOrStderr(), err)
}

// handleError prints err as one colored line and maps it to an exit code.
func handleError(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	p := ui.New(w)
	if apperr.KindOf(err) == apperr.PromptInterrupted {
		p.Warnf("Process interrupted by user.")
	} else {
		p.Errorf("%s", err.Error())
	}
	return apperr.ExitCode(err)
}

func init() {
	// assigned here: withApp reads rootCmd's flags
	rootCmd.RunE = withApp(runRoot)
	rootCmd.SetVersionTemplate("caller {{.Version}}\n")
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (default <data-dir>/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory for saved commands, history and logs (default ~/.caller-cli)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Flags().Bool("dry-run", false, "Print the command instead of running it")
	rootCmd.Flags().Bool("force", false, "Run even if the command looks destructive")
}
