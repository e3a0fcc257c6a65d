package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tk-425/caller-cli/internal/apperr"
	"github.com/tk-425/caller-cli/internal/history"
	"github.com/tk-425/caller-cli/internal/prompt"
)

var historyCmd = &cobra.Command{
	Use:   "history [name]",
	Short: "Show recently executed commands",
	Long:  "Show recently executed commands, newest first. Pass a name to see only the runs of that saved command.",
	Args:  cobra.MaximumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		if !a.cfg.History.Enabled {
			return apperr.New(apperr.InvalidInput, "History is disabled (history.enabled is false).")
		}
		limit, _ := cmd.Flags().GetInt("limit")
		clearAll, _ := cmd.Flags().GetBool("clear")
		yes, _ := cmd.Flags().GetBool("yes")

		repo, err := history.Open(a.cfg.History.DBPath)
		if err != nil {
			return apperr.Wrap(apperr.InvalidInput, err, "")
		}
		a.history = repo

		if clearAll {
			if !yes {
				if err := prompt.ConfirmOrCancel(a.prompt, "Are you sure you want to clear the history?", "Clear history cancelled."); err != nil {
					return err
				}
			}
			n, err := repo.Clear(ctxOf(cmd))
			if err != nil {
				return err
			}
			a.out.Successf("Cleared %d recorded runs.", n)
			return nil
		}

		name := ""
		if len(args) == 1 {
			name = args[0]
			last, ok, err := repo.LastRun(ctxOf(cmd), name)
			if err != nil {
				return err
			}
			if !ok {
				a.out.Infof("'%s' has never run.", name)
				return nil
			}
			a.out.Title(fmt.Sprintf("Last run of '%s': %s at %s", name, runStatus(last), last.StartedAt.Local().Format(time.DateTime)))
		}
		runs, err := repo.List(ctxOf(cmd), name, limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			a.out.Infof("No runs recorded.")
			return nil
		}
		for _, r := range runs {
			a.out.Printf("%s  %-12s %-8s %s\n", r.StartedAt.Local().Format(time.DateTime), r.Name, runStatus(r), r.CommandLine)
		}
		return nil
	}),
}

func runStatus(r history.Run) string {
	switch {
	case !r.Launched:
		return "failed"
	case r.ExitCode != 0:
		return fmt.Sprintf("exit %d", r.ExitCode)
	default:
		return "ok"
	}
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to show")
	historyCmd.Flags().Bool("clear", false, "Delete all recorded runs")
	historyCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(historyCmd)
}
