package cmd

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/tk-425/caller-cli/internal/ai"
	"github.com/tk-425/caller-cli/internal/apperr"
	"github.com/tk-425/caller-cli/internal/config"
	"github.com/tk-425/caller-cli/internal/executil"
	"github.com/tk-425/caller-cli/internal/executor"
	"github.com/tk-425/caller-cli/internal/history"
	"github.com/tk-425/caller-cli/internal/logging"
	"github.com/tk-425/caller-cli/internal/nameutil"
	"github.com/tk-425/caller-cli/internal/prompt"
	"github.com/tk-425/caller-cli/internal/store"
	"github.com/tk-425/caller-cli/internal/ui"
)

// ClosingMessage is printed when the user leaves a menu.
const ClosingMessage = "Exiting the Caller CLI. Goodbye!"

// app is everything one invocation needs.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	store    *store.Store
	out      *ui.Printer
	prompt   prompt.Prompter
	history  *history.Repository
	closeLog func()
}

// Swapped out by tests.
var (
	newPrompter = func(cmd *cobra.Command) prompt.Prompter {
		return prompt.NewHuh(cmd.InOrStdin(), cmd.OutOrStdout())
	}
	newProcessRunner = func(cmd *cobra.Command, dry bool, log zerolog.Logger) executor.Runner {
		e := executor.New(dry, log)
		e.Stdin = cmd.InOrStdin()
		e.Stdout = cmd.OutOrStdout()
		e.Stderr = cmd.ErrOrStderr()
		return e
	}
	newGitExecutor = func() executil.Executor {
		return &executil.RealExecutor{}
	}
	newResolver = func(ctx context.Context, a *app, apiKey string, spin io.Writer) (ai.Resolver, error) {
		return ai.NewGemini(ctx, apiKey, a.cfg.AI.Model,
			ai.WithSpinner(spin),
			ai.WithLogger(logging.Component(a.log, "ai")))
	}
)

func loadApp(cmd *cobra.Command) (*app, error) {
	configPath, _ := rootCmd.PersistentFlags().GetString("config")
	dataDir, _ := rootCmd.PersistentFlags().GetString("data-dir")
	level, _ := rootCmd.PersistentFlags().GetString("log-level")

	cfg, err := config.Load(configPath, dataDir)
	if err != nil {
		return nil, apperr.Wrap(apperr.InvalidInput, err, "Invalid configuration")
	}
	if level != "" {
		cfg.Log.Level = level
	}

	log, closeLog, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.InvalidInput, err, "Failed to start logging")
	}
	log = log.With().Str("command", cmd.Name()).Logger()

	return &app{
		cfg:      cfg,
		log:      log,
		store:    store.New(cfg.CommandsFile, store.WithLogger(logging.Component(log, "store"))),
		out:      ui.New(cmd.OutOrStdout()),
		prompt:   newPrompter(cmd),
		closeLog: closeLog,
	}, nil
}

func (a *app) Close() {
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			a.log.Warn().Err(err).Msg("close history")
		}
	}
	a.closeLog()
}

// runner returns the process runner, recording into history when enabled.
// A history database that cannot be opened disables recording for this
// invocation only.
func (a *app) runner(cmd *cobra.Command, dry bool) executor.Runner {
	r := newProcessRunner(cmd, dry, logging.Component(a.log, "executor"))
	if dry || !a.cfg.History.Enabled {
		return r
	}
	if a.history == nil {
		repo, err := history.Open(a.cfg.History.DBPath)
		if err != nil {
			a.log.Warn().Err(err).Msg("history unavailable")
			return r
		}
		a.history = repo
	}
	return &history.RecordingRunner{Next: r, Repo: a.history, Log: logging.Component(a.log, "history")}
}

// report prints a successful outcome and converts a failed one to an error.
func (a *app) report(req executor.Request, out executor.Outcome) error {
	if out.Success() {
		if msg := out.Message(req); msg != "" {
			a.out.Successf("%s", msg)
		}
		return nil
	}
	return out.Err(req)
}

// withApp builds the app for one RunE call and logs whatever error the
// command returns.
func withApp(fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		err = fn(cmd, args, a)
		if err != nil {
			a.log.Error().Err(err).Str("kind", apperr.KindOf(err).String()).Msg("command failed")
		}
		return err
	}
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// reservedNames are words a saved command cannot use because the CLI
// would route them to a subcommand, or a menu would read them as EXIT.
func reservedNames() []string {
	names := lo.FlatMap(rootCmd.Commands(), func(c *cobra.Command, _ int) []string {
		return append([]string{c.Name()}, c.Aliases...)
	})
	return lo.Uniq(append(names, "help", "completion", prompt.Exit))
}

// sanitizedName strips pasted control and zero-width characters from a name
// argument, warning when the name changed.
func sanitizedName(a *app, name string) string {
	clean, changed := nameutil.SanitizeName(name)
	if changed {
		a.out.Warnf("Name %q contained invisible characters; using %q.", name, clean)
	}
	return clean
}
