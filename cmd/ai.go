package cmd

import (
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/tk-425/caller-cli/internal/ai"
	"github.com/tk-425/caller-cli/internal/apperr"
	"github.com/tk-425/caller-cli/internal/executor"
	"github.com/tk-425/caller-cli/internal/keystore"
	"github.com/tk-425/caller-cli/internal/security"
)

var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "Ask the AI for a command and run it",
	Long: `Ask a question in plain language and get back one command line.

The answer is shown before anything runs. Only programs listed in
ai.allowed_commands may be started, and answers containing shell
metacharacters are refused.`,
	Args: cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		a.out.Title("- AI -")

		key, err := apiKey(a)
		if err != nil {
			return err
		}
		resolver, err := newResolver(ctxOf(cmd), a, key, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		policy := security.Policy{AllowedPrograms: a.cfg.AI.AllowedCommands}

		for {
			if err := askOnce(cmd, a, resolver, policy); err != nil {
				return err
			}
			again, err := a.prompt.Confirm("Ask another question?")
			if err != nil {
				return err
			}
			if !again {
				a.out.Infof(ClosingMessage)
				return nil
			}
		}
	}),
}

// apiKey returns the saved key, asking for one and saving it on first use.
func apiKey(a *app) (string, error) {
	ks := keystore.New(a.cfg.AI.KeyService, a.cfg.AI.KeyAccount)
	key, found, err := ks.Get()
	if err != nil {
		return "", err
	}
	if found {
		return key, nil
	}

	a.out.Infof("No API key found. It will be saved in your system keychain.")
	key, err = a.prompt.Password("Enter your API key:")
	if err != nil {
		return "", err
	}
	if key == "" {
		return "", apperr.New(apperr.EmptyInput, "You must provide an API key.")
	}
	if err := ks.Set(key); err != nil {
		return "", err
	}
	a.log.Info().Str("service", ks.Service).Msg("api key saved")
	a.out.Successf("API key saved.")
	return key, nil
}

// askOnce handles a single question. Rejected answers and failed runs are
// printed and do not end the session.
func askOnce(cmd *cobra.Command, a *app, r ai.Resolver, policy security.Policy) error {
	question, err := a.prompt.Input("Ask AI:")
	if err != nil {
		return err
	}
	if strings.TrimSpace(question) == "" {
		return apperr.New(apperr.EmptyInput, "You must provide a question.")
	}
	text, err := r.Ask(ctxOf(cmd), question)
	if err != nil {
		return err
	}

	program, args, err := ai.ParseResponse(text, policy)
	if err != nil {
		if apperr.KindOf(err) != apperr.InvalidAiResponse {
			return err
		}
		a.log.Warn().Err(err).Str("response", text).Msg("ai response rejected")
		a.out.Errorf("%s", err.Error())
		return nil
	}

	line := shellquote.Join(append([]string{program}, args...)...)
	a.out.Command(line)

	run, err := a.prompt.Confirm("Would you like to run the command?")
	if err != nil {
		return err
	}
	if !run {
		a.out.Infof("Command execution cancelled.")
		return nil
	}

	req := executor.Request{
		Name:           "ai",
		Source:         "ai",
		Program:        program,
		Args:           args,
		SuccessMessage: "Command executed successfully.",
	}
	a.out.Running(line)
	if err := a.report(req, a.runner(cmd, false).Run(ctxOf(cmd), req)); err != nil {
		a.out.Errorf("%s", err.Error())
	}
	return nil
}

func init() {
	rootCmd.AddCommand(aiCmd)
}
