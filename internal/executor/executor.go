// Package executor runs saved and generated commands as child processes.
package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog"

	"github.com/tk-425/caller-cli/internal/apperr"
)

// Request describes one process to spawn. The messages only affect
// reporting; Name and Source label the run in logs and history.
type Request struct {
	Name           string
	Source         string
	Program        string
	Args           []string
	SuccessMessage string
	FailureMessage string
}

// CommandLine renders the request as program and arguments joined by spaces.
func (r Request) CommandLine() string {
	return strings.Join(append([]string{r.Program}, r.Args...), " ")
}

// Runner spawns a request and classifies the result. Implementations never
// return a Go error for process failures; they are part of the Outcome.
type Runner interface {
	Run(ctx context.Context, req Request) Outcome
}

// Executor runs requests directly, without a shell, with the parent's
// standard streams unless overridden.
type Executor struct {
	DryRun bool
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Log    zerolog.Logger
}

// New returns an Executor wired to the process's own stdio.
func New(dry bool, log zerolog.Logger) *Executor {
	return &Executor{
		DryRun: dry,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Log:    log,
	}
}

// Run blocks until the child exits or fails to start.
func (e *Executor) Run(ctx context.Context, req Request) Outcome {
	if req.Program == "" {
		return LaunchFailed("no program given")
	}

	if e.DryRun {
		_, _ = fmt.Fprintf(e.stdout(), "dry-run: %s\n", shellquote.Join(append([]string{req.Program}, req.Args...)...))
		return Completed(0)
	}

	cmd := exec.CommandContext(ctx, req.Program, req.Args...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.stdout()
	cmd.Stderr = e.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	start := time.Now()
	err := cmd.Run()
	out := classify(err)
	out.Duration = time.Since(start)

	ev := e.Log.Info()
	if !out.Success() {
		ev = e.Log.Warn()
	}
	ev.Str("name", req.Name).
		Str("source", req.Source).
		Str("argv", shellquote.Join(append([]string{req.Program}, req.Args...)...)).
		Bool("launched", out.Launched()).
		Int("exit_code", out.ExitCode).
		Str("launch_error", out.Reason).
		Dur("duration", out.Duration).
		Msg("process finished")

	return out
}

func (e *Executor) stdout() io.Writer {
	if e.Stdout == nil {
		return os.Stdout
	}
	return e.Stdout
}

func classify(err error) Outcome {
	if err == nil {
		return Completed(0)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Completed(exitErr.ExitCode())
	}
	return LaunchFailed(err.Error())
}

// Split breaks a saved command line into program and arguments on runs of
// whitespace, after normalizing editor-inserted unicode.
func Split(commandLine string) (string, []string, error) {
	fields := strings.Fields(Sanitize(commandLine))
	if len(fields) == 0 {
		return "", nil, apperr.New(apperr.EmptyInput, "Command is empty.")
	}
	return fields[0], fields[1:], nil
}

// Sanitize converts smart quotes and non-breaking spaces to ASCII and drops
// zero-width and NUL runes.
func Sanitize(s string) string {
	rep := strings.NewReplacer(
		"\u2018", "'",
		"\u2019", "'",
		"\u201C", "\"",
		"\u201D", "\"",
		"\u00A0", " ",
		"\u200B", "",
		"\u200E", "",
		"\u200F", "",
	)
	return strings.Map(func(r rune) rune {
		if r == 0 {
			return -1
		}
		return r
	}, rep.Replace(s))
}
