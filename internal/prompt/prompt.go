// Package prompt asks the user for choices, confirmations and text.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"

	"github.com/tk-425/caller-cli/internal/apperr"
)

// Exit is the menu entry that leaves a menu loop.
const Exit = "EXIT"

// Prompter is a blocking prompt shell. Every method returns a
// PromptInterrupted error when the user aborts with Esc or Ctrl-C.
type Prompter interface {
	Select(title string, options []string) (string, error)
	Confirm(title string) (bool, error)
	Input(title string) (string, error)
	Password(title string) (string, error)
}

// Huh prompts on the terminal.
type Huh struct {
	In         io.Reader
	Out        io.Writer
	Accessible bool
}

// NewHuh returns a terminal prompter.
func NewHuh(in io.Reader, out io.Writer) *Huh {
	return &Huh{In: in, Out: out}
}

// Select shows a single-choice list and returns the chosen option.
func (h *Huh) Select(title string, options []string) (string, error) {
	var choice string
	field := huh.NewSelect[string]().
		Title(title).
		Options(huh.NewOptions(options...)...).
		Value(&choice)
	if err := h.run(field); err != nil {
		return "", err
	}
	return choice, nil
}

// Confirm asks a yes/no question, defaulting to no.
func (h *Huh) Confirm(title string) (bool, error) {
	var ok bool
	field := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok)
	if err := h.run(field); err != nil {
		return false, err
	}
	return ok, nil
}

// Input reads one line of text, trimmed.
func (h *Huh) Input(title string) (string, error) {
	var s string
	if err := h.run(huh.NewInput().Title(title).Value(&s)); err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// Password reads one line of text without echoing it.
func (h *Huh) Password(title string) (string, error) {
	var s string
	field := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&s)
	if err := h.run(field); err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

func (h *Huh) run(field huh.Field) error {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"))

	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(huh.ThemeCharm()).
		WithKeyMap(km).
		WithShowHelp(false).
		WithAccessible(h.Accessible)
	if h.In != nil {
		form = form.WithInput(h.In)
	}
	if h.Out != nil {
		form = form.WithOutput(h.Out)
	}
	return mapErr(form.Run())
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, huh.ErrUserAborted):
		return apperr.Wrap(apperr.PromptInterrupted, err, "Process interrupted by user.")
	default:
		return fmt.Errorf("prompt: %w", err)
	}
}

// ConfirmOrCancel asks title and turns a "no" into UserCancelled carrying
// cancelled as its message.
func ConfirmOrCancel(p Prompter, title, cancelled string) error {
	ok, err := p.Confirm(title)
	if err != nil {
		return err
	}
	if !ok {
		if cancelled == "" {
			cancelled = "Operation cancelled."
		}
		return apperr.New(apperr.UserCancelled, "%s", cancelled)
	}
	return nil
}

// Menu shows options plus a trailing Exit entry. It returns Exit when the
// user leaves the menu.
func Menu(p Prompter, title string, options []string) (string, error) {
	return p.Select(title, append(append([]string{}, options...), Exit))
}
