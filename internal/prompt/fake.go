package prompt

import (
	"fmt"

	"github.com/tk-425/caller-cli/internal/apperr"
)

// Fake answers prompts from a script, in order. It is used by tests of
// packages that take a Prompter.
type Fake struct {
	Answers []any
	Asked   []string
}

var _ Prompter = (*Fake)(nil)

// Interrupt is a scripted answer that simulates Esc or Ctrl-C.
var Interrupt = apperr.New(apperr.PromptInterrupted, "Process interrupted by user.")

func (f *Fake) next(title string) (any, error) {
	f.Asked = append(f.Asked, title)
	if len(f.Answers) == 0 {
		return nil, fmt.Errorf("fake prompt: no answer scripted for %q", title)
	}
	a := f.Answers[0]
	f.Answers = f.Answers[1:]
	if err, ok := a.(error); ok {
		return nil, err
	}
	return a, nil
}

func (f *Fake) Select(title string, options []string) (string, error) {
	a, err := f.next(title)
	if err != nil {
		return "", err
	}
	s, ok := a.(string)
	if !ok {
		return "", fmt.Errorf("fake prompt: %q wants a string, got %T", title, a)
	}
	for _, o := range options {
		if o == s {
			return s, nil
		}
	}
	return "", fmt.Errorf("fake prompt: %q is not among %v", s, options)
}

func (f *Fake) Confirm(title string) (bool, error) {
	a, err := f.next(title)
	if err != nil {
		return false, err
	}
	b, ok := a.(bool)
	if !ok {
		return false, fmt.Errorf("fake prompt: %q wants a bool, got %T", title, a)
	}
	return b, nil
}

func (f *Fake) Input(title string) (string, error) {
	a, err := f.next(title)
	if err != nil {
		return "", err
	}
	s, ok := a.(string)
	if !ok {
		return "", fmt.Errorf("fake prompt: %q wants a string, got %T", title, a)
	}
	return s, nil
}

func (f *Fake) Password(title string) (string, error) {
	return f.Input(title)
}
