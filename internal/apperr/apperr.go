// Package apperr defines the error kinds surfaced at the CLI boundary.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for reporting and exit-code selection.
type Kind int

const (
	// Internal is any error that does not carry a more specific kind.
	Internal Kind = iota
	DuplicateName
	NotFound
	SameName
	EmptyStore
	EmptyInput
	InvalidInput
	UserCancelled
	PromptInterrupted
	LaunchFailed
	NonZeroExit
	InvalidAiResponse
	CurrentBranchUnavailable
	KeyManagement
)

var kindNames = map[Kind]string{
	Internal:                 "internal",
	DuplicateName:            "duplicate_name",
	NotFound:                 "not_found",
	SameName:                 "same_name",
	EmptyStore:               "empty_store",
	EmptyInput:               "empty_input",
	InvalidInput:             "invalid_input",
	UserCancelled:            "user_cancelled",
	PromptInterrupted:        "prompt_interrupted",
	LaunchFailed:             "launch_failed",
	NonZeroExit:              "non_zero_exit",
	InvalidAiResponse:        "invalid_ai_response",
	CurrentBranchUnavailable: "current_branch_unavailable",
	KeyManagement:            "key_management",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a classified error with a user-facing message.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return e.Msg + ": " + e.Err.Error()
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports a match against another *Error of the same kind, so that
// sentinel values like ErrUserCancelled work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Msg == "" && t.Err == nil
}

// Sentinels for errors.Is comparisons.
var (
	ErrDuplicateName     = &Error{Kind: DuplicateName}
	ErrNotFound          = &Error{Kind: NotFound}
	ErrSameName          = &Error{Kind: SameName}
	ErrEmptyStore        = &Error{Kind: EmptyStore}
	ErrEmptyInput        = &Error{Kind: EmptyInput}
	ErrInvalidInput      = &Error{Kind: InvalidInput}
	ErrUserCancelled     = &Error{Kind: UserCancelled}
	ErrPromptInterrupted = &Error{Kind: PromptInterrupted}
	ErrLaunchFailed      = &Error{Kind: LaunchFailed}
	ErrNonZeroExit       = &Error{Kind: NonZeroExit}
	ErrInvalidAiResponse = &Error{Kind: InvalidAiResponse}
	ErrCurrentBranch     = &Error{Kind: CurrentBranchUnavailable}
	ErrKeyManagement     = &Error{Kind: KeyManagement}
)

// New returns a classified error with a formatted message.
func New(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies err under kind, prefixing msg.
func Wrap(kind Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of the outermost classified error in err's chain,
// or Internal when none is present.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// ExitCode maps err to the process exit status. Interrupting a prompt is
// treated as a deliberate quit.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if KindOf(err) == PromptInterrupted {
		return 0
	}
	return 1
}
