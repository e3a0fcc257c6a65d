// Package nameutil validates the alias names commands are saved under.
package nameutil

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
)

// ValidateName checks whether name is acceptable as a saved-command alias.
// Names must be non-empty, valid UTF-8 and a single shell word, since they are
// typed back as a bare positional argument to run the command.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("invalid name: name cannot be empty")
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("invalid name: contains invalid encoding")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("invalid name: contains control character U+%04X (%q)", r, r)
		}
		if unicode.IsSpace(r) {
			return fmt.Errorf("invalid name: %q contains whitespace", name)
		}
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("invalid name: %q cannot start with '-'", name)
	}
	return nil
}

// ValidateUnreserved runs ValidateName and additionally rejects names that
// would be shadowed by a built-in subcommand.
func ValidateUnreserved(name string, reserved []string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if lo.Contains(reserved, name) {
		return fmt.Errorf("invalid name: %q is a built-in command", name)
	}
	return nil
}

// SanitizeName removes control and zero-width characters commonly introduced
// by copy/paste, trims surrounding whitespace, and reports whether anything
// changed.
func SanitizeName(name string) (string, bool) {
	if name == "" {
		return name, false
	}
	out := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		switch r {
		case '\u200B', '\u200C', '\u200D', '\uFEFF':
			return -1
		}
		return r
	}, name)
	out = strings.TrimSpace(out)
	return out, out != name
}
