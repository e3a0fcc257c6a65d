// Package security screens commands before they reach the process runner.
package security

import (
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/tk-425/caller-cli/internal/apperr"
)

// Metachars are the shell control characters refused in untrusted input.
const Metachars = ";&|`$()<>"

var dangerousPatterns = []*regexp.Regexp{
	// Destructive filesystem ops
	regexp.MustCompile(`(?i)\brm\s+-rf\s+/?$`),
	regexp.MustCompile(`(?i)\brm\s+-rf\s+/`),
	regexp.MustCompile(`(?i)\bmkfs\b`),
	regexp.MustCompile(`(?i)\bdd\s+if=`),
	// fork bombs (e.g. :(){ :|:& };:)
	regexp.MustCompile(`:\(\)\s*\{`),
	// package managers removing all packages
	regexp.MustCompile(`(?i)\bapt\-get\s+remove\s+`),
	regexp.MustCompile(`(?i)\byum\s+remove\s+`),
	// wipe disk
	regexp.MustCompile(`(?i)\bwipefs\b`),
	regexp.MustCompile(`(?i)\bchmod\s+-R\s+0?777\s+/\s*$`),
	regexp.MustCompile(`(?i)>\s*/dev/sd[a-z]`),
}

// CheckAllowed returns nil if the command line may run, or an InvalidInput
// error when it matches a known destructive pattern. Checking is
// conservative and not exhaustive.
func CheckAllowed(command string) error {
	cmd := strings.TrimSpace(command)
	if cmd == "" {
		return apperr.New(apperr.EmptyInput, "Command is empty.")
	}
	for _, re := range dangerousPatterns {
		if re.MatchString(cmd) {
			return apperr.New(apperr.InvalidInput, "'%s' appears destructive or unsafe; use --force to run it anyway", cmd)
		}
	}
	return nil
}

// ContainsMetachar reports whether s holds any shell control character.
func ContainsMetachar(s string) bool {
	return strings.ContainsAny(s, Metachars)
}

// ValidateUntrusted rejects text that carries shell control characters.
// Nothing is escaped; what is a field label for the message, e.g. "Commit
// message".
func ValidateUntrusted(what, s string) error {
	if strings.TrimSpace(s) == "" {
		return apperr.New(apperr.EmptyInput, "%s cannot be empty.", what)
	}
	if ContainsMetachar(s) {
		return apperr.New(apperr.InvalidInput, "%s contains forbidden characters (%s).", what, Metachars)
	}
	return nil
}

// Policy restricts what an untrusted command may invoke.
type Policy struct {
	AllowedPrograms []string
}

// Check validates program and args against the allow-list and refuses any
// metacharacter in any token.
func (p Policy) Check(program string, args []string) error {
	if len(p.AllowedPrograms) > 0 && !lo.Contains(p.AllowedPrograms, program) {
		return apperr.New(apperr.InvalidAiResponse, "'%s' is not an allowed command.", program)
	}
	tokens := append([]string{program}, args...)
	if bad, ok := lo.Find(tokens, ContainsMetachar); ok {
		return apperr.New(apperr.InvalidAiResponse, "'%s' contains forbidden characters (%s).", bad, Metachars)
	}
	return nil
}
