// Package ai turns natural-language questions into a single command line.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/tk-425/caller-cli/internal/apperr"
	"github.com/tk-425/caller-cli/internal/security"
)

// InvalidQuestion is the sentinel the model is told to answer with when a
// question is not about command-line commands.
const InvalidQuestion = "Please provide a question related to command-line commands."

// Resolver answers a question with the raw model text.
type Resolver interface {
	Ask(ctx context.Context, question string) (string, error)
}

// BuildPrompt wraps question in the command-oracle instructions.
func BuildPrompt(question string) string {
	return fmt.Sprintf("Act as a command-line command oracle. Provide only the command as an answer to any question about command-line commands. "+
		"Do not offer explanations or additional information (no code block). Here is the question \"%s?\" "+
		"If the answer is not related to the command-line commands, answer the question with '%s'",
		strings.TrimRight(strings.TrimSpace(question), "?"), InvalidQuestion)
}

// ParseResponse validates model output and splits it into program and
// arguments. Unsafe output is rejected outright, never escaped.
func ParseResponse(text string, policy security.Policy) (string, []string, error) {
	cmd := stripFences(security.StripEscapes(text))

	switch {
	case cmd == "":
		return "", nil, apperr.New(apperr.InvalidAiResponse, "AI returned an empty answer.")
	case strings.Contains(cmd, InvalidQuestion):
		return "", nil, apperr.New(apperr.InvalidAiResponse, "%s", InvalidQuestion)
	case strings.ContainsAny(cmd, "\r\n"):
		return "", nil, apperr.New(apperr.InvalidAiResponse, "AI returned more than one line.")
	case security.ContainsMetachar(cmd):
		return "", nil, apperr.New(apperr.InvalidAiResponse,
			"Command contains shell operators which are not allowed for security reasons.")
	}

	// quotes group words but nothing is expanded
	words, err := shellquote.Split(cmd)
	if err != nil {
		return "", nil, apperr.Wrap(apperr.InvalidAiResponse, err, "Could not parse AI answer")
	}
	if len(words) == 0 {
		return "", nil, apperr.New(apperr.InvalidAiResponse, "AI returned an empty answer.")
	}
	if err := policy.Check(words[0], words[1:]); err != nil {
		return "", nil, err
	}
	return words[0], words[1:], nil
}

func stripFences(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) > 1 && strings.HasPrefix(strings.TrimSpace(lines[0]), "```") {
		lines = lines[1:]
	}
	if n := len(lines); n > 1 && strings.TrimSpace(lines[n-1]) == "```" {
		lines = lines[:n-1]
	}
	s := strings.TrimSpace(strings.Join(lines, "\n"))
	if len(s) >= 2 && strings.HasPrefix(s, "`") && strings.HasSuffix(s, "`") {
		s = strings.TrimSpace(strings.Trim(s, "`"))
	}
	return s
}
