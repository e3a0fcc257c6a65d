package nameutil

import (
	"strings"

	"github.com/samber/lo"
)

// FuzzyMatch returns true if query fuzzy-matches target.
// Matching is case-insensitive and succeeds on substring match or if
// the query characters appear as a subsequence in the target.
func FuzzyMatch(target, query string) bool {
	if query == "" {
		return true
	}
	t := strings.ToLower(target)
	q := strings.ToLower(query)
	if strings.Contains(t, q) {
		return true
	}
	// subsequence match (rune-aware)
	qr := []rune(q)
	i := 0
	for _, ch := range t {
		if i < len(qr) && qr[i] == ch {
			i++
			if i >= len(qr) {
				return true
			}
		}
	}
	return false
}

// Filter keeps the names matching query, in their original order.
func Filter(names []string, query string) []string {
	return lo.Filter(names, func(n string, _ int) bool { return FuzzyMatch(n, query) })
}

// Suggest returns up to limit names that look like a mistyped name: either
// the typed name fuzzy-matches them or they fuzzy-match the typed name.
func Suggest(names []string, typed string, limit int) []string {
	if typed == "" {
		return nil
	}
	out := lo.Filter(names, func(n string, _ int) bool {
		return n != typed && (FuzzyMatch(n, typed) || FuzzyMatch(typed, n))
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
