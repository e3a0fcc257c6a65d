package store

import (
	"os"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// LocaleSorter returns a sorter using collation rules for locale. An empty
// locale is read from LC_ALL, LC_COLLATE or LANG; anything unparsable falls
// back to English.
func LocaleSorter(locale string) func([]string) {
	tag := resolveLocale(locale)
	return func(names []string) {
		collate.New(tag).SortStrings(names)
	}
}

func resolveLocale(locale string) language.Tag {
	if locale == "" {
		for _, env := range []string{"LC_ALL", "LC_COLLATE", "LANG"} {
			if v := os.Getenv(env); v != "" {
				locale = v
				break
			}
		}
	}
	// POSIX locales look like en_US.UTF-8@euro
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	locale = strings.ReplaceAll(locale, "_", "-")
	if locale == "" || locale == "C" || locale == "POSIX" {
		return language.English
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	return tag
}
