package security

import (
	"regexp"
	"strings"
)

var (
	oscRe = regexp.MustCompile(`\x1b\][^\x07\x1b]*(\x07|\x1b\\)`)
	csiRe = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)
)

// StripEscapes removes terminal control sequences from untrusted text so it
// can be printed and validated as plain characters. OSC and CSI sequences
// (colors included) are dropped, CR and CRLF become LF, and any other C0 control
// except tab and newline is removed.
func StripEscapes(s string) string {
	out := strings.ReplaceAll(s, "\r\n", "\n")
	out = strings.ReplaceAll(out, "\r", "\n")
	out = oscRe.ReplaceAllString(out, "")
	out = csiRe.ReplaceAllString(out, "")
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n', r == '\t':
			return r
		case r < 0x20, r == 0x7f:
			return -1
		}
		return r
	}, out)
}
