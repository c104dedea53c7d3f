package logging

import (
	"log/slog"
	"regexp"
	"strings"
)

// tokenPattern matches a full bot credential wherever it appears: in a URL
// path ("/bot123456:AAF.../sendMessage"), a bare form value, or an error
// string wrapping either. The numeric bot identifier is kept because it is
// not secret and is the natural correlation key.
var tokenPattern = regexp.MustCompile(`\b(\d+):[A-Za-z0-9_-]{16,}`)

// RedactToken replaces the secret half of every bot credential in s.
func RedactToken(s string) string {
	if s == "" || !strings.Contains(s, ":") {
		return s
	}
	return tokenPattern.ReplaceAllString(s, "$1:***")
}

// redactAttr is the slog ReplaceAttr hook that scrubs bot credentials from
// every string attribute before it reaches the output.
func redactAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		a.Value = slog.StringValue(RedactToken(a.Value.String()))
	}
	return a
}
