package gui

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// jsonStyle is the chroma style used for the details panel.
const jsonStyle = "monokai"

var (
	jsonLexer     = chroma.Coalesce(lexers.Get("json"))
	jsonFormatter = formatters.Get("terminal256")
)

// colorizeJSON adds ANSI color codes to JSON string for terminal display.
// Input chroma cannot tokenise is returned unchanged.
func colorizeJSON(jsonStr string) string {
	if jsonStr == "" {
		return ""
	}

	it, err := jsonLexer.Tokenise(nil, jsonStr)
	if err != nil {
		return jsonStr
	}

	var sb strings.Builder
	if err := jsonFormatter.Format(&sb, styles.Get(jsonStyle), it); err != nil {
		return jsonStr
	}

	out := sb.String()
	// the lexer appends a newline the caller did not write
	if !strings.HasSuffix(jsonStr, "\n") {
		out = trimTrailingNewline(out)
	}
	return out
}

// trimTrailingNewline drops the last newline, which may sit before a
// trailing colour reset.
func trimTrailingNewline(s string) string {
	const reset = "\033[0m"
	if strings.HasSuffix(s, "\n") {
		return strings.TrimSuffix(s, "\n")
	}
	if strings.HasSuffix(s, "\n"+reset) {
		return strings.TrimSuffix(s, "\n"+reset) + reset
	}
	return s
}
