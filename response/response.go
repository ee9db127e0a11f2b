// Package response renders the single-line continue/block decision a hook
// writes to stdout.
package response

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/grovetools/hooklint/extract"
)

// Prefix tags every message this tool emits so the host can attribute it.
const Prefix = "[hooklint] "

// Decision is the outcome of one hook invocation.
type Decision struct {
	Block   bool
	Message string
}

// Continue lets the host proceed. The message is only rendered in verbose mode.
func Continue(message string) Decision {
	return Decision{Message: message}
}

// Continuef is Continue with a formatted, prefixed message.
func Continuef(format string, args ...interface{}) Decision {
	return Continue(Prefix + fmt.Sprintf(format, args...))
}

// Block stops the host and always carries its reason.
func Block(reason string) Decision {
	return Decision{Block: true, Message: reason}
}

// Blockf is Block with a formatted, prefixed reason.
func Blockf(format string, args ...interface{}) Decision {
	return Block(Prefix + fmt.Sprintf(format, args...))
}

// Render produces the wire form without a trailing newline.
func (d Decision) Render(verbose bool) string {
	if d.Block {
		return `{"decision":"block","reason":"` + Escape(d.Message) + `"}`
	}
	if !verbose {
		return `{"continue":true}`
	}
	return `{"continue":true,"systemMessage":"` + Escape(d.Message) + `"}`
}

// Escape makes s safe inside a JSON string literal. Control characters
// without a short form are written as \u00XX with lower-case hex.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if unicode.IsControl(r) {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Parse reads a rendered decision back, for tooling that drives the hook
// binary and inspects its output. Block decisions recover their reason;
// continue decisions come back with whatever systemMessage they carried.
func Parse(line string) (Decision, bool) {
	switch {
	case strings.Contains(line, `"decision":"block"`):
		reason, ok := extract.Reason(line)
		if !ok {
			return Decision{}, false
		}
		return Block(reason), true
	case strings.Contains(line, `"continue":true`):
		msg, _ := extract.Field(line, "systemMessage")
		return Continue(msg), true
	default:
		return Decision{}, false
	}
}
