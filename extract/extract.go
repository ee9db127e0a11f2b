// Package extract pulls flat string fields out of hook event payloads.
//
// It is a scanner, not a JSON parser: it finds the first `"<key>":` anywhere
// in the payload regardless of nesting and decodes the quoted string that
// follows. Unknown escape sequences are kept verbatim (backslash included),
// and a value that is not a string, or a string that never closes, yields
// no value.
package extract

import "strings"

const (
	KeyFilePath  = "file_path"
	KeySessionID = "session_id"
	KeyReason    = "reason"
)

// Field returns the string value of the first occurrence of key in payload.
func Field(payload, key string) (string, bool) {
	marker := `"` + key + `":`
	idx := strings.Index(payload, marker)
	if idx < 0 {
		return "", false
	}

	rest := strings.TrimLeft(payload[idx+len(marker):], " \t\r\n")
	if !strings.HasPrefix(rest, `"`) {
		return "", false
	}
	rest = rest[1:]

	var b strings.Builder
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		switch c {
		case '"':
			return b.String(), true
		case '\\':
			if i+1 >= len(rest) {
				return "", false
			}
			i++
			switch esc := rest[i]; esc {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case '\\', '"', '/':
				b.WriteByte(esc)
			default:
				b.WriteByte('\\')
				b.WriteByte(esc)
			}
		default:
			b.WriteByte(c)
		}
	}
	return "", false
}

// FilePath extracts the edited file path, typically tool_input.file_path.
func FilePath(payload string) (string, bool) {
	return Field(payload, KeyFilePath)
}

// SessionID extracts the caller's session identifier.
func SessionID(payload string) (string, bool) {
	return Field(payload, KeySessionID)
}

// Reason extracts the reason text of a rendered block decision.
func Reason(payload string) (string, bool) {
	return Field(payload, KeyReason)
}
