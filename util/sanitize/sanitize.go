package sanitize

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
)

// maxSessionKey bounds the key so the record filename stays well under
// common filesystem name limits.
const maxSessionKey = 128

var (
	// sessionKeyRegex matches identifiers that are already safe as filename parts
	sessionKeyRegex = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

	// unsafeRunRegex matches runs of characters not allowed in a session key
	unsafeRunRegex = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

	// digestSuffixRegex matches the suffix appended to rewritten keys
	digestSuffixRegex = regexp.MustCompile(`-[0-9a-f]{12}$`)
)

// ForSessionKey maps a session identifier to a string usable inside a
// filename. Identifiers made only of letters, digits, '.', '-' and '_' are
// returned unchanged unless they already end like a rewritten key. Anything
// else has its unsafe runs replaced with '_' and a short digest of the
// original appended, so distinct identifiers keep distinct keys.
func ForSessionKey(s string) string {
	if s == "" {
		return ""
	}
	if sessionKeyRegex.MatchString(s) && len(s) <= maxSessionKey && !digestSuffixRegex.MatchString(s) {
		return s
	}

	sum := sha256.Sum256([]byte(s))
	digest := hex.EncodeToString(sum[:])[:12]

	s = unsafeRunRegex.ReplaceAllString(s, "_")
	if len(s) > maxSessionKey-len(digest)-1 {
		s = s[:maxSessionKey-len(digest)-1]
	}
	return s + "-" + digest
}
