package sanitize

import (
	"strings"
	"testing"
)

func TestForSessionKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"uuid", "5f2c1a3e-8b7d-4c2a-9e1f-0a1b2c3d4e5f", "5f2c1a3e-8b7d-4c2a-9e1f-0a1b2c3d4e5f"},
		{"dots and underscores", "run_1.2", "run_1.2"},
		{"mixed case", "SessionABC", "SessionABC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ForSessionKey(tt.input)
			if result != tt.expected {
				t.Errorf("ForSessionKey(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestForSessionKeyUnsafe(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		prefix string
	}{
		{"path separators", "../../etc/passwd", ".._.._etc_passwd-"},
		{"spaces", "my session", "my_session-"},
		{"newline", "a\nb", "a_b-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ForSessionKey(tt.input)
			if !strings.HasPrefix(result, tt.prefix) {
				t.Errorf("ForSessionKey(%q) = %q, want prefix %q", tt.input, result, tt.prefix)
			}
			if strings.ContainsAny(result, "/\\ \n") {
				t.Errorf("ForSessionKey(%q) = %q contains unsafe characters", tt.input, result)
			}
		})
	}
}

func TestForSessionKeyDistinct(t *testing.T) {
	a := ForSessionKey("a/b")
	b := ForSessionKey("a b")
	c := ForSessionKey("a_b")
	if a == b || a == c || b == c {
		t.Errorf("expected distinct keys, got %q %q %q", a, b, c)
	}
}

func TestForSessionKeyRewrittenFormIsNotReused(t *testing.T) {
	rewritten := ForSessionKey("a/b")
	if got := ForSessionKey(rewritten); got == rewritten {
		t.Errorf("ForSessionKey(%q) = %q, collides with the key for %q", rewritten, got, "a/b")
	}
	if got := ForSessionKey(rewritten); got != ForSessionKey(rewritten) {
		t.Errorf("ForSessionKey(%q) is not stable", rewritten)
	}
	if got := ForSessionKey("build-123"); got != "build-123" {
		t.Errorf("ForSessionKey(%q) = %q, want unchanged", "build-123", got)
	}
}

func TestForSessionKeyLength(t *testing.T) {
	long := strings.Repeat("x", 300)
	result := ForSessionKey(long)
	if len(result) > maxSessionKey {
		t.Errorf("ForSessionKey length = %d, want <= %d", len(result), maxSessionKey)
	}
	if ForSessionKey(long+"y") == result {
		t.Error("expected long keys differing in the tail to stay distinct")
	}
}
