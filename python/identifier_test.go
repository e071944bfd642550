package python

import "testing"

func TestEscapeReservedWord(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"from", "from_"},
		{"import", "import_"},
		{"async", "async_"},
		{"index", "index"},
		{"format", "format"},
		// Soft keywords stay untouched.
		{"type", "type"},
		{"match", "match"},
	}

	for _, tt := range tests {
		if got := escapeReservedWord(tt.in); got != tt.want {
			t.Errorf("escapeReservedWord(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsValidIdentifier(t *testing.T) {
	valid := []string{"index", "_source", "from_", "wait_for_active_shards", "v2"}
	for _, name := range valid {
		if !isValidIdentifier(name) {
			t.Errorf("isValidIdentifier(%q) = false, want true", name)
		}
	}

	invalid := []string{"", "2fa", "with-dash", "a.b", "a b"}
	for _, name := range invalid {
		if isValidIdentifier(name) {
			t.Errorf("isValidIdentifier(%q) = true, want false", name)
		}
	}
}
