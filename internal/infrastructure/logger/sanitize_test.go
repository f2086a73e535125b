package logger

import "testing"

func TestSanitizeForLog(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain input ref", input: "7f3c2a1e-clip", expected: "7f3c2a1e-clip"},
		{name: "empty", input: "", expected: ""},
		{name: "newline", input: "clip\nINFO: job completed", expected: "clip\\nINFO: job completed"},
		{name: "carriage return", input: "clip\rx", expected: "clip\\rx"},
		{name: "tab", input: "a\tb", expected: "a\\tb"},
		{name: "null byte", input: "clip\x00.mp4", expected: "clip\\x00.mp4"},
		{name: "ansi escape", input: "\x1b[31mred", expected: "\\x1b[31mred"},
		{name: "bell", input: "a\x07b", expected: "a\\x07b"},
		{name: "DEL", input: "a\x7fb", expected: "a\\x7fb"},
		{name: "unicode kept", input: "vidéo_日本.mp4", expected: "vidéo_日本.mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeForLog(tt.input); got != tt.expected {
				t.Errorf("SanitizeForLog(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSanitizeForLog_NoRawControlChars(t *testing.T) {
	for i := 0; i < 32; i++ {
		got := SanitizeForLog(string(rune(i)))
		for _, r := range got {
			if r < 32 {
				t.Errorf("control char 0x%02x left unescaped: %q", i, got)
			}
		}
	}
}
