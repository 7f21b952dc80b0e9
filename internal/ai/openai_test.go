package ai

import "testing"

func TestJSONSpan(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare object", `{"english": "hi"}`, `{"english": "hi"}`},
		{"leading chatter", "Sure! Here you go:\n{\"english\": \"hi\"}", `{"english": "hi"}`},
		{"code fence", "```json\n{\"english\": \"hi\"}\n```", `{"english": "hi"}`},
		{"nested braces", `{"a": {"b": 1}} trailing`, `{"a": {"b": 1}}`},
		{"no braces", "no json here", "no json here"},
		{"reversed braces", "} oops {", "} oops {"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := jsonSpan(tt.input); got != tt.expected {
				t.Errorf("jsonSpan(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsJapanese(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"こんにちは", true},
		{"カタカナ", true},
		{"日本語", true},
		{"hello world", false},
		{"that's a great idea", false},
		{"mixed 日本語 and english", true},
		{"", false},
	}

	for _, tt := range tests {
		if got := isJapanese(tt.input); got != tt.expected {
			t.Errorf("isJapanese(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}
