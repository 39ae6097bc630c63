package sanitizer

import (
	"strings"
	"testing"
)

func TestSanitizeInput_SizeLimit(t *testing.T) {
	limit := DefaultMaxInputSize

	tests := []struct {
		name      string
		inputSize int
		wantErr   bool
	}{
		{"Under Limit", limit - 1, false},
		{"Exact Limit", limit, false},
		{"Over Limit", limit + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SanitizeInput(strings.Repeat("a", tt.inputSize))
			if tt.wantErr && err == nil {
				t.Errorf("SanitizeInput() expected error for size %d, got nil", tt.inputSize)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("SanitizeInput() unexpected error: %v", err)
			}
		})
	}
}

func TestSanitizeInput_EnvOverride(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "3")
	if _, err := SanitizeInput("1234"); err == nil {
		t.Error("expected env override to shrink the limit")
	}
}

func TestSanitizeInput_ControlChars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Normal Text", "2", "2"},
		{"Trailing Newline", " 3\r\n", "3"},
		{"ANSI Code", "\x1b[31m1\x1b[0m", "[31m1[0m"},
		{"Null Byte", "1\x002", "12"},
		{"Bell", "q\x07", "q"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeInput(tt.input)
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestSanitizeInput_InvalidUTF8(t *testing.T) {
	if _, err := SanitizeInput("\xff"); err != ErrInvalidUTF8 {
		t.Errorf("expected ErrInvalidUTF8, got %v", err)
	}
}
