package utils

import (
	"testing"
)

func TestNormalizePhoneNumber(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    string
		shouldError bool
	}{
		{
			name:        "Indian mobile with country code",
			input:       "+919876543210",
			expected:    "+919876543210",
			shouldError: false,
		},
		{
			name:        "Indian mobile without country code",
			input:       "9876543210",
			expected:    "+919876543210",
			shouldError: false,
		},
		{
			name:        "Indian mobile with spaces",
			input:       "98765 43210",
			expected:    "+919876543210",
			shouldError: false,
		},
		{
			name:        "Indian mobile with dashes",
			input:       "98765-43210",
			expected:    "+919876543210",
			shouldError: false,
		},
		{
			name:        "Leading and trailing spaces",
			input:       "  9876543210  ",
			expected:    "+919876543210",
			shouldError: false,
		},
		{
			name:        "International format with spaces",
			input:       "+91 98765 43210",
			expected:    "+919876543210",
			shouldError: false,
		},
		{
			name:        "Too short",
			input:       "123",
			expected:    "",
			shouldError: true,
		},
		{
			name:        "Not a number",
			input:       "ask-the-pandit",
			expected:    "",
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhoneNumber(tt.input)
			if tt.shouldError {
				if err == nil {
					t.Errorf("NormalizePhoneNumber(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizePhoneNumber(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("NormalizePhoneNumber(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCleanPhoneNumber(t *testing.T) {
	if got := CleanPhoneNumber("9876543210"); got != "+919876543210" {
		t.Errorf("CleanPhoneNumber valid = %q", got)
	}
	// Unparseable input is kept as typed, just trimmed.
	if got := CleanPhoneNumber("  uncle's landline  "); got != "uncle's landline" {
		t.Errorf("CleanPhoneNumber fallback = %q", got)
	}
	if got := CleanPhoneNumber("   "); got != "" {
		t.Errorf("CleanPhoneNumber blank = %q", got)
	}
}
