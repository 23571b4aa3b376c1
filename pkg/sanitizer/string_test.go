package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"only spaces", "   \t\n ", ""},
		{"leading and trailing", "  leg day  ", "leg day"},
		{"inner runs", "leg \t\t day\n\nplan", "leg day plan"},
		{"unicode", "  Sesión   de  fuerza ", "Sesión de fuerza"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.expected {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"alice@gym.com", "alice@gym.com"},
		{"  Alice@Gym.COM ", "alice@gym.com"},
		{"MIKE", "mike"},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := NormalizeID(tt.input); got != tt.expected {
			t.Errorf("NormalizeID(%q) = %q, want %q", tt.input, got, tt.expected)
		}
		if got := NormalizeID(NormalizeID(tt.input)); got != tt.expected {
			t.Errorf("NormalizeID is not idempotent for %q", tt.input)
		}
	}
}
