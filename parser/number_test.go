package parser

import "testing"

func TestParseNumberBases(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"42", 42},
		{"-1", -1},
		{"0x2A", 42},
		{"0b101010", 42},
		{"0", 0},
	}
	for _, tt := range tests {
		got, err := ParseNumber(tt.in)
		if err != nil {
			t.Errorf("ParseNumber(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseNumber(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseNumberInvalid(t *testing.T) {
	if _, err := ParseNumber("not-a-number"); err == nil {
		t.Fatal("expected error for invalid literal")
	}
}
