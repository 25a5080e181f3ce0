package validator

import (
	"testing"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"+15551234567", "+15551234567"},
		{"555-123-4567", "+15551234567"},
		{"(555) 123-4567", "+15551234567"},
		{"5551234567", "+15551234567"},
		{"+44 20 7946 0958", "+442079460958"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizePhone(tt.input); got != tt.expected {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizePhone_Idempotent(t *testing.T) {
	once := NormalizePhone("(555) 123-4567")
	if twice := NormalizePhone(once); twice != once {
		t.Errorf("second pass changed %q to %q", once, twice)
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"5551234567", false},
		{"+1 (555) 123-4567", false},
		{"555-1234", true},
		{"abc", true},
	}

	for _, tt := range tests {
		if err := ValidatePhone(tt.input); (err != nil) != tt.wantErr {
			t.Errorf("ValidatePhone(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"john@example.com", false},
		{"a.b+c@sub.example.co", false},
		{"john@example", true},
		{"john example.com", true},
		{"@example.com", true},
	}

	for _, tt := range tests {
		if err := ValidateEmail(tt.input); (err != nil) != tt.wantErr {
			t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestSSN(t *testing.T) {
	tests := []struct {
		input      string
		wantErr    bool
		normalized string
	}{
		{"123-45-6789", false, "123456789"},
		{"6789", false, "6789"},
		{"123456789", true, ""},
		{"12-345-6789", true, ""},
		{"678", true, ""},
	}

	for _, tt := range tests {
		err := ValidateSSN(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateSSN(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err == nil && NormalizeSSN(tt.input) != tt.normalized {
			t.Errorf("NormalizeSSN(%q) = %q, want %q", tt.input, NormalizeSSN(tt.input), tt.normalized)
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"1990-05-17", "1990-05-17", false},
		{"05/17/1990", "1990-05-17", false},
		{"5/7/1990", "1990-05-07", false},
		{"1990-05-17T00:00:00Z", "1990-05-17", false},
		{"2023-02-30", "", true},
		{"not a date", "", true},
	}

	for _, tt := range tests {
		got, err := NormalizeDate(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("NormalizeDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.expected {
			t.Errorf("NormalizeDate(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
