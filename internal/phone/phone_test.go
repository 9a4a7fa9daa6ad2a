package phone

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"formatted international", "+7 (912) 345-67-89", "+79123456789"},
		{"trunk prefix 8", "89123456789", "+79123456789"},
		{"country code 7 without plus", "79123456789", "+79123456789"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"no digits", "call me", ""},
		{"plus with no digits", "+ ( ) -", ""},
		{"short local number", "123-45", "+12345"},
		{"8 prefix wrong length", "8912345678", "+8912345678"},
		{"plus keeps 8", "+8 912 345 67 89", "+89123456789"},
		{"foreign without plus", "4915112345678", "+4915112345678"},
		{"padded", "  8 (912) 345 67 89  ", "+79123456789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"+7 (912) 345-67-89",
		"89123456789",
		"79123456789",
		"123",
		"+44 20 7946 0958",
		"8-800-555-35-35",
	}

	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize(Normalize(%q)) = %q, want %q", in, twice, once)
		}
	}
}

func TestDigits(t *testing.T) {
	if got := Digits("+7 (912) ٣45"); got != "791245" {
		t.Errorf("Digits() = %q, want %q", got, "791245")
	}
}
