package utils

import "testing"

func TestValidatePhoneNumber(t *testing.T) {
	valid := []string{"9876543210", "0123456789"}
	invalid := []string{"", "12345", "98765432101", "98765x3210", "98765 3210"}

	for _, p := range valid {
		if !ValidatePhoneNumber(p) {
			t.Errorf("expected %q to be valid", p)
		}
	}
	for _, p := range invalid {
		if ValidatePhoneNumber(p) {
			t.Errorf("expected %q to be invalid", p)
		}
	}
}

func TestValidateAadharNumber(t *testing.T) {
	if !ValidateAadharNumber("123456789012") {
		t.Error("expected 12-digit number to be valid")
	}
	for _, a := range []string{"", "1234", "1234567890123", "12345678901x"} {
		if ValidateAadharNumber(a) {
			t.Errorf("expected %q to be invalid", a)
		}
	}
}

func TestNormalizeMobile(t *testing.T) {
	cases := map[string]string{
		"+91 98765 43210": "9876543210",
		"9876543210":      "9876543210",
		"919876543210":    "9876543210",
		"(987) 654-3210":  "9876543210",
	}
	for in, want := range cases {
		if got := NormalizeMobile(in); got != want {
			t.Errorf("NormalizeMobile(%q) = %q, want %q", in, got, want)
		}
	}
}
