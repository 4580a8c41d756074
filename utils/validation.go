package utils

import (
	"regexp"
)

var (
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitsRe = regexp.MustCompile(`^\d+$`)
	nonDigit = regexp.MustCompile(`\D`)
)

func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

// ValidatePhoneNumber checks for exactly 10 digits.
func ValidatePhoneNumber(phone string) bool {
	return len(phone) == 10 && digitsRe.MatchString(phone)
}

// ValidateAadharNumber checks for exactly 12 digits.
func ValidateAadharNumber(aadhar string) bool {
	return len(aadhar) == 12 && digitsRe.MatchString(aadhar)
}

// NormalizeMobile strips everything but digits and keeps the last 10,
// so "+91 98765-43210" and "9876543210" address the same account.
func NormalizeMobile(mobile string) string {
	digits := nonDigit.ReplaceAllString(mobile, "")
	if len(digits) > 10 {
		digits = digits[len(digits)-10:]
	}
	return digits
}
