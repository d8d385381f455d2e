package domain

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigit     = regexp.MustCompile(`\D`)
)

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidPhone accepts any formatting as long as exactly 10 digits remain.
func IsValidPhone(phone string) bool {
	return len(phoneDigits(phone)) == 10
}

// FormatPhone renders 10-digit numbers as (555) 123-4567 and returns anything else unchanged.
func FormatPhone(phone string) string {
	d := phoneDigits(phone)
	if len(d) != 10 {
		return phone
	}
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(d[:3])
	b.WriteString(") ")
	b.WriteString(d[3:6])
	b.WriteString("-")
	b.WriteString(d[6:])
	return b.String()
}

func phoneDigits(phone string) string {
	return nonDigit.ReplaceAllString(phone, "")
}
