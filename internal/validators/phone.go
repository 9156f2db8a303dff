package validators

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const MaxNameLength = 100

// NormalizePhone strips spaces, dashes, dots and parentheses and accepts an
// optional leading "+" followed by 7 to 15 digits.
func NormalizePhone(raw string) (string, bool) {
	var b strings.Builder
	for i, r := range strings.TrimSpace(raw) {
		switch {
		case r == '+' && i == 0:
			b.WriteRune(r)
		case unicode.IsDigit(r) && r <= unicode.MaxASCII:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return "", false
		}
	}

	phone := b.String()
	digits := len(strings.TrimPrefix(phone, "+"))
	if digits < 7 || digits > 15 {
		return "", false
	}
	return phone, true
}

// NormalizeName trims the customer name and rejects empty or oversized input.
func NormalizeName(raw string) (string, bool) {
	name := strings.Join(strings.Fields(raw), " ")
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return "", false
	}
	return name, true
}
