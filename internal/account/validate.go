package account

import "strings"

const pinLength = 4

// ValidPIN reports whether pin is exactly four decimal digits.
func ValidPIN(pin string) bool {
	if len(pin) != pinLength {
		return false
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return false
		}
	}
	return true
}

// ValidUsername reports whether username is non-empty after trimming
// surrounding whitespace.
func ValidUsername(username string) bool {
	return strings.TrimSpace(username) != ""
}
