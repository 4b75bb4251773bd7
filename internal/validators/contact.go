package validators

import (
	"regexp"
	"strings"
)

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe    = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,50}$`)

	phoneNoise = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
)

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func IsEmail(email string) bool {
	return emailRe.MatchString(email)
}

// IsPhone accepts an optional leading '+' and up to 16 digits; spaces,
// dashes and parentheses are ignored.
func IsPhone(phone string) bool {
	return phoneRe.MatchString(phoneNoise.Replace(phone))
}

func IsUsername(username string) bool {
	return usernameRe.MatchString(username)
}

func IsPassword(pw string) bool {
	return len(pw) >= 6
}
