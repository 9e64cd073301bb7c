package validation

import "regexp"

const (
	usernameMinLen = 3
	usernameMaxLen = 20
	passwordMinLen = 6
	passwordMaxLen = 32
)

var (
	hasLetter = regexp.MustCompile(`[A-Za-z]`)
	hasDigit  = regexp.MustCompile(`[0-9]`)
)

// Credentials validates a candidate username/password pair and returns all
// violated constraints. An empty result means the pair is acceptable.
//
// The password strength rule requires at least one letter and one digit
// anywhere in the string; position and repetition are unconstrained.
func Credentials(username, password string) []string {
	var violations []string

	if len(username) < usernameMinLen || len(username) > usernameMaxLen {
		violations = append(violations, "username must be between 3 and 20 characters")
	}

	if len(password) < passwordMinLen || len(password) > passwordMaxLen {
		violations = append(violations, "password must be between 6 and 32 characters")
	}

	if !hasLetter.MatchString(password) || !hasDigit.MatchString(password) {
		violations = append(violations, "password is too weak")
	}

	return violations
}
