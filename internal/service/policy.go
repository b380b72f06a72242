package service

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/and161185/realm-accounts/internal/errs"
)

// Account policy enforced before any credential is derived or checked.
const (
	minPasswordLen      = 6
	minLoginPasswordLen = 3
	maxPasswordLen      = 50
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9]{3,16}$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

func checkUsername(username string) error {
	if !usernameRe.MatchString(username) {
		return fmt.Errorf("%w: username must be 3-16 letters or digits", errs.ErrInvalidArgument)
	}
	return nil
}

func checkPassword(password string, minLen int) error {
	if n := utf8.RuneCountInString(password); n < minLen || n > maxPasswordLen {
		return fmt.Errorf("%w: password must be %d-%d characters", errs.ErrInvalidArgument, minLen, maxPasswordLen)
	}
	return nil
}

func checkEmail(email string) error {
	if !emailRe.MatchString(email) {
		return fmt.Errorf("%w: invalid email address", errs.ErrInvalidArgument)
	}
	return nil
}
