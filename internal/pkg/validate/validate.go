package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/search-team-api/internal/domain"
)

// v is the package-level singleton validator. Custom tags are registered in
// init() before the first call to Struct.
var v = validator.New()

func init() {
	_ = v.RegisterValidation("password_policy", func(fl validator.FieldLevel) bool {
		return Password(fl.Field().String())
	})
	_ = v.RegisterValidation("email_policy", func(fl validator.FieldLevel) bool {
		return Email(fl.Field().String())
	})
}

// Struct validates the given struct using its validate tags.
// Returns a human-readable error string or nil.
func Struct(s interface{}) error {
	if err := v.Struct(s); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var msgs []string
		for _, fe := range ve {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return nil
}

const (
	passwordMinLen  = 8
	passwordMaxLen  = 20
	passwordSymbols = "@#$%^&-+=()"
)

// emailPattern is the only email grammar in the service: a local part, one
// "@", a dotted domain and a final segment of 2-4 letters.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)*\.[A-Za-z]{2,4}$`)

// Password reports whether s has 8-20 characters, at least one ASCII digit,
// lowercase and uppercase letter, at least one symbol from @#$%^&-+=() and
// no whitespace.
func Password(s string) bool {
	n := utf8.RuneCountInString(s)
	if n < passwordMinLen || n > passwordMaxLen {
		return false
	}
	var digit, lower, upper, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			return false
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return digit && lower && upper && symbol
}

func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// CheckPassword returns domain.ErrInvalidPassword when s breaks the policy.
func CheckPassword(s string) error {
	if !Password(s) {
		return domain.ErrInvalidPassword
	}
	return nil
}

// CheckEmail returns domain.ErrInvalidEmail when s is malformed.
func CheckEmail(s string) error {
	if !Email(s) {
		return domain.ErrInvalidEmail
	}
	return nil
}
