package credential

import (
	"fmt"     // Error wrapping
	"regexp"  // Email shape
	"strings" // Symbol lookup
	"unicode" // Character classes
)

// Default rule parameters.
const (
	DefaultEmailPattern      = `^[^\s@]+@[^\s@]+\.[^\s@]+$`
	DefaultPasswordSymbols   = "@$!%*#?&"
	DefaultPasswordMinLength = 8
	DefaultEmailMinLength    = 5
	DefaultEmailMaxLength    = 30

	// MaxPasswordBytes is the longest input bcrypt accepts.
	MaxPasswordBytes = 72
)

// Policy holds the format predicates applied to user input. The predicates
// are plain functions so stricter rules can be swapped in without touching
// the validator or the service.
type Policy struct {
	EmailMinLength int
	EmailMaxLength int
	Email          func(email string) bool
	Password       func(password string) bool
}

// DefaultPolicy returns the stock rules: a basic email shape of 5 to 30
// characters and a password of at least 8 characters mixing a letter, a
// digit and one of @$!%*#?&.
func DefaultPolicy() Policy {
	p, _ := NewPolicy("", "", 0)
	return p
}

// NewPolicy builds a policy, falling back to the defaults for empty or zero
// arguments.
func NewPolicy(emailPattern, passwordSymbols string, passwordMinLength int) (Policy, error) {
	if emailPattern == "" {
		emailPattern = DefaultEmailPattern
	}
	if passwordSymbols == "" {
		passwordSymbols = DefaultPasswordSymbols
	}
	if passwordMinLength <= 0 {
		passwordMinLength = DefaultPasswordMinLength
	}
	email, err := EmailShape(emailPattern)
	if err != nil {
		return Policy{}, err
	}
	return Policy{
		EmailMinLength: DefaultEmailMinLength,
		EmailMaxLength: DefaultEmailMaxLength,
		Email:          email,
		Password:       PasswordComplexity(passwordSymbols, passwordMinLength),
	}, nil
}

// EmailShape compiles pattern into an email predicate.
func EmailShape(pattern string) (func(string) bool, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid email pattern: %w", err)
	}
	return re.MatchString, nil
}

// PasswordComplexity returns a predicate accepting passwords of minLength
// to MaxPasswordBytes characters drawn only from ASCII letters, digits and
// symbols, with at least one of each class.
func PasswordComplexity(symbols string, minLength int) func(string) bool {
	return func(password string) bool {
		if len(password) < minLength || len(password) > MaxPasswordBytes {
			return false // Outside the length bounds
		}
		var letter, digit, symbol bool
		for _, r := range password {
			switch {
			case r < unicode.MaxASCII && unicode.IsLetter(r):
				letter = true
			case r < unicode.MaxASCII && unicode.IsDigit(r):
				digit = true
			case strings.ContainsRune(symbols, r):
				symbol = true
			default:
				return false
			}
		}
		return letter && digit && symbol
	}
}
