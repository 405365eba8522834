package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var (
	validate  = validator.New()
	hourRE    = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	nonDigits = regexp.MustCompile(`\D`)
)

func isEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func minLen(s string, n int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= n
}

func requireText(errs ValidationErrors, field, value string) {
	if blank(value) {
		errs.Add(field, "is required")
	}
}

func requireMin(errs ValidationErrors, field, value string, n int) {
	if !minLen(value, n) {
		errs.Add(field, fmt.Sprintf("must have at least %d characters", n))
	}
}

func requireEmail(errs ValidationErrors, field, value string) {
	if !isEmail(value) {
		errs.Add(field, "must be a valid email address")
	}
}

func requireOneOf[T ~string](errs ValidationErrors, field string, value T, allowed []T) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	errs.Add(field, "must be one of: "+strings.Join(names, ", "))
}

// Digits strips everything but 0-9.
func Digits(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

// ValidHour reports whether s is HH:MM on a 24 hour clock.
func ValidHour(s string) bool {
	return hourRE.MatchString(s)
}

// trimOptional turns blank optional text into nil.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
