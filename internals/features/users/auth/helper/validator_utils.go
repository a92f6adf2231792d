package helpers

import (
	"errors"
	"regexp"
	"strings"
)

var (
	hasLetter  = regexp.MustCompile(`[A-Za-z]`)
	hasNumber  = regexp.MustCompile(`[0-9]`)
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

func isAlphaNumeric(s string) bool {
	return hasLetter.MatchString(s) && hasNumber.MatchString(s)
}

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// ValidatePassword: at least 8 characters with letters and digits.
func ValidatePassword(pw string) error {
	if len(pw) < 8 {
		return errors.New("a senha deve ter pelo menos 8 caracteres")
	}
	if !isAlphaNumeric(pw) {
		return errors.New("a senha deve conter letras e números")
	}
	return nil
}

func ValidateLoginInput(email, password string) error {
	if !IsValidEmail(email) {
		return errors.New("e-mail inválido")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("informe a senha")
	}
	return nil
}

// EmailInDomain checks the address belongs to domain (empty domain allows any).
func EmailInDomain(email, domain string) bool {
	domain = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(domain)), "@")
	if domain == "" {
		return true
	}
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(email)), "@"+domain)
}
