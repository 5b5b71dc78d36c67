package domain

import (
	"net/mail"
	"strings"
)

// NormalizeEmail lower-cases the domain part and keeps the local part as typed.
func NormalizeEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", ErrInvalidEmail
	}
	email = email[:at] + "@" + strings.ToLower(email[at+1:])

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || len(email) > 254 {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// NormalizePhone strips formatting and requires an area code plus number,
// 10 or 11 digits in total. An empty phone stays empty.
func NormalizePhone(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	digits := onlyDigits(raw)
	if len(digits) < 10 || len(digits) > 11 {
		return "", ErrInvalidPhone
	}
	return digits, nil
}
