package utils

import (
	"strings"
	"unicode"

	"guestgate-service/internal/domain/entity"
)

// NormalizeEmail canonicalizes an email for record-store matching:
// trimmed and lowercased. Returns "" for an absent or blank email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone strips whitespace and hyphens from a phone number.
// The leading "+" and every other character are preserved unchanged.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' {
			return -1
		}
		return r
	}, phone)
}

// LookupKeys derives the ordered lookup keys for an identity: email
// first, then phone. Absent fields are skipped, never an error.
func LookupKeys(identity *entity.Identity) []entity.LookupKey {
	var keys []entity.LookupKey

	if email := NormalizeEmail(identity.Email); email != "" {
		keys = append(keys, entity.LookupKey{Field: entity.KeyEmail, Value: email})
	}
	if phone := NormalizePhone(identity.Phone); phone != "" {
		keys = append(keys, entity.LookupKey{Field: entity.KeyPhone, Value: phone})
	}

	return keys
}
