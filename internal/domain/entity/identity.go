// internal/domain/entity/identity.go
package entity

// Identity is an authenticated principal as reported by the identity
// provider. Email and Phone are optional; UID is stable per account.
type Identity struct {
	UID   string
	Email string
	Phone string

	// RefreshToken is carried only so sign-out can revoke it. It must
	// never be logged or serialized.
	RefreshToken string `json:"-"`
}

// KeyField names a Customers field a lookup key matches against.
type KeyField string

const (
	KeyEmail KeyField = "email"
	KeyPhone KeyField = "phone"
)

// LookupKey is a normalized, ephemeral lookup key derived from an
// Identity. Keys are recomputed per resolution attempt and never stored.
type LookupKey struct {
	Field KeyField
	Value string
}
