package repository

import (
	"context"

	"guestgate-service/internal/domain/entity"
)

// IdentityProvider defines the interface to the external identity
// provider. Sign-in is a two-step challenge for phone (send code, verify
// code) and a token verification for federated accounts. SignOut may
// fail; callers must not let that block a redirect.
type IdentityProvider interface {
	VerifyIDToken(ctx context.Context, idToken string) (*entity.Identity, error)
	SendPhoneCode(ctx context.Context, phoneNumber string) (sessionInfo string, err error)
	VerifyPhoneCode(ctx context.Context, sessionInfo, code string) (*entity.Identity, error)
	SignOut(ctx context.Context, identity *entity.Identity) error
}
