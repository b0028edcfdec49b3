// internal/domain/entity/errors.go
package entity

import "errors"

// Sentinel errors for the resolution and submission flows. Store errors
// must stay distinguishable from "no match": collapsing them would force
// sign-outs during outages.
var (
	ErrNoIdentity       = errors.New("no authenticated identity")
	ErrNoMatch          = errors.New("no matching reservation")
	ErrStoreUnavailable = errors.New("reservation store unavailable")
	ErrSubmissionFailed = errors.New("flight info submission failed")
)
