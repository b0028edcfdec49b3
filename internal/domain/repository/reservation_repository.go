package repository

import (
	"context"

	"guestgate-service/internal/domain/entity"
)

// ReservationRepository defines the interface for reservation record
// lookups against the external record store. FindByField performs an
// exact match on a single field and returns every matching record; no
// ordering is guaranteed by the store itself, so implementations must
// sort deterministically (by customerId) before returning.
type ReservationRepository interface {
	FindByField(ctx context.Context, field entity.KeyField, value string) ([]*entity.Reservation, error)
}
