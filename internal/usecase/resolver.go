package usecase

import (
	"context"
	"fmt"
	"time"

	"guestgate-service/internal/domain/entity"
	"guestgate-service/internal/domain/repository"
	"guestgate-service/pkg/logger"
	"guestgate-service/pkg/metrics"
	"guestgate-service/pkg/utils"
)

// Resolver matches an authenticated identity to at most one reservation
// record. Lookup keys are tried in priority order (email, then phone),
// one store query per key, and the first key with any matches wins.
type Resolver struct {
	reservations repository.ReservationRepository
	metrics      *metrics.Metrics
	logger       logger.Logger
}

// NewResolver creates a new resolver
func NewResolver(reservations repository.ReservationRepository, metrics *metrics.Metrics, logger logger.Logger) *Resolver {
	return &Resolver{
		reservations: reservations,
		metrics:      metrics,
		logger:       logger,
	}
}

// Resolve returns the reservation for identity, ErrNoMatch when every
// key is exhausted, or ErrStoreUnavailable when the store itself fails.
// A store failure is never reported as a missing match.
func (r *Resolver) Resolve(ctx context.Context, identity *entity.Identity) (*entity.Reservation, error) {
	keys := utils.LookupKeys(identity)
	if len(keys) == 0 {
		r.logger.Debug("Identity has no usable lookup keys", "uid", identity.UID)
		return nil, entity.ErrNoIdentity
	}

	for _, key := range keys {
		start := time.Now()
		records, err := r.reservations.FindByField(ctx, key.Field, key.Value)
		r.metrics.LookupDuration.Observe(time.Since(start).Seconds())

		if err != nil {
			r.logger.Error("Record store query failed",
				"uid", identity.UID,
				"field", key.Field,
				"error", err)
			return nil, fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
		}

		if len(records) == 0 {
			r.logger.Debug("No reservation for key", "uid", identity.UID, "field", key.Field)
			continue
		}

		if len(records) > 1 {
			// Email/phone are assumed unique upstream; flag the
			// violation but proceed with the deterministic first.
			r.metrics.MultiMatchTotal.Inc()
			r.logger.Warn("Multiple reservations matched one key",
				"uid", identity.UID,
				"field", key.Field,
				"count", len(records))
		}

		r.logger.Info("Reservation resolved", "uid", identity.UID, "field", key.Field)
		return records[0], nil
	}

	return nil, entity.ErrNoMatch
}
