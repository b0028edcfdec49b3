package usecase

import (
	"context"
	"errors"

	"guestgate-service/internal/domain/entity"
	"guestgate-service/internal/domain/repository"
	"guestgate-service/pkg/logger"
	"guestgate-service/pkg/metrics"
)

// Outcome is the terminal state of one navigation attempt.
type Outcome string

const (
	OutcomeAllowed               Outcome = "allowed"
	OutcomeDeniedUnauthenticated Outcome = "denied_unauthenticated"
	OutcomeDeniedUnauthorized    Outcome = "denied_unauthorized"
	OutcomeLookupFailed          Outcome = "lookup_failed"
)

// Reason codes carried to the entry view as query parameters. The three
// denial paths stay distinct: unauthenticated, unauthorized and infra
// failure produce different user-facing messages.
const (
	ReasonNotAuthorized = "not-authorized"
	ReasonLookupError   = "lookup-error"
)

// Decision is the result of guarding one navigation attempt.
type Decision struct {
	Outcome     Outcome
	Reason      string
	Reservation *entity.Reservation
}

// Allowed reports whether navigation may proceed
func (d Decision) Allowed() bool {
	return d.Outcome == OutcomeAllowed
}

// AccessGuard gates navigation into protected views: it checks the
// session's identity, resolves it to a reservation and caches the
// result before deciding.
type AccessGuard struct {
	resolver *Resolver
	provider repository.IdentityProvider
	metrics  *metrics.Metrics
	logger   logger.Logger
}

// NewAccessGuard creates a new access guard
func NewAccessGuard(resolver *Resolver, provider repository.IdentityProvider, metrics *metrics.Metrics, logger logger.Logger) *AccessGuard {
	return &AccessGuard{
		resolver: resolver,
		provider: provider,
		metrics:  metrics,
		logger:   logger,
	}
}

// Authorize runs one navigation attempt to completion. Resolution always
// finishes (or fails) before any allow/deny decision; a lookup result
// that arrives after the identity changed is discarded and the attempt
// re-evaluated against the fresh snapshot, so stale results never touch
// the cache.
func (g *AccessGuard) Authorize(ctx context.Context, session *Session) Decision {
	for {
		identity, epoch := session.Identity()
		if identity == nil {
			return g.decide(OutcomeDeniedUnauthenticated, "", nil)
		}

		record, err := g.resolver.Resolve(ctx, identity)

		if !session.EpochIs(epoch) {
			g.metrics.StaleDiscards.Inc()
			g.logger.Info("Discarding stale resolution result", "session", session.ID())
			continue
		}

		switch {
		case err == nil:
			if !session.CommitReservation(epoch, record) {
				g.metrics.StaleDiscards.Inc()
				g.logger.Info("Discarding stale resolution result", "session", session.ID())
				continue
			}
			return g.decide(OutcomeAllowed, "", record)

		case errors.Is(err, entity.ErrStoreUnavailable):
			// Infra failure, not an authorization failure: the guest
			// stays signed in and may retry.
			g.logger.Error("Reservation lookup unavailable",
				"session", session.ID(),
				"error", err)
			return g.decide(OutcomeLookupFailed, ReasonLookupError, nil)

		default:
			// No matching record: force sign-out, then clear the cache.
			if signOutErr := g.provider.SignOut(ctx, identity); signOutErr != nil {
				g.logger.Warn("Provider sign-out failed",
					"session", session.ID(),
					"error", signOutErr)
			}
			session.ClearIdentity()
			session.Cache().ClearReservation()
			return g.decide(OutcomeDeniedUnauthorized, ReasonNotAuthorized, nil)
		}
	}
}

func (g *AccessGuard) decide(outcome Outcome, reason string, record *entity.Reservation) Decision {
	g.metrics.GuardDecisions.WithLabelValues(string(outcome)).Inc()
	return Decision{Outcome: outcome, Reason: reason, Reservation: record}
}
