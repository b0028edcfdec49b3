package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"guestgate-service/internal/domain/entity"
	"guestgate-service/pkg/logger"
)

type AccessGuardSuite struct {
	suite.Suite
	repo     *fakeReservationRepo
	provider *fakeProvider
	registry *Registry
	guard    *AccessGuard
	session  *Session
	ctx      context.Context
}

func (s *AccessGuardSuite) SetupTest() {
	s.repo = newFakeReservationRepo()
	s.provider = &fakeProvider{}
	s.registry = NewRegistry(time.Hour, logger.NewNop())
	s.session = s.registry.Create()
	s.ctx = context.Background()

	m := newTestMetrics()
	resolver := NewResolver(s.repo, m, logger.NewNop())
	s.guard = NewAccessGuard(resolver, s.provider, m, logger.NewNop())
}

func TestAccessGuardSuite(t *testing.T) {
	suite.Run(t, new(AccessGuardSuite))
}

// TestAllowed verifies the happy path: identity resolves, the record is
// cached, navigation proceeds.
func (s *AccessGuardSuite) TestAllowed() {
	record := reservation("C-1")
	s.repo.add(entity.KeyEmail, "jane@example.com", record)
	s.session.SetIdentity(&entity.Identity{UID: "u1", Email: " Jane@Example.com "})

	decision := s.guard.Authorize(s.ctx, s.session)

	s.True(decision.Allowed())
	s.Equal(record, decision.Reservation)
	s.Equal(record, s.session.Cache().CurrentReservation())
	s.Empty(s.provider.signOuts)
}

// TestAllowedByPhone covers phone-only identities.
func (s *AccessGuardSuite) TestAllowedByPhone() {
	record := reservation("C-2")
	s.repo.add(entity.KeyPhone, "+15551234567", record)
	s.session.SetIdentity(&entity.Identity{UID: "u2", Phone: "+1 555-123-4567"})

	decision := s.guard.Authorize(s.ctx, s.session)

	s.Equal(OutcomeAllowed, decision.Outcome)
	s.Equal(record, s.session.Cache().CurrentReservation())
}

func (s *AccessGuardSuite) TestDeniedUnauthenticated() {
	decision := s.guard.Authorize(s.ctx, s.session)

	s.Equal(OutcomeDeniedUnauthenticated, decision.Outcome)
	s.Empty(decision.Reason)
	s.Empty(s.repo.queries)
	s.Empty(s.provider.signOuts)
}

// TestDeniedUnauthorized verifies the forced sign-out path: provider
// sign-out, local identity cleared, cache cleared, reason carried.
func (s *AccessGuardSuite) TestDeniedUnauthorized() {
	identity := &entity.Identity{UID: "u1", Email: "stranger@example.com"}
	s.session.SetIdentity(identity)

	decision := s.guard.Authorize(s.ctx, s.session)

	s.Equal(OutcomeDeniedUnauthorized, decision.Outcome)
	s.Equal(ReasonNotAuthorized, decision.Reason)
	s.Equal([]*entity.Identity{identity}, s.provider.signOuts)
	s.Nil(s.session.Cache().CurrentReservation())

	current, _ := s.session.Identity()
	s.Nil(current)
}

// TestDeniedUnauthorizedSignOutFailure: a failing provider sign-out
// must not block the denial.
func (s *AccessGuardSuite) TestDeniedUnauthorizedSignOutFailure() {
	s.provider.signOutErr = errors.New("revoke endpoint down")
	s.session.SetIdentity(&entity.Identity{UID: "u1", Email: "stranger@example.com"})

	decision := s.guard.Authorize(s.ctx, s.session)

	s.Equal(OutcomeDeniedUnauthorized, decision.Outcome)
	current, _ := s.session.Identity()
	s.Nil(current)
}

// TestLookupFailed verifies a store outage is not treated as an
// authorization failure: no sign-out, identity kept, distinct reason.
func (s *AccessGuardSuite) TestLookupFailed() {
	s.repo.err = errors.New("connection refused")
	identity := &entity.Identity{UID: "u1", Email: "jane@example.com"}
	s.session.SetIdentity(identity)

	decision := s.guard.Authorize(s.ctx, s.session)

	s.Equal(OutcomeLookupFailed, decision.Outcome)
	s.Equal(ReasonLookupError, decision.Reason)
	s.Empty(s.provider.signOuts)

	current, _ := s.session.Identity()
	s.Equal(identity, current)
}

// TestStaleResolutionDiscarded: the identity goes away while the lookup
// is in flight; the late match must not populate the cache.
func (s *AccessGuardSuite) TestStaleResolutionDiscarded() {
	s.repo.add(entity.KeyEmail, "jane@example.com", reservation("C-1"))
	s.session.SetIdentity(&entity.Identity{UID: "u1", Email: "jane@example.com"})

	signedOut := false
	s.repo.onFind = func() {
		if !signedOut {
			signedOut = true
			s.session.ClearIdentity()
		}
	}

	decision := s.guard.Authorize(s.ctx, s.session)

	s.Equal(OutcomeDeniedUnauthenticated, decision.Outcome)
	s.Nil(s.session.Cache().CurrentReservation())
}

// TestStaleResolutionReplaced: the identity is replaced mid-lookup; the
// attempt re-evaluates against the new identity, not the old result.
func (s *AccessGuardSuite) TestStaleResolutionReplaced() {
	oldRecord := reservation("C-1")
	newRecord := reservation("C-2")
	s.repo.add(entity.KeyEmail, "old@example.com", oldRecord)
	s.repo.add(entity.KeyEmail, "new@example.com", newRecord)
	s.session.SetIdentity(&entity.Identity{UID: "u1", Email: "old@example.com"})

	replaced := false
	s.repo.onFind = func() {
		if !replaced {
			replaced = true
			s.session.SetIdentity(&entity.Identity{UID: "u2", Email: "new@example.com"})
		}
	}

	decision := s.guard.Authorize(s.ctx, s.session)

	s.True(decision.Allowed())
	s.Equal(newRecord, s.session.Cache().CurrentReservation())
}
