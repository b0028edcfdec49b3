package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guestgate-service/internal/domain/entity"
	"guestgate-service/pkg/logger"
)

func newTestRegistry(ttl time.Duration) *Registry {
	return NewRegistry(ttl, logger.NewNop())
}

func receiveIdentity(t *testing.T, ch <-chan IdentitySnapshot) IdentitySnapshot {
	t.Helper()
	select {
	case snap, ok := <-ch:
		require.True(t, ok, "stream closed unexpectedly")
		return snap
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for identity snapshot")
		return IdentitySnapshot{}
	}
}

// TestIdentityChangesStream: a new watcher sees the current state
// immediately, then every change in order, each snapshot authoritative
// with its epoch.
func TestIdentityChangesStream(t *testing.T) {
	session := newTestRegistry(time.Hour).Create()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := session.IdentityChanges(ctx)

	snap := receiveIdentity(t, ch)
	assert.Nil(t, snap.Identity)

	jane := &entity.Identity{UID: "u1", Email: "jane@example.com"}
	session.SetIdentity(jane)
	session.ClearIdentity()
	session.SetIdentity(&entity.Identity{UID: "u2", Phone: "+15551234567"})

	snap = receiveIdentity(t, ch)
	assert.Equal(t, jane, snap.Identity)
	first := snap.Epoch

	snap = receiveIdentity(t, ch)
	assert.Nil(t, snap.Identity)
	assert.Equal(t, first+1, snap.Epoch)

	snap = receiveIdentity(t, ch)
	require.NotNil(t, snap.Identity)
	assert.Equal(t, "u2", snap.Identity.UID)
	assert.Equal(t, first+2, snap.Epoch)
}

func TestIdentityChangesStreamClosesOnCancel(t *testing.T) {
	session := newTestRegistry(time.Hour).Create()
	ctx, cancel := context.WithCancel(context.Background())

	ch := session.IdentityChanges(ctx)
	receiveIdentity(t, ch)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("stream did not close after cancel")
	}
}

// TestCommitReservationStaleEpoch: a sign-out between observing the
// epoch and committing the lookup result must keep the cache empty.
func TestCommitReservationStaleEpoch(t *testing.T) {
	session := newTestRegistry(time.Hour).Create()
	session.SetIdentity(&entity.Identity{UID: "u1", Email: "jane@example.com"})
	_, epoch := session.Identity()

	session.ClearIdentity()

	assert.False(t, session.CommitReservation(epoch, reservation("C-1")))
	assert.Nil(t, session.Cache().CurrentReservation())
}

func TestCommitReservationCurrentEpoch(t *testing.T) {
	session := newTestRegistry(time.Hour).Create()
	session.SetIdentity(&entity.Identity{UID: "u1", Email: "jane@example.com"})
	_, epoch := session.Identity()

	record := reservation("C-1")
	assert.True(t, session.CommitReservation(epoch, record))
	assert.Equal(t, record, session.Cache().CurrentReservation())
}

// TestRegistryExpiry: sessions survive a sweep inside the TTL and are
// dropped by one past it.
func TestRegistryExpiry(t *testing.T) {
	registry := newTestRegistry(time.Minute)
	session := registry.Create()

	registry.expire(time.Now().Add(30 * time.Second))
	_, ok := registry.Get(session.ID())
	require.True(t, ok)

	registry.expire(time.Now().Add(2 * time.Minute))
	_, ok = registry.Get(session.ID())
	assert.False(t, ok)
}
