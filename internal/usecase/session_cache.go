package usecase

import (
	"context"
	"sync"

	"guestgate-service/internal/domain/entity"
)

// ReservationSnapshot is one observation of the cache's reservation
// slot. Reservation is nil while the slot is empty. Version increases
// with every write, including same-value writes.
type ReservationSnapshot struct {
	Reservation *entity.Reservation
	Version     uint64
}

// SessionCache holds the session's resolved reservation and the guest's
// in-progress flight draft. The reservation slot is written by the
// access guard and cleared on failed resolution or sign-out; the draft
// is never cleared automatically, so a guest can revisit and edit it
// until final submission. Last write wins under concurrent writers.
type SessionCache struct {
	mu          sync.Mutex
	reservation *entity.Reservation
	draft       *entity.FlightDraft
	version     uint64
	changes     *broadcaster[ReservationSnapshot]
}

// NewSessionCache creates an empty cache
func NewSessionCache() *SessionCache {
	c := &SessionCache{
		changes: newBroadcaster[ReservationSnapshot](),
	}
	// Prime with the empty state so the first subscriber sees it
	c.changes.publish(ReservationSnapshot{})
	return c
}

// SetReservation replaces the current reservation and notifies observers
func (c *SessionCache) SetReservation(record *entity.Reservation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reservation = record
	c.version++
	c.changes.publish(ReservationSnapshot{Reservation: record, Version: c.version})
}

// ClearReservation empties the reservation slot and notifies observers.
// The draft is untouched.
func (c *SessionCache) ClearReservation() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reservation = nil
	c.version++
	c.changes.publish(ReservationSnapshot{Version: c.version})
}

// CurrentReservation returns the latest resolved reservation, or nil
func (c *SessionCache) CurrentReservation() *entity.Reservation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reservation
}

// Changes returns a stream of reservation snapshots. The subscriber
// immediately receives the current state, then every subsequent write
// in write order. The channel closes when ctx ends.
func (c *SessionCache) Changes(ctx context.Context) <-chan ReservationSnapshot {
	return c.changes.subscribe(ctx)
}

// SetDraft stores a copy of the guest's flight draft
func (c *SessionCache) SetDraft(draft *entity.FlightDraft) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if draft == nil {
		c.draft = nil
		return
	}
	copied := *draft
	c.draft = &copied
}

// CurrentDraft returns a copy of the cached draft, or nil
func (c *SessionCache) CurrentDraft() *entity.FlightDraft {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft == nil {
		return nil
	}
	copied := *c.draft
	return &copied
}
