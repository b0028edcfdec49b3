package usecase

import (
	"context"
	"sync"
	"time"

	"guestgate-service/internal/domain/entity"
	"guestgate-service/pkg/logger"

	"github.com/google/uuid"
)

// IdentitySnapshot is one firing of the identity signal. Identity is
// nil when signed out. Each snapshot is authoritative, not a delta, and
// consumers must not assume exactly-once delivery.
type IdentitySnapshot struct {
	Identity *entity.Identity
	Epoch    uint64
}

// Session is the per-device context: the current identity with its
// epoch counter, plus the session cache. The epoch bumps on every
// identity change so in-flight resolutions can detect staleness.
type Session struct {
	id    string
	cache *SessionCache

	mu       sync.Mutex
	identity *entity.Identity
	epoch    uint64
	lastSeen time.Time
	changes  *broadcaster[IdentitySnapshot]
}

func newSession(id string) *Session {
	s := &Session{
		id:       id,
		cache:    NewSessionCache(),
		lastSeen: time.Now(),
		changes:  newBroadcaster[IdentitySnapshot](),
	}
	s.changes.publish(IdentitySnapshot{})
	return s
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Cache returns the session's cache
func (s *Session) Cache() *SessionCache {
	return s.cache
}

// Identity returns the current identity snapshot and its epoch
func (s *Session) Identity() (*entity.Identity, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity, s.epoch
}

// SetIdentity installs a new identity, bumping the epoch
func (s *Session) SetIdentity(identity *entity.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.identity = identity
	s.epoch++
	s.changes.publish(IdentitySnapshot{Identity: identity, Epoch: s.epoch})
}

// ClearIdentity signs the session out locally, bumping the epoch
func (s *Session) ClearIdentity() {
	s.SetIdentity(nil)
}

// EpochIs reports whether the identity is unchanged since epoch was
// observed
func (s *Session) EpochIs(epoch uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch == epoch
}

// CommitReservation writes record to the cache only while the identity
// is still the one observed at epoch. The epoch check and the cache
// write share the session lock, so a sign-out cannot slip between them
// and leave a signed-out session holding a reservation. It reports
// whether the write happened.
func (s *Session) CommitReservation(epoch uint64, record *entity.Reservation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch {
		return false
	}
	s.cache.SetReservation(record)
	return true
}

// IdentityChanges returns a stream of identity snapshots: the current
// one immediately, then every change, until ctx ends
func (s *Session) IdentityChanges(ctx context.Context) <-chan IdentitySnapshot {
	return s.changes.subscribe(ctx)
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

func (s *Session) expired(ttl time.Duration, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen) > ttl
}

// Registry owns every live session, keyed by the session cookie value
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	logger   logger.Logger
}

// NewRegistry creates a new session registry
func NewRegistry(ttl time.Duration, logger logger.Logger) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		logger:   logger,
	}
}

// Create starts a new empty session
func (r *Registry) Create() *Session {
	session := newSession(uuid.NewString())

	r.mu.Lock()
	r.sessions[session.id] = session
	r.mu.Unlock()

	return session
}

// Get returns the session for id, refreshing its expiry
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	session, ok := r.sessions[id]
	r.mu.Unlock()

	if ok {
		session.touch()
	}
	return session, ok
}

// Sweep drops expired sessions on a timer until ctx ends
func (r *Registry) Sweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.expire(time.Now())
		}
	}
}

func (r *Registry) expire(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, session := range r.sessions {
		if session.expired(r.ttl, now) {
			delete(r.sessions, id)
			r.logger.Debug("Session expired", "session", id)
		}
	}
}
