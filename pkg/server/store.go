package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/mazewalk/pkg/errors"
	"github.com/matzehuels/mazewalk/pkg/game"
	"github.com/matzehuels/mazewalk/pkg/observability"
)

// Eviction reasons reported to [observability.HTTPHooks].
const (
	EvictDeleted  = "deleted"
	EvictExpired  = "expired"
	EvictCapacity = "capacity"
)

// Session is one game. The game is not safe for concurrent use, so every
// handler holds mu while it touches it.
type Session struct {
	id       uuid.UUID
	mu       sync.Mutex
	game     *game.Game
	lastSeen time.Time
}

// Store keeps sessions in memory. Sessions idle for longer than the TTL are
// dropped by [Store.Sweep]; when the store is full the least recently used
// session makes room for a new one.
type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	max      int
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates an empty store. A ttl of 0 keeps sessions until they are
// deleted or pushed out.
func NewStore(maxSessions int, ttl time.Duration) *Store {
	if maxSessions < 1 {
		maxSessions = 1
	}
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		max:      maxSessions,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a new game and stores it under a fresh ID.
func (s *Store) Create(ctx context.Context, width, height int, opts ...game.Option) (*Session, error) {
	g, err := game.New(width, height, opts...)
	if err != nil {
		return nil, err
	}
	sess := &Session{id: uuid.New(), game: g}

	s.mu.Lock()
	now := s.now()
	sess.lastSeen = now
	s.sweepLocked(ctx, now)
	for len(s.sessions) >= s.max {
		s.evictOldestLocked(ctx)
	}
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	observability.HTTP().OnSessionCreate(ctx, sess.id.String(), width, height)
	return sess, nil
}

// Get returns a live session and marks it as used.
func (s *Store) Get(id string) (*Session, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.New(errors.ErrCodeNotFound, "session %q not found", id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[uid]
	now := s.now()
	if !ok || s.expired(sess, now) {
		return nil, errors.New(errors.ErrCodeNotFound, "session %q not found", id)
	}
	sess.lastSeen = now
	return sess, nil
}

// Delete removes a session.
func (s *Store) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return errors.New(errors.ErrCodeNotFound, "session %q not found", id)
	}
	s.mu.Lock()
	_, ok := s.sessions[uid]
	delete(s.sessions, uid)
	s.mu.Unlock()
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "session %q not found", id)
	}
	observability.HTTP().OnSessionEvict(ctx, id, EvictDeleted)
	return nil
}

// Sweep drops expired sessions and returns how many were removed.
func (s *Store) Sweep(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(ctx, s.now())
}

// Len returns the number of stored sessions, expired ones included.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.lastSeen) > s.ttl
}

func (s *Store) sweepLocked(ctx context.Context, now time.Time) int {
	n := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			observability.HTTP().OnSessionEvict(ctx, id.String(), EvictExpired)
			n++
		}
	}
	return n
}

func (s *Store) evictOldestLocked(ctx context.Context) {
	var oldest *Session
	for _, sess := range s.sessions {
		if oldest == nil || sess.lastSeen.Before(oldest.lastSeen) {
			oldest = sess
		}
	}
	if oldest == nil {
		return
	}
	delete(s.sessions, oldest.id)
	observability.HTTP().OnSessionEvict(ctx, oldest.id.String(), EvictCapacity)
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id.String() }
