package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
)

type memEntry struct {
	session   []byte
	expiresAt time.Time
}

type memSession struct {
	mu        sync.Mutex
	sessions  map[string]memEntry
	ttl       time.Duration
	lastSweep time.Time

	now func() time.Time
}

// NewMemorySessionRepository - keeps sessions in process memory. Values are stored encoded so
// callers never share state with the repository. Every save refreshes the ttl, zero disables expiry.
func NewMemorySessionRepository(ttl time.Duration) SessionRepository {
	return &memSession{
		sessions: make(map[string]memEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (that *memSession) CreateOrUpdate(_ context.Context, session *entity.Session) error {
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	now := that.now()
	that.sweep(now)

	entry := memEntry{session: sessionJSON}
	if that.ttl > 0 {
		entry.expiresAt = now.Add(that.ttl)
	}
	that.sessions[session.ID] = entry

	return nil
}

func (that *memSession) GetByID(_ context.Context, id string) (*entity.Session, error) {
	that.mu.Lock()
	entry, ok := that.lookup(id)
	that.mu.Unlock()

	if !ok {
		return nil, ErrSessionNotFound
	}

	var existingSession entity.Session
	if err := json.Unmarshal(entry.session, &existingSession); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &existingSession, nil
}

func (that *memSession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.lookup(id); !ok {
		return ErrSessionNotFound
	}

	delete(that.sessions, id)

	return nil
}

// lookup - returns a live entry and drops it when expired. Callers hold mu.
func (that *memSession) lookup(id string) (memEntry, bool) {
	entry, ok := that.sessions[id]
	if !ok {
		return memEntry{}, false
	}

	if that.expired(entry, that.now()) {
		delete(that.sessions, id)
		return memEntry{}, false
	}

	return entry, true
}

func (that *memSession) expired(entry memEntry, now time.Time) bool {
	return !entry.expiresAt.IsZero() && !now.Before(entry.expiresAt)
}

// sweep - drops expired entries at most once per ttl. Callers hold mu.
func (that *memSession) sweep(now time.Time) {
	if that.ttl <= 0 || now.Sub(that.lastSweep) < that.ttl {
		return
	}

	for id, entry := range that.sessions {
		if that.expired(entry, now) {
			delete(that.sessions, id)
		}
	}

	that.lastSweep = now
}
