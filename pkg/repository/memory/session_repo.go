package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/careeradvisor/pkg/chat"
)

// SessionRepository keeps transcripts in process memory. Used when no
// DATABASE_URL is configured and in tests.
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]chat.Session
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[uuid.UUID]chat.Session)}
}

func (r *SessionRepository) Create(_ context.Context, s chat.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = clone(s)
	return nil
}

func (r *SessionRepository) Get(_ context.Context, ownerID, id uuid.UUID) (chat.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok || s.OwnerID != ownerID {
		return chat.Session{}, chat.ErrSessionNotFound
	}
	return clone(s), nil
}

func (r *SessionRepository) ListByOwner(_ context.Context, ownerID uuid.UUID, limit, offset int) ([]chat.Session, error) {
	r.mu.RLock()
	var out []chat.Session
	for _, s := range r.sessions {
		if s.OwnerID == ownerID {
			out = append(out, clone(s))
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if offset >= len(out) {
		return []chat.Session{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *SessionRepository) Append(_ context.Context, ownerID, id uuid.UUID, msgs ...chat.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || s.OwnerID != ownerID {
		return chat.ErrSessionNotFound
	}
	s.Messages = append(s.Messages, msgs...)
	s.UpdatedAt = time.Now().UTC()
	r.sessions[id] = s
	return nil
}

func (r *SessionRepository) Reset(_ context.Context, ownerID, id uuid.UUID, seed chat.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || s.OwnerID != ownerID {
		return chat.ErrSessionNotFound
	}
	s.Messages = []chat.Message{seed}
	s.UpdatedAt = time.Now().UTC()
	r.sessions[id] = s
	return nil
}

func (r *SessionRepository) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || s.OwnerID != ownerID {
		return chat.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

func clone(s chat.Session) chat.Session {
	s.Messages = append([]chat.Message(nil), s.Messages...)
	return s
}

var _ chat.Repository = (*SessionRepository)(nil)
