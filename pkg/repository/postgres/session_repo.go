package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/careeradvisor/pkg/chat"
)

// SessionRepository stores transcripts as a JSONB array per session.
type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) (*SessionRepository, error) {
	r := &SessionRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *SessionRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS chat_sessions (
	id UUID PRIMARY KEY,
	owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	messages JSONB NOT NULL DEFAULT '[]'::jsonb,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS chat_sessions_owner_updated_idx ON chat_sessions (owner_id, updated_at DESC);
`)
	return err
}

func (r *SessionRepository) Create(ctx context.Context, s chat.Session) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = s.CreatedAt
	}
	messages, err := marshalMessages(s.Messages)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO chat_sessions (id, owner_id, messages, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
`, s.ID, s.OwnerID, messages, s.CreatedAt, s.UpdatedAt)
	return err
}

func (r *SessionRepository) Get(ctx context.Context, ownerID, id uuid.UUID) (chat.Session, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, owner_id, messages, created_at, updated_at
FROM chat_sessions WHERE id = $1 AND owner_id = $2
`, id, ownerID)
	s, err := scanSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return chat.Session{}, chat.ErrSessionNotFound
	}
	return s, err
}

func (r *SessionRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]chat.Session, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, owner_id, messages, created_at, updated_at
FROM chat_sessions WHERE owner_id = $1
ORDER BY updated_at DESC
LIMIT $2 OFFSET $3
`, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []chat.Session{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SessionRepository) Append(ctx context.Context, ownerID, id uuid.UUID, msgs ...chat.Message) error {
	payload, err := marshalMessages(msgs)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
UPDATE chat_sessions
SET messages = messages || $3::jsonb, updated_at = $4
WHERE id = $1 AND owner_id = $2
`, id, ownerID, payload, time.Now().UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return chat.ErrSessionNotFound
	}
	return nil
}

func (r *SessionRepository) Reset(ctx context.Context, ownerID, id uuid.UUID, seed chat.Message) error {
	payload, err := marshalMessages([]chat.Message{seed})
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
UPDATE chat_sessions
SET messages = $3::jsonb, updated_at = $4
WHERE id = $1 AND owner_id = $2
`, id, ownerID, payload, time.Now().UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return chat.ErrSessionNotFound
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM chat_sessions WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return chat.ErrSessionNotFound
	}
	return nil
}

func scanSession(row pgx.Row) (chat.Session, error) {
	var s chat.Session
	var raw []byte
	var created, updated time.Time
	if err := row.Scan(&s.ID, &s.OwnerID, &raw, &created, &updated); err != nil {
		return chat.Session{}, err
	}
	if err := json.Unmarshal(raw, &s.Messages); err != nil {
		return chat.Session{}, fmt.Errorf("decode messages of session %s: %w", s.ID, err)
	}
	s.CreatedAt = created.UTC()
	s.UpdatedAt = updated.UTC()
	return s, nil
}

func marshalMessages(msgs []chat.Message) ([]byte, error) {
	if msgs == nil {
		msgs = []chat.Message{}
	}
	return json.Marshal(msgs)
}

var _ chat.Repository = (*SessionRepository)(nil)
