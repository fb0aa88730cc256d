package chat

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Greeting seeds every new or cleared transcript.
const Greeting = "Hi there! I'm your Career Advisor. How can I help with your career questions today?"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptyQuestion   = errors.New("question is empty")
)

// Message is one transcript entry.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Model     string    `json:"model,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session is an append-only transcript owned by one user.
type Session struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"ownerId"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GreetingMessage returns the seeded assistant entry.
func GreetingMessage(now time.Time) Message {
	return Message{Role: RoleAssistant, Content: Greeting, CreatedAt: now}
}

// Repository persists transcripts. All lookups are scoped to the owner and
// return ErrSessionNotFound for foreign or missing sessions.
type Repository interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, ownerID, id uuid.UUID) (Session, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Session, error)
	Append(ctx context.Context, ownerID, id uuid.UUID, msgs ...Message) error
	// Reset replaces the whole transcript with seed.
	Reset(ctx context.Context, ownerID, id uuid.UUID, seed Message) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}
