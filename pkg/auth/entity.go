package auth

import (
	"time"

	"github.com/google/uuid"
)

// User owns chat sessions.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
