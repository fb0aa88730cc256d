package auth

import "context"

// TokenGenerator issues session tokens for authenticated users.
type TokenGenerator interface {
	Generate(ctx context.Context, user User) (string, error)
}
