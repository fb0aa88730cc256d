package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/artem13815/careeradvisor/pkg/auth"
)

// UserRepository implements auth.UserRepository in memory.
type UserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]auth.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byEmail: make(map[string]auth.User)}
}

func (r *UserRepository) Create(_ context.Context, user auth.User) error {
	key := strings.ToLower(user.Email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[key]; ok {
		return auth.ErrUserAlreadyExists
	}
	user.Email = key
	r.byEmail[key] = user
	return nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (auth.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return user, nil
}

var _ auth.UserRepository = (*UserRepository)(nil)
