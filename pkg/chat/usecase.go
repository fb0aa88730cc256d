package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/careeradvisor/pkg/advice"
)

// UseCase describes the chat flows exposed to the HTTP layer.
type UseCase interface {
	Start(ctx context.Context, ownerID uuid.UUID) (Session, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (Session, error)
	List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Session, error)
	Ask(ctx context.Context, ownerID, id uuid.UUID, question string) (Message, error)
	Clear(ctx context.Context, ownerID, id uuid.UUID) (Session, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type service struct {
	repo    Repository
	advisor advice.UseCase
	locks   *sessionLocks
	now     func() time.Time
}

func NewService(repo Repository, advisor advice.UseCase) UseCase {
	return &service{
		repo:    repo,
		advisor: advisor,
		locks:   newSessionLocks(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Start(ctx context.Context, ownerID uuid.UUID) (Session, error) {
	now := s.now()
	sess := Session{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Messages:  []Message{GreetingMessage(now)},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return Session{}, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

func (s *service) Get(ctx context.Context, ownerID, id uuid.UUID) (Session, error) {
	return s.repo.Get(ctx, ownerID, id)
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Session, error) {
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

// Ask runs one turn. Both entries are appended together once the advice has
// resolved, so an interrupted turn leaves the transcript untouched.
func (s *service) Ask(ctx context.Context, ownerID, id uuid.UUID, question string) (Message, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Message{}, ErrEmptyQuestion
	}

	unlock := s.locks.lock(id)
	defer unlock()

	if _, err := s.repo.Get(ctx, ownerID, id); err != nil {
		return Message{}, err
	}
	asked := s.now()

	res, err := s.advisor.Advise(ctx, question)
	if err != nil {
		if errors.Is(err, advice.ErrEmptyQuestion) {
			return Message{}, ErrEmptyQuestion
		}
		return Message{}, err
	}

	answer := Message{Role: RoleAssistant, Content: res.Text, Model: res.Model, CreatedAt: s.now()}
	user := Message{Role: RoleUser, Content: question, CreatedAt: asked}
	if err := s.repo.Append(ctx, ownerID, id, user, answer); err != nil {
		return Message{}, fmt.Errorf("append turn: %w", err)
	}
	return answer, nil
}

func (s *service) Clear(ctx context.Context, ownerID, id uuid.UUID) (Session, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	if err := s.repo.Reset(ctx, ownerID, id, GreetingMessage(s.now())); err != nil {
		return Session{}, err
	}
	return s.repo.Get(ctx, ownerID, id)
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	unlock := s.locks.lock(id)
	defer unlock()
	return s.repo.Delete(ctx, ownerID, id)
}
