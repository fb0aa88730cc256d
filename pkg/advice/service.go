package advice

import (
	"context"
	"errors"
	"strings"
)

var ErrEmptyQuestion = errors.New("question is empty")

// UseCase answers a single career question.
type UseCase interface {
	Advise(ctx context.Context, question string) (Result, error)
}

type service struct {
	requester *Requester
	token     string
}

// NewService binds the configured inference token to requester.
func NewService(requester *Requester, token string) UseCase {
	return &service{requester: requester, token: token}
}

func (s *service) Advise(ctx context.Context, question string) (Result, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Result{}, ErrEmptyQuestion
	}
	return s.requester.GetAdvice(ctx, question, s.token), nil
}
