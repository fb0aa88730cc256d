package llm

import "context"

// Response is the raw outcome of a generation call that reached the remote side.
// Interpreting the status and body is left to the domain.
type Response struct {
	StatusCode int
	Body       []byte
}

// TextGenerator is a minimal abstraction over hosted text-generation endpoints.
// It intentionally hides concrete providers to preserve dependency direction.
// A non-nil error means the request never produced an HTTP response.
type TextGenerator interface {
	Generate(ctx context.Context, model, token string, payload any) (Response, error)
}
