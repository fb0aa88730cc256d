package advice

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/artem13815/careeradvisor/pkg/llm"
	"github.com/artem13815/careeradvisor/pkg/llm/huggingface"
)

// Generation parameters of the primary model.
const (
	primaryMaxLength         = 200
	primaryTemperature       = 0.7
	primaryTopP              = 0.9
	primaryRepetitionPenalty = 1.2
)

// Requester asks the primary model and hands over to Fallback when the
// response is unusable. It holds no per-call state.
type Requester struct {
	gen      llm.TextGenerator
	model    string
	Fallback *FallbackRequester
}

func NewRequester(gen llm.TextGenerator, model string, fallback *FallbackRequester) *Requester {
	return &Requester{gen: gen, model: model, Fallback: fallback}
}

// GetAdvice always returns a resolved Result. Auth and API failures of the
// primary model are surfaced; every other failure is absorbed by the fallback.
func (r *Requester) GetAdvice(ctx context.Context, question, token string) Result {
	res, err := r.primary(ctx, question, token)
	if err != nil {
		log.Printf("advice: primary model %s failed: %v", r.model, err)
		return Success(r.Fallback.Model(), r.Fallback.GetAdviceAlt(ctx, question, token))
	}
	return res
}

func (r *Requester) primary(ctx context.Context, question, token string) (Result, error) {
	prompt := BuildPrompt(question)
	resp, err := r.gen.Generate(ctx, r.model, token, huggingface.Request{
		Inputs: prompt,
		Parameters: &huggingface.Parameters{
			MaxLength:         primaryMaxLength,
			Temperature:       primaryTemperature,
			TopP:              primaryTopP,
			RepetitionPenalty: primaryRepetitionPenalty,
		},
	})
	if err != nil {
		return Result{}, fmt.Errorf("transport: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return Failure(KindAuthError, AuthErrorMessage), nil
	case resp.StatusCode != http.StatusOK:
		return Failure(KindAPIError, apiErrorMessage(resp.StatusCode)), nil
	}

	shape, err := ClassifyBody(resp.Body)
	if err != nil {
		return Result{}, err
	}

	var text string
	switch s := shape.(type) {
	case ListOfObjectsWithText:
		if strings.Contains(s.Text, ResponseMarker) {
			text = afterMarker(s.Text)
		} else {
			text = stripPrompt(s.Text, prompt)
		}
	case ObjectWithText:
		text = stripPrompt(s.Text, prompt)
	case OtherShape:
		return Result{}, fmt.Errorf("%w: %s", ErrUnrecognizedShape, s.Description)
	default:
		return Result{}, fmt.Errorf("%w: %T", ErrUnrecognizedShape, shape)
	}
	if text == "" {
		return Result{}, fmt.Errorf("%w: empty generated text", ErrUnrecognizedShape)
	}
	return Success(r.model, text), nil
}

// afterMarker returns the segment between the first marker and the next one
// (or the end of text), trimmed.
func afterMarker(text string) string {
	parts := strings.Split(text, ResponseMarker)
	return strings.TrimSpace(parts[1])
}

func stripPrompt(text, prompt string) string {
	return strings.TrimSpace(strings.ReplaceAll(text, prompt, ""))
}
