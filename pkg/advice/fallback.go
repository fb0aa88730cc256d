package advice

import (
	"context"
	"log"
	"net/http"

	"github.com/artem13815/careeradvisor/pkg/llm"
	"github.com/artem13815/careeradvisor/pkg/llm/huggingface"
)

// FallbackRequester is the terminal path: it always yields a displayable string.
type FallbackRequester struct {
	gen   llm.TextGenerator
	model string
}

func NewFallbackRequester(gen llm.TextGenerator, model string) *FallbackRequester {
	return &FallbackRequester{gen: gen, model: model}
}

func (f *FallbackRequester) Model() string { return f.model }

// GetAdviceAlt asks the secondary model with its default parameters.
// Generated text is returned verbatim, prompt echo included.
func (f *FallbackRequester) GetAdviceAlt(ctx context.Context, question, token string) string {
	resp, err := f.gen.Generate(ctx, f.model, token, huggingface.Request{Inputs: BuildFallbackPrompt(question)})
	if err != nil {
		log.Printf("advice: fallback model %s failed: %v", f.model, err)
		return TechnicalDifficultiesMessage
	}
	if resp.StatusCode != http.StatusOK {
		return ConnectionTroubleMessage
	}

	shape, err := ClassifyBody(resp.Body)
	if err != nil {
		log.Printf("advice: fallback model %s: %v", f.model, err)
		return TechnicalDifficultiesMessage
	}
	if obj, ok := shape.(ObjectWithText); ok && obj.Text != "" {
		return obj.Text
	}
	return GenerationDifficultyMessage
}
