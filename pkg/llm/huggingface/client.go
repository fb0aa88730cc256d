package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/artem13815/careeradvisor/pkg/llm"
)

const DefaultBaseURL = "https://api-inference.huggingface.co/models"

// maxBodyBytes caps how much of a response body is buffered.
const maxBodyBytes = 4 << 20

// Client posts generation requests to the Hugging Face Inference API.
type Client struct {
	BaseURL string
	httpDo  *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		httpDo: &http.Client{
			Timeout: timeout,
		},
	}
}

// Parameters are the generation knobs understood by text-generation models.
type Parameters struct {
	MaxLength         int     `json:"max_length,omitempty"`
	Temperature       float64 `json:"temperature,omitempty"`
	TopP              float64 `json:"top_p,omitempty"`
	RepetitionPenalty float64 `json:"repetition_penalty,omitempty"`
}

// Request is the JSON body of a text-generation call. Parameters are omitted
// entirely when nil so the model falls back to its own defaults.
type Request struct {
	Inputs     string      `json:"inputs"`
	Parameters *Parameters `json:"parameters,omitempty"`
}

// Endpoint returns the inference URL for model.
func (c *Client) Endpoint(model string) string {
	return fmt.Sprintf("%s/%s", c.BaseURL, model)
}

// Generate sends payload to the model endpoint and returns status and body as is.
// Non-2xx statuses are not errors here; the caller decides what they mean.
func (c *Client) Generate(ctx context.Context, model, token string, payload any) (llm.Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return llm.Response{}, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(model), bytes.NewReader(data))
	if err != nil {
		return llm.Response{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpDo.Do(httpReq)
	if err != nil {
		return llm.Response{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return llm.Response{}, fmt.Errorf("read %s response: %w", model, err)
	}
	return llm.Response{StatusCode: resp.StatusCode, Body: body}, nil
}

var _ llm.TextGenerator = (*Client)(nil)
