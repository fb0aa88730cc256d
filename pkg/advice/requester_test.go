package advice

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/careeradvisor/pkg/llm"
	"github.com/artem13815/careeradvisor/pkg/llm/huggingface"
)

const question = "How do I move from QA into backend development?"

type reply struct {
	status int
	body   string
}

// inferenceServer fakes both models and counts the calls each one receives.
type inferenceServer struct {
	*httptest.Server
	primaryCalls  atomic.Int32
	fallbackCalls atomic.Int32
}

func newInferenceServer(t *testing.T, primary, fallback reply) *inferenceServer {
	t.Helper()
	s := &inferenceServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer hf_token", r.Header.Get("Authorization"))
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		var rep reply
		switch r.URL.Path {
		case "/gpt2":
			s.primaryCalls.Add(1)
			assert.Equal(t, BuildPrompt(question), body["inputs"])
			assert.Contains(t, body, "parameters")
			rep = primary
		case "/distilgpt2":
			s.fallbackCalls.Add(1)
			assert.Equal(t, "Give me career advice about "+question, body["inputs"])
			assert.NotContains(t, body, "parameters")
			rep = fallback
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(rep.status)
		_, _ = w.Write([]byte(rep.body))
	}))
	t.Cleanup(s.Close)
	return s
}

func newTestRequester(baseURL string) *Requester {
	client := huggingface.New(baseURL, 2*time.Second)
	return NewRequester(client, "gpt2", NewFallbackRequester(client, "distilgpt2"))
}

func generated(text string) string {
	b, _ := json.Marshal(text)
	return string(b)
}

func TestGetAdviceListWithMarker(t *testing.T) {
	t.Parallel()

	srv := newInferenceServer(t,
		reply{http.StatusOK, `[{"generated_text":` + generated(BuildPrompt(question)+"  The real advice...  ") + `}]`},
		reply{http.StatusOK, `{}`},
	)
	res := newTestRequester(srv.URL).GetAdvice(context.Background(), question, "hf_token")

	assert.True(t, res.OK())
	assert.Equal(t, "The real advice...", res.Text)
	assert.Equal(t, "gpt2", res.Model)
	assert.EqualValues(t, 0, srv.fallbackCalls.Load())
}

func TestGetAdviceMarkerRepeatedTakesFirstSegment(t *testing.T) {
	t.Parallel()

	srv := newInferenceServer(t,
		reply{http.StatusOK, `[{"generated_text":"intro Response: first part Response: second part"}]`},
		reply{http.StatusOK, `{}`},
	)
	res := newTestRequester(srv.URL).GetAdvice(context.Background(), question, "hf_token")
	assert.Equal(t, "first part", res.Text)
}

func TestGetAdviceListWithoutMarkerStripsPrompt(t *testing.T) {
	t.Parallel()

	prompt := BuildPrompt(question)
	withoutMarker := strings.TrimSuffix(prompt, ResponseMarker)
	srv := newInferenceServer(t,
		reply{http.StatusOK, `[{"generated_text":` + generated(withoutMarker+"\nNetwork with backend engineers.") + `}]`},
		reply{http.StatusOK, `{}`},
	)
	res := newTestRequester(srv.URL).GetAdvice(context.Background(), question, "hf_token")
	// The prompt is not present verbatim, so only surrounding whitespace goes.
	assert.Equal(t, strings.TrimSpace(withoutMarker+"\nNetwork with backend engineers."), res.Text)
}

func TestGetAdviceObjectStripsPrompt(t *testing.T) {
	t.Parallel()

	srv := newInferenceServer(t,
		reply{http.StatusOK, `{"generated_text":` + generated(BuildPrompt(question)+"\n Learn Go. ") + `}`},
		reply{http.StatusOK, `{}`},
	)
	res := newTestRequester(srv.URL).GetAdvice(context.Background(), question, "hf_token")
	assert.Equal(t, "Learn Go.", res.Text)
	assert.True(t, res.OK())
}

func TestGetAdviceForbiddenIsAuthError(t *testing.T) {
	t.Parallel()

	srv := newInferenceServer(t,
		reply{http.StatusForbidden, `[{"generated_text":"Response: ignored"}]`},
		reply{http.StatusOK, `{"generated_text":"unused"}`},
	)
	res := newTestRequester(srv.URL).GetAdvice(context.Background(), question, "hf_token")

	assert.Equal(t, KindAuthError, res.Kind)
	assert.Equal(t, AuthErrorMessage, res.Text)
	assert.EqualValues(t, 0, srv.fallbackCalls.Load())
}

func TestGetAdviceNon200IsAPIError(t *testing.T) {
	t.Parallel()

	srv := newInferenceServer(t,
		reply{http.StatusInternalServerError, `{"error":"boom"}`},
		reply{http.StatusOK, `{"generated_text":"unused"}`},
	)
	res := newTestRequester(srv.URL).GetAdvice(context.Background(), question, "hf_token")

	assert.Equal(t, KindAPIError, res.Kind)
	assert.Contains(t, res.Text, "500")
	assert.EqualValues(t, 0, srv.fallbackCalls.Load())
}

func TestGetAdviceMalformedBodyUsesFallback(t *testing.T) {
	t.Parallel()

	srv := newInferenceServer(t,
		reply{http.StatusOK, `<html>not json`},
		reply{http.StatusOK, `{"generated_text":"Give me career advice about it: practise daily"}`},
	)
	r := newTestRequester(srv.URL)
	res := r.GetAdvice(context.Background(), question, "hf_token")

	assert.True(t, res.OK())
	assert.Equal(t, "distilgpt2", res.Model)
	assert.Equal(t, r.Fallback.GetAdviceAlt(context.Background(), question, "hf_token"), res.Text)
	assert.Equal(t, "Give me career advice about it: practise daily", res.Text)
}

func TestGetAdviceUnknownShapesUseFallback(t *testing.T) {
	t.Parallel()

	for name, body := range map[string]string{
		"empty list":        `[]`,
		"list of strings":   `["a"]`,
		"missing field":     `[{"text":"x"}]`,
		"non-string field":  `[{"generated_text":42}]`,
		"object no field":   `{"error":"loading"}`,
		"bare string":       `"hello"`,
		"null":              `null`,
		"empty after strip": `[{"generated_text":"Response:   "}]`,
	} {
		body := body
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			srv := newInferenceServer(t,
				reply{http.StatusOK, body},
				reply{http.StatusOK, `{"generated_text":"fallback advice"}`},
			)
			res := newTestRequester(srv.URL).GetAdvice(context.Background(), question, "hf_token")
			assert.Equal(t, "fallback advice", res.Text)
			assert.EqualValues(t, 1, srv.fallbackCalls.Load())
		})
	}
}

func TestFallbackOutcomes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		rep  reply
		want string
	}{
		{"non-200", reply{http.StatusServiceUnavailable, `{"error":"loading"}`}, ConnectionTroubleMessage},
		{"list is not accepted", reply{http.StatusOK, `[{"generated_text":"x"}]`}, GenerationDifficultyMessage},
		{"missing field", reply{http.StatusOK, `{"foo":"bar"}`}, GenerationDifficultyMessage},
		{"malformed", reply{http.StatusOK, `{`}, TechnicalDifficultiesMessage},
		{"verbatim", reply{http.StatusOK, `{"generated_text":"  keep  echo  "}`}, "  keep  echo  "},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv := newInferenceServer(t, reply{http.StatusOK, `[]`}, tc.rep)
			res := newTestRequester(srv.URL).GetAdvice(context.Background(), question, "hf_token")
			assert.Equal(t, tc.want, res.Text)
		})
	}
}

type failingGenerator struct{ calls atomic.Int32 }

func (g *failingGenerator) Generate(context.Context, string, string, any) (llm.Response, error) {
	g.calls.Add(1)
	return llm.Response{}, errors.New("dial tcp: connection refused")
}

func TestGetAdviceBothTransportsFail(t *testing.T) {
	t.Parallel()

	gen := &failingGenerator{}
	r := NewRequester(gen, "gpt2", NewFallbackRequester(gen, "distilgpt2"))
	res := r.GetAdvice(context.Background(), question, "hf_token")

	assert.Equal(t, TechnicalDifficultiesMessage, res.Text)
	assert.EqualValues(t, 2, gen.calls.Load())
}

func TestGetAdviceUnreachableHost(t *testing.T) {
	t.Parallel()

	res := newTestRequester("http://127.0.0.1:1").GetAdvice(context.Background(), question, "hf_token")
	require.NotEmpty(t, res.Text)
	assert.Equal(t, TechnicalDifficultiesMessage, res.Text)
}

func TestGetAdviceAlwaysNonEmpty(t *testing.T) {
	t.Parallel()

	bodies := []reply{
		{http.StatusOK, `[{"generated_text":"Response: ok"}]`},
		{http.StatusOK, `[]`},
		{http.StatusForbidden, ``},
		{http.StatusBadGateway, ``},
		{http.StatusOK, `garbage`},
	}
	fallbacks := []reply{
		{http.StatusOK, `{"generated_text":"alt"}`},
		{http.StatusOK, `{"generated_text":""}`},
		{http.StatusInternalServerError, ``},
		{http.StatusOK, `garbage`},
	}
	for _, p := range bodies {
		for _, f := range fallbacks {
			srv := newInferenceServer(t, p, f)
			res := newTestRequester(srv.URL).GetAdvice(context.Background(), question, "hf_token")
			assert.NotEmpty(t, res.Text, "primary=%v fallback=%v", p, f)
		}
	}
}
