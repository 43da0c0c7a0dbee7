package siliconflow

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quadrantly/triage-api/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) (*Provider, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := New(slog.Default(), Config{
		APIKey:  "test-key",
		BaseURL: srv.URL,
	})
	require.NoError(t, err)
	return p, srv
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(slog.Default(), Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrMissingCredentials,
		"SiliconFlow has no environment fallback; an empty key fails immediately")
}

func TestNewDefaultsModel(t *testing.T) {
	p, err := New(slog.Default(), Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, p.model)

	p, err = New(slog.Default(), Config{APIKey: "k", Model: "deepseek-ai/DeepSeek-V3"})
	require.NoError(t, err)
	assert.Equal(t, "deepseek-ai/DeepSeek-V3", p.model)
}

func TestCompleteSendsChatCompletionsRequest(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"hello"}}]}`))
	})

	out, err := p.Complete(context.Background(), llm.Request{
		System:      "You are a triage assistant.",
		Prompt:      "Classify this task.",
		Temperature: 0.7,
		Schema:      &llm.Schema{Type: llm.TypeObject},
	})

	require.NoError(t, err)
	assert.Equal(t, "hello", out)
	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, DefaultModel, gotBody["model"])
	assert.Equal(t, 0.7, gotBody["temperature"])

	messages, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2, "Expected a system message plus a user message")
	first := messages[0].(map[string]any)
	assert.Equal(t, "system", first["role"])
	second := messages[1].(map[string]any)
	assert.Equal(t, "user", second["role"])
	assert.Equal(t, "Classify this task.", second["content"])

	format, ok := gotBody["response_format"].(map[string]any)
	require.True(t, ok, "Structured requests must ask for JSON-object formatting")
	assert.Equal(t, "json_object", format["type"])
}

func TestCompleteOmitsResponseFormatWithoutSchema(t *testing.T) {
	var gotBody map[string]any

	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	})

	_, err := p.Complete(context.Background(), llm.Request{Prompt: "ping"})
	require.NoError(t, err)
	assert.NotContains(t, gotBody, "response_format",
		"The connectivity check must not constrain the output format")
}

func TestCompleteSurfacesHTTPStatus(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid token"}`))
	})

	_, err := p.Complete(context.Background(), llm.Request{Prompt: "x"})
	require.Error(t, err)

	var reqErr *llm.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusUnauthorized, reqErr.StatusCode,
		"Non-2xx responses must carry their status for executor classification")
	assert.Contains(t, reqErr.Message, "invalid token")
}

func TestCompleteRejectsEmptyChoices(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := p.Complete(context.Background(), llm.Request{Prompt: "x"})
	require.Error(t, err)
	assert.Zero(t, llm.StatusCode(err), "An empty choice list is not an HTTP failure")
}

func TestPingUsesMinimalRequest(t *testing.T) {
	calls := 0
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		var body map[string]any
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.NotContains(t, body, "response_format")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	})

	require.NoError(t, p.Ping(context.Background()))
	assert.Equal(t, 1, calls)
}
