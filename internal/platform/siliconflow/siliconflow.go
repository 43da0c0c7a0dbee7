// Package siliconflow implements the llm.Provider interface against
// SiliconFlow's OpenAI-chat-completions-compatible HTTP API.
package siliconflow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/quadrantly/triage-api/internal/llm"
)

const (
	// DefaultBaseURL is the SiliconFlow API root.
	DefaultBaseURL = "https://api.siliconflow.cn/v1"

	// DefaultModel is used when the settings carry no model name.
	DefaultModel = "Qwen/Qwen2.5-7B-Instruct"

	defaultTimeout = 60 * time.Second

	// maxErrorBody bounds how much of an error response body is kept for
	// the error message.
	maxErrorBody = 2048
)

// Config carries the per-call settings for the SiliconFlow provider.
// BaseURL and HTTPClient exist for tests; zero values select the real
// endpoint and a timeout-bounded default client.
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// Provider is the SiliconFlow implementation of llm.Provider. The API has
// no native response-schema support, so structural correctness of JSON
// output relies on the system prompt's instructions plus the response
// parsers' tolerance; the adapter only requests JSON-object response
// formatting.
type Provider struct {
	logger     *slog.Logger
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// New creates a SiliconFlow provider. Unlike Gemini there is no
// environment fallback for the key: an empty key is an immediate,
// non-retryable llm.ErrMissingCredentials.
func New(logger *slog.Logger, cfg Config) (*Provider, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: siliconflow API key missing from settings", llm.ErrMissingCredentials)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Provider{
		logger:     logger,
		apiKey:     cfg.APIKey,
		model:      model,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return "siliconflow"
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	Stream         bool            `json:"stream"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends a system-role plus user-role message pair to the chat
// completions endpoint and extracts the first choice's content. Non-2xx
// responses are surfaced with their HTTP status attached so the retry
// executor can classify them.
func (p *Provider) Complete(ctx context.Context, req llm.Request) (string, error) {
	var messages []chatMessage
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	body := chatRequest{
		Model:       p.model,
		Messages:    messages,
		Temperature: req.Temperature,
	}
	if req.Schema != nil {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	endpoint := p.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	p.logger.DebugContext(ctx, "calling SiliconFlow API",
		"model", p.model,
		"prompt_length", len(req.Prompt),
		"structured", req.Schema != nil)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", &llm.RequestError{
			Provider: p.Name(),
			Message:  err.Error(),
			Err:      err,
		}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &llm.RequestError{
			Provider: p.Name(),
			Message:  "reading response body: " + err.Error(),
			Err:      err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := string(raw)
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return "", &llm.RequestError{
			Provider:   p.Name(),
			StatusCode: resp.StatusCode,
			Message:    snippet,
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("siliconflow returned a non-JSON body: %w", err)
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("siliconflow returned no completion choices")
	}

	return parsed.Choices[0].Message.Content, nil
}

// Ping performs a minimal completion with no output-format constraint.
func (p *Provider) Ping(ctx context.Context) error {
	_, err := p.Complete(ctx, llm.Request{Prompt: "Reply with the single word: ok"})
	return err
}
