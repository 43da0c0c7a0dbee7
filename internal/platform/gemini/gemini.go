// Package gemini implements the llm.Provider interface using Google's
// Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/quadrantly/triage-api/internal/llm"
	"google.golang.org/genai"
)

const (
	// EnvAPIKey is the environment fallback for the Gemini credential,
	// consulted only when no explicit key is configured.
	EnvAPIKey = "GEMINI_API_KEY"

	flashModel = "gemini-2.5-flash"
	proModel   = "gemini-2.5-pro"
)

// Provider is the Gemini implementation of llm.Provider. It is a cheap,
// stateless request builder: the underlying API client is constructed fresh
// per call so a configuration change can never leave a stale process-wide
// client behind.
type Provider struct {
	logger *slog.Logger
	apiKey string
	model  string
}

// New creates a Gemini provider. The API key is taken from the explicit
// setting, falling back to the GEMINI_API_KEY environment variable; if both
// are absent the call fails with llm.ErrMissingCredentials immediately,
// with no retries. The modelFlag selects between the flash and pro model
// identifiers; anything other than "pro" means flash.
func New(logger *slog.Logger, apiKey, modelFlag string) (*Provider, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	key := apiKey
	if key == "" {
		key = os.Getenv(EnvAPIKey)
	}
	if key == "" {
		return nil, fmt.Errorf("%w: gemini API key missing from settings and %s", llm.ErrMissingCredentials, EnvAPIKey)
	}

	model := flashModel
	if modelFlag == "pro" {
		model = proModel
	}

	return &Provider{
		logger: logger,
		apiKey: key,
		model:  model,
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return "gemini"
}

// Complete sends one completion request. When the request declares a
// schema, the call uses Gemini's native structured output: an explicit
// response schema plus a JSON MIME type, rather than relying on prompt
// instructions alone.
func (p *Provider) Complete(ctx context.Context, req llm.Request) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", p.normalize(err)
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}
	if req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = toGenaiSchema(req.Schema)
	}

	p.logger.DebugContext(ctx, "calling Gemini API",
		"model", p.model,
		"prompt_length", len(req.Prompt),
		"structured", req.Schema != nil)

	resp, err := client.Models.GenerateContent(ctx, p.model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", p.normalize(err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty completion")
	}

	return text, nil
}

// Ping performs a minimal completion with no output-format constraint,
// validating credentials and reachability only.
func (p *Provider) Ping(ctx context.Context) error {
	_, err := p.Complete(ctx, llm.Request{Prompt: "Reply with the single word: ok"})
	return err
}

// normalize converts genai client errors into the status-carrying shape the
// retry executor classifies.
func (p *Provider) normalize(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &llm.RequestError{
			Provider:   p.Name(),
			StatusCode: apiErr.Code,
			Message:    apiErr.Message,
			Err:        err,
		}
	}

	return &llm.RequestError{
		Provider: p.Name(),
		Message:  err.Error(),
		Err:      err,
	}
}

// toGenaiSchema translates the provider-neutral schema declaration into the
// genai native form.
func toGenaiSchema(s *llm.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Required: s.Required,
	}

	switch s.Type {
	case llm.TypeObject:
		out.Type = genai.TypeObject
	case llm.TypeArray:
		out.Type = genai.TypeArray
	case llm.TypeString:
		out.Type = genai.TypeString
	case llm.TypeBoolean:
		out.Type = genai.TypeBoolean
	case llm.TypeNumber:
		out.Type = genai.TypeNumber
	}

	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenaiSchema(prop)
		}
	}

	if s.Items != nil {
		out.Items = toGenaiSchema(s.Items)
	}

	return out
}
