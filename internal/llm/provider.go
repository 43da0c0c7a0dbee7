package llm

import "context"

// SchemaType enumerates the JSON value kinds a response schema can declare.
type SchemaType string

const (
	TypeObject  SchemaType = "object"
	TypeArray   SchemaType = "array"
	TypeString  SchemaType = "string"
	TypeBoolean SchemaType = "boolean"
	TypeNumber  SchemaType = "number"
)

// Schema is a provider-neutral declaration of the JSON shape a completion
// must return. The Gemini adapter translates it into a native response
// schema; the SiliconFlow adapter cannot (the API has no schema support) and
// relies on the system prompt plus JSON-object response formatting, with the
// response parsers providing the same validation either way.
type Schema struct {
	Type       SchemaType
	Properties map[string]*Schema
	Required   []string
	Items      *Schema
}

// Request describes one completion call. Temperature is the configured
// creativity value in [0,1]. A nil Schema means free-form text output, used
// only by the connectivity check.
type Request struct {
	System      string
	Prompt      string
	Temperature float64
	Schema      *Schema
}

// Provider is a language-model completion backend. Exactly two
// implementations are in scope (Gemini and SiliconFlow); selection happens
// at the orchestration boundary, and no other component branches on
// provider identity.
type Provider interface {
	// Name returns the provider identifier used in logs and errors.
	Name() string

	// Complete sends one completion request and returns the raw text
	// payload. Failures are reported as *RequestError whenever an HTTP
	// status is known, so the retry executor can classify them.
	Complete(ctx context.Context, req Request) (string, error)

	// Ping performs a minimal, cheap completion with no output-format
	// constraint. It exists only to validate credentials and reachability.
	Ping(ctx context.Context) error
}
