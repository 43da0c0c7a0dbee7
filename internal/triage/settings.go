package triage

// Provider names accepted in Settings.Provider.
const (
	ProviderGemini      = "gemini"
	ProviderSiliconFlow = "siliconflow"
)

// Settings is the per-call provider configuration, owned by the caller's
// settings store and merely consumed here. It is read once at the start of
// an orchestration call and never mutated, so concurrent calls with
// different settings cannot interfere.
type Settings struct {
	// Provider selects the backend: "gemini" or "siliconflow".
	Provider string `json:"aiProvider" validate:"required,oneof=gemini siliconflow"`

	// GeminiAPIKey is the explicit Gemini credential. When empty the
	// GEMINI_API_KEY environment variable is consulted as a fallback.
	GeminiAPIKey string `json:"geminiApiKey"`

	// GeminiModel selects between the flash and pro model identifiers.
	GeminiModel string `json:"aiModel" validate:"omitempty,oneof=flash pro"`

	// SiliconFlowAPIKey is the SiliconFlow credential. No environment
	// fallback exists; absence fails the call immediately.
	SiliconFlowAPIKey string `json:"siliconFlowApiKey"`

	// SiliconFlowModel is the model name; empty selects the default.
	SiliconFlowModel string `json:"siliconFlowModel"`

	// Creativity is passed to the provider as the sampling temperature.
	Creativity float64 `json:"creativity" validate:"gte=0,lte=1"`

	// CustomPrompt, when present, is appended to every built prompt as an
	// additional instruction block. It never replaces the builder's own
	// instructions.
	CustomPrompt string `json:"customPrompt"`

	// UserContext is the user's stated role or situation; when present the
	// prompts ask the model to tailor questions and advice to it.
	UserContext string `json:"userContext"`
}
