// Package llm defines the boundary between the triage orchestration and the
// external language-model providers. It holds the closed Provider interface
// (two implementations exist: Gemini and SiliconFlow), the provider-neutral
// request and response-schema types, the status-carrying error shape both
// adapters normalize their failures into, and the retry executor that wraps
// every provider call with exponential backoff and error classification.
package llm
