// Package triage is the AI-orchestration layer of the service. It exposes
// the five public operations the wizard UI calls (single-task question
// generation, single-task classification, batch question generation, batch
// classification, and the connectivity check), each sequencing prompt build,
// provider call with retry, and response parsing into typed domain results.
//
// The package owns the prompt builders (pure string assembly), the response
// parsers (fence stripping, JSON repair, shape validation), and provider
// selection; transport and retry policy live in internal/llm and the
// platform adapter packages.
package triage
