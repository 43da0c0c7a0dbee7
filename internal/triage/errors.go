package triage

import "errors"

// MaxBatchSize is the ceiling on tasks per batch call. It is a cost-control
// guard, not a technical limitation: one batch is a single round-trip whose
// token budget grows with every task.
const MaxBatchSize = 20

// Errors surfaced by the orchestration layer. Message text is rendered to
// the end user directly.
var (
	// ErrInvalidResponse is returned when a provider payload arrived at
	// the transport level but did not match the expected shape. Parse
	// failures are never retried automatically: retrying is unlikely to
	// fix a systematic prompt/model mismatch and would burn quota.
	ErrInvalidResponse = errors.New("the AI response could not be understood; try again")

	// ErrBatchTooLarge is returned before any prompt is built when a
	// batch exceeds MaxBatchSize.
	ErrBatchTooLarge = errors.New("batch analysis is limited to 20 tasks per call")

	// ErrIncompleteAssessment is returned when classification is
	// attempted before every generated question has an answer.
	ErrIncompleteAssessment = errors.New("every question must be answered before classification")

	// ErrUnknownProvider is returned for a provider name outside the two
	// supported backends.
	ErrUnknownProvider = errors.New("unknown AI provider")

	// ErrDuplicateBatchID is returned when two tasks in one batch share a
	// correlation id, which would make response correlation ambiguous.
	ErrDuplicateBatchID = errors.New("batch task ids must be unique within one call")

	// ErrMissingBatchID is returned when a batch task carries no
	// correlation id at all.
	ErrMissingBatchID = errors.New("every batch task needs a correlation id")
)
