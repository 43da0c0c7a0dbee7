package domain

// TaskInput is the ephemeral description of a task handed to question
// generation. It is created by the caller and never persisted by the
// orchestration layer.
type TaskInput struct {
	// Name is the task description. Must be non-empty.
	Name string `json:"name" validate:"required,min=1"`

	// EstimatedTime is the date the task should be done by. Free-form but
	// treated as an ISO-8601-like date string.
	EstimatedTime string `json:"estimatedTime"`
}

// Validate checks the input for the preconditions question generation
// relies on.
func (t TaskInput) Validate() error {
	if t.Name == "" {
		return ErrTaskNameEmpty
	}
	return nil
}

// Question is a single yes/no assessment question generated for a task.
// The ID is assigned by the orchestration layer as the stringified index of
// the question ("0", "1", "2") so answers can address questions stably.
type Question struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// BatchTaskInput is a TaskInput carrying a caller-assigned temporary id.
// The id is the correlation key threading the task through the three batch
// stages (question generation, answer collection, classification). It is
// never persisted, must be unique within one batch call, and must match the
// JSON object keys of the provider response exactly: correlation is by
// exact string match with no fuzzy fallback.
type BatchTaskInput struct {
	ID            string `json:"id" validate:"required"`
	Name          string `json:"name" validate:"required,min=1"`
	EstimatedTime string `json:"estimatedTime"`
}

// AnalysisResult is the full classification of a single task. The
// isImportant/isUrgent booleans are the model's word: the layer does not
// re-derive them from the quadrant even if they disagree.
type AnalysisResult struct {
	Quadrant    Quadrant        `json:"quadrant"`
	IsImportant bool            `json:"isImportant"`
	IsUrgent    bool            `json:"isUrgent"`
	Reasoning   BilingualText   `json:"reasoning"`
	Steps       []BilingualText `json:"steps"`
	Advice      BilingualText   `json:"advice"`
}

// BatchAnalysisResult is the classification of one task within a batch
// call. Batch mode deliberately omits the steps field to limit token cost.
type BatchAnalysisResult struct {
	TaskID    string        `json:"taskId"`
	Quadrant  Quadrant      `json:"quadrant"`
	Reasoning BilingualText `json:"reasoning"`
	Advice    BilingualText `json:"advice"`
}
