package triage

import (
	"testing"

	"github.com/quadrantly/triage-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var promptTask = domain.TaskInput{Name: "Finish Q3 report", EstimatedTime: "2025-01-10"}

func TestQuestionPromptCoreInstructions(t *testing.T) {
	prompt := buildQuestionPrompt(promptTask, Settings{})

	assert.Contains(t, prompt, `"Finish Q3 report"`)
	assert.Contains(t, prompt, "2025-01-10")
	assert.Contains(t, prompt, "exactly 3 yes/no questions")
	assert.Contains(t, prompt, "15 Chinese characters")
	assert.Contains(t, prompt, "Question 1 must probe time sensitivity")
	assert.Contains(t, prompt, "Question 2 must probe value")
	assert.Contains(t, prompt, "Question 3 must probe delegability")
	assert.Contains(t, prompt, `{"questions": `)
}

func TestQuestionPromptOmitsEmptyUserContext(t *testing.T) {
	prompt := buildQuestionPrompt(promptTask, Settings{})
	assert.NotContains(t, prompt, "describes their situation",
		"Absent user context must omit the clause, not pass an empty placeholder")

	prompt = buildQuestionPrompt(promptTask, Settings{UserContext: "startup founder"})
	assert.Contains(t, prompt, "startup founder")
}

func TestQuestionPromptAppendsCustomPrompt(t *testing.T) {
	prompt := buildQuestionPrompt(promptTask, Settings{CustomPrompt: "Prefer blunt phrasing."})

	assert.Contains(t, prompt, "Prefer blunt phrasing.")
	assert.Contains(t, prompt, "exactly 3 yes/no questions",
		"Custom prompt is appended, never a replacement for the builder's instructions")
}

func TestClassifyPromptEmbedsTranscript(t *testing.T) {
	questions := []domain.Question{
		{ID: "0", Text: "Is the deadline close?"},
		{ID: "1", Text: "Does it advance your goals?"},
		{ID: "2", Text: "Can someone else do it?"},
	}
	answers := map[string]bool{"0": true, "1": true, "2": false}

	prompt := buildClassifyPrompt(promptTask, questions, answers, Settings{})

	for _, q := range questions {
		assert.Contains(t, prompt, q.Text, "Every question must appear in the transcript")
	}
	assert.Contains(t, prompt, "Q0: Is the deadline close? Answer: yes")
	assert.Contains(t, prompt, "Q2: Can someone else do it? Answer: no")

	// The guidance tying answers to the classification axes is
	// load-bearing; it must change together with the question themes.
	assert.Contains(t, prompt, "A yes to question 1 means the task is urgent")
	assert.Contains(t, prompt, "yes to question 2 means it is important")
	assert.Contains(t, prompt, "3 to 5 concrete, actionable steps")
	assert.Contains(t, prompt, "names a specific method or heuristic")
	assert.Contains(t, prompt, "risk or pitfall")
	assert.Contains(t, prompt, "quadrantName")
}

func TestBatchQuestionPromptEmbedsEveryID(t *testing.T) {
	tasks := []domain.BatchTaskInput{
		{ID: "batch-0", Name: "Write report"},
		{ID: "batch-1", Name: "Book flights", EstimatedTime: "2025-02-01"},
	}

	prompt := buildBatchQuestionPrompt(tasks, Settings{})

	assert.Contains(t, prompt, `"batch-0"`)
	assert.Contains(t, prompt, `"batch-1"`)
	assert.Contains(t, prompt, "keyed by the exact task ids")
	assert.Contains(t, prompt, "do not invent, rename, or drop ids")
}

func TestBatchClassifyPromptEmbedsTranscripts(t *testing.T) {
	tasks := []domain.BatchTaskInput{
		{ID: "t1", Name: "Write report"},
		{ID: "t2", Name: "Book flights"},
	}
	questions := map[string][]string{
		"t1": {"q1", "q2", "q3"},
		"t2": {"q4", "q5", "q6"},
	}
	answers := map[string]map[string]bool{
		"t1": {"0": true, "1": false, "2": true},
		"t2": {"0": false, "1": true, "2": false},
	}

	prompt := buildBatchClassifyPrompt(tasks, questions, answers, Settings{})

	require.Contains(t, prompt, `"t1"`)
	require.Contains(t, prompt, `"t2"`)
	assert.Contains(t, prompt, "Q0: q1 Answer: yes")
	assert.Contains(t, prompt, "Q1: q5 Answer: yes")
	assert.Contains(t, prompt, "Do not produce steps",
		"Batch mode omits steps by design to limit token cost")
	assert.Contains(t, prompt, "taskId")
}
