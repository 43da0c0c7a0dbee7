package triage

import (
	"fmt"
	"strings"

	"github.com/quadrantly/triage-api/internal/domain"
)

// systemPrompt is sent with every orchestration call. It carries the output
// discipline that SiliconFlow, lacking native response schemas, depends on
// entirely.
const systemPrompt = "You are a task-triage assistant helping a user sort " +
	"to-do items into an Eisenhower matrix (Do / Plan / Delegate / Eliminate). " +
	"Always respond with valid JSON only: no prose, no markdown code fences, " +
	"no commentary outside the JSON value."

// The three questions carry fixed themes. The classification prompt leans
// on this mapping (yes to question 1 means urgent, yes to question 2 means
// important), so the two instruction blocks below must change together.
const questionRules = `generate exactly 3 yes/no questions:
- Question 1 must probe time sensitivity: whether the task becomes worthless or costly if delayed.
- Question 2 must probe value: whether the task meaningfully advances the user's goals.
- Question 3 must probe delegability or the severity of consequences if the task is skipped.
Each question must be answerable with yes or no and no longer than 15 Chinese characters (about 10 English words).
Write each question in the same language as the task name.`

// buildQuestionPrompt assembles the single-task question-generation prompt.
// Pure string assembly: no I/O, no parsing.
func buildQuestionPrompt(task domain.TaskInput, s Settings) string {
	var b strings.Builder

	writeUserContext(&b, s)
	fmt.Fprintf(&b, "Task: %q", task.Name)
	if task.EstimatedTime != "" {
		fmt.Fprintf(&b, " (planned for %s)", task.EstimatedTime)
	}
	b.WriteString("\n\nFor this task, ")
	b.WriteString(questionRules)
	b.WriteString("\n\nReturn JSON in exactly this shape: {\"questions\": [\"...\", \"...\", \"...\"]}")
	writeCustomPrompt(&b, s)

	return b.String()
}

// buildClassifyPrompt assembles the single-task classification prompt,
// embedding the full question/answer transcript.
func buildClassifyPrompt(task domain.TaskInput, questions []domain.Question, answers map[string]bool, s Settings) string {
	var b strings.Builder

	writeUserContext(&b, s)
	fmt.Fprintf(&b, "Task: %q", task.Name)
	if task.EstimatedTime != "" {
		fmt.Fprintf(&b, " (planned for %s)", task.EstimatedTime)
	}
	b.WriteString("\n\nThe user answered these assessment questions:\n")
	for _, q := range questions {
		fmt.Fprintf(&b, "- Q%s: %s Answer: %s\n", q.ID, q.Text, yesNo(answers[q.ID]))
	}

	b.WriteString(`
Classify the task into one Eisenhower quadrant. A yes to question 1 means the task is urgent; a yes to question 2 means it is important. Do=(important, urgent), Plan=(important, not urgent), Delegate=(not important, urgent), Eliminate=(not important, not urgent).

Also produce:
- "reasoning": why the task landed in that quadrant.
- "steps": 3 to 5 concrete, actionable steps to handle the task.
- "advice": practical guidance that names a specific method or heuristic (for example time-boxing or the two-minute rule) AND warns about one concrete risk or pitfall.

Write reasoning, each step, and advice as {"cn": "...", "en": "..."} objects with Chinese and English variants.

Return JSON in exactly this shape:
{"quadrantName": "Do|Plan|Delegate|Eliminate", "isImportant": true, "isUrgent": true, "reasoning": {"cn": "...", "en": "..."}, "steps": [{"cn": "...", "en": "..."}], "advice": {"cn": "...", "en": "..."}}`)
	writeCustomPrompt(&b, s)

	return b.String()
}

// buildBatchQuestionPrompt assembles the N-task question-generation prompt.
// Every caller-assigned temporary id is embedded verbatim and the model is
// told to key its response by those ids: correlation on return is an exact
// string match with no fuzzy fallback.
func buildBatchQuestionPrompt(tasks []domain.BatchTaskInput, s Settings) string {
	var b strings.Builder

	writeUserContext(&b, s)
	b.WriteString("Tasks to assess:\n")
	for _, task := range tasks {
		fmt.Fprintf(&b, "- id %q: %q", task.ID, task.Name)
		if task.EstimatedTime != "" {
			fmt.Fprintf(&b, " (planned for %s)", task.EstimatedTime)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nFor every task, ")
	b.WriteString(questionRules)
	b.WriteString("\n\nReturn one JSON object keyed by the exact task ids given above, each value an array of the 3 question strings, for example: {\"")
	b.WriteString(tasks[0].ID)
	b.WriteString("\": [\"...\", \"...\", \"...\"]}. Include every task id exactly as written; do not invent, rename, or drop ids.")
	writeCustomPrompt(&b, s)

	return b.String()
}

// buildBatchClassifyPrompt assembles the N-task classification prompt
// covering all tasks in one round-trip, so the model can weigh the tasks
// against each other.
func buildBatchClassifyPrompt(
	tasks []domain.BatchTaskInput,
	questions map[string][]string,
	answers map[string]map[string]bool,
	s Settings,
) string {
	var b strings.Builder

	writeUserContext(&b, s)
	b.WriteString("Tasks with their assessment transcripts:\n")
	for _, task := range tasks {
		fmt.Fprintf(&b, "\nTask id %q: %q", task.ID, task.Name)
		if task.EstimatedTime != "" {
			fmt.Fprintf(&b, " (planned for %s)", task.EstimatedTime)
		}
		b.WriteString("\n")
		for i, q := range questions[task.ID] {
			key := fmt.Sprintf("%d", i)
			fmt.Fprintf(&b, "- Q%d: %s Answer: %s\n", i, q, yesNo(answers[task.ID][key]))
		}
	}

	b.WriteString(`
Classify every task into one Eisenhower quadrant, considering the tasks relative to each other. A yes to question 1 means urgent; a yes to question 2 means important. Do=(important, urgent), Plan=(important, not urgent), Delegate=(not important, urgent), Eliminate=(not important, not urgent).

For each task produce "reasoning" and "advice" as {"cn": "...", "en": "..."} objects. Advice must name a specific method or heuristic and warn about one concrete risk. Do not produce steps.

Return a JSON array with exactly one element per task, keyed by the exact ids given above:
[{"taskId": "...", "quadrantName": "Do|Plan|Delegate|Eliminate", "reasoning": {"cn": "...", "en": "..."}, "advice": {"cn": "...", "en": "..."}}]`)
	writeCustomPrompt(&b, s)

	return b.String()
}

// writeUserContext interpolates the user's stated role when present. When
// absent the clause is omitted entirely rather than passing an empty
// placeholder.
func writeUserContext(b *strings.Builder, s Settings) {
	if s.UserContext == "" {
		return
	}
	fmt.Fprintf(b, "The user describes their situation as: %s. Tailor the questions and advice to that role.\n\n", s.UserContext)
}

// writeCustomPrompt appends the user's custom instruction block. It is
// always additive; the builder's own instructions stay in place.
func writeCustomPrompt(b *strings.Builder, s Settings) {
	if s.CustomPrompt == "" {
		return
	}
	b.WriteString("\n\nAdditional instructions from the user:\n")
	b.WriteString(s.CustomPrompt)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
