package triage

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/quadrantly/triage-api/internal/domain"
)

// defaultQuestions is the fixed fallback set used when a successfully
// parsed question response carries no questions. This is the one documented
// silent default: an empty question list would otherwise block the wizard
// entirely. The themes follow the fixed mapping the classification prompt
// depends on.
var defaultQuestions = []string{
	"这件事拖延会有损失吗？",
	"它对你的目标重要吗？",
	"可以交给别人完成吗？",
}

// stripCodeFences removes a leading/trailing markdown code fence (```,
// optionally tagged ```json) the model may have wrapped around the JSON.
func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if idx := strings.IndexByte(s, '\n'); idx >= 0 && strings.EqualFold(strings.TrimSpace(s[:idx]), "json") {
		s = s[idx+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// decodeJSON strips fences and unmarshals the payload into v. When the
// first unmarshal fails it runs the text through jsonrepair once, since
// models routinely emit trailing commas or unquoted keys, before declaring
// the payload invalid.
func decodeJSON(raw string, v any) error {
	text := stripCodeFences(raw)

	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(text)
	if repairErr != nil {
		return fmt.Errorf("%w: payload is not JSON", ErrInvalidResponse)
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// parseQuestions converts a raw question-generation payload into Question
// values with ids assigned as the stringified index, preserving provider
// order.
func parseQuestions(raw string) ([]domain.Question, error) {
	var payload struct {
		Questions []string `json:"questions"`
	}
	if err := decodeJSON(raw, &payload); err != nil {
		return nil, err
	}

	texts := payload.Questions
	if len(texts) == 0 {
		texts = defaultQuestions
	}

	questions := make([]domain.Question, 0, len(texts))
	for i, text := range texts {
		questions = append(questions, domain.Question{
			ID:   strconv.Itoa(i),
			Text: text,
		})
	}
	return questions, nil
}

// analysisPayload is the wire shape of a single-task classification.
// Booleans are pointers so a missing field is distinguishable from false: a
// partial classification is worse than an explicit failure the user can
// retry.
type analysisPayload struct {
	QuadrantName string                 `json:"quadrantName"`
	IsImportant  *bool                  `json:"isImportant"`
	IsUrgent     *bool                  `json:"isUrgent"`
	Reasoning    domain.BilingualText   `json:"reasoning"`
	Steps        []domain.BilingualText `json:"steps"`
	Advice       domain.BilingualText   `json:"advice"`
}

// parseAnalysis converts a raw classification payload into an
// AnalysisResult. Every field is required; the quadrant must be one of the
// four closed enum values, never coerced. The importance/urgency booleans
// are passed through as the model's word even if they disagree with the
// quadrant.
func parseAnalysis(raw string) (*domain.AnalysisResult, error) {
	var payload analysisPayload
	if err := decodeJSON(raw, &payload); err != nil {
		return nil, err
	}

	quadrant, err := domain.ParseQuadrant(payload.QuadrantName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if payload.IsImportant == nil || payload.IsUrgent == nil {
		return nil, fmt.Errorf("%w: missing importance or urgency flags", ErrInvalidResponse)
	}
	if payload.Reasoning.IsZero() {
		return nil, fmt.Errorf("%w: missing reasoning", ErrInvalidResponse)
	}
	if len(payload.Steps) == 0 {
		return nil, fmt.Errorf("%w: missing steps", ErrInvalidResponse)
	}
	if payload.Advice.IsZero() {
		return nil, fmt.Errorf("%w: missing advice", ErrInvalidResponse)
	}

	return &domain.AnalysisResult{
		Quadrant:    quadrant,
		IsImportant: *payload.IsImportant,
		IsUrgent:    *payload.IsUrgent,
		Reasoning:   payload.Reasoning,
		Steps:       payload.Steps,
		Advice:      payload.Advice,
	}, nil
}

// parseBatchQuestions converts a raw batch question payload (a JSON object
// keyed by correlation id) into a per-task question map. Every input task
// must appear with exactly 3 questions; unlike the single-task path there
// is no default fallback, because a silently defaulted subset would
// misalign answers across the batch. Ids the model invented are dropped.
func parseBatchQuestions(raw string, tasks []domain.BatchTaskInput) (map[string][]string, error) {
	var payload map[string][]string
	if err := decodeJSON(raw, &payload); err != nil {
		return nil, err
	}

	out := make(map[string][]string, len(tasks))
	for _, task := range tasks {
		questions, ok := payload[task.ID]
		if !ok {
			return nil, fmt.Errorf("%w: no questions returned for task %q", ErrInvalidResponse, task.ID)
		}
		if len(questions) != 3 {
			return nil, fmt.Errorf("%w: expected 3 questions for task %q, got %d",
				ErrInvalidResponse, task.ID, len(questions))
		}
		out[task.ID] = questions
	}
	return out, nil
}

type batchAnalysisPayload struct {
	TaskID       string               `json:"taskId"`
	QuadrantName string               `json:"quadrantName"`
	Reasoning    domain.BilingualText `json:"reasoning"`
	Advice       domain.BilingualText `json:"advice"`
}

// parseBatchAnalysis converts a raw batch classification payload into
// results ordered like the input tasks, correlating each element back to
// its task by exact taskId match. A task missing from the response is a
// parse failure naming the id, never a silent partial result.
func parseBatchAnalysis(raw string, tasks []domain.BatchTaskInput) ([]domain.BatchAnalysisResult, error) {
	var payload []batchAnalysisPayload
	if err := decodeJSON(raw, &payload); err != nil {
		return nil, err
	}

	byID := make(map[string]batchAnalysisPayload, len(payload))
	for _, item := range payload {
		byID[item.TaskID] = item
	}

	results := make([]domain.BatchAnalysisResult, 0, len(tasks))
	for _, task := range tasks {
		item, ok := byID[task.ID]
		if !ok {
			return nil, fmt.Errorf("%w: no classification returned for task %q", ErrInvalidResponse, task.ID)
		}

		quadrant, err := domain.ParseQuadrant(item.QuadrantName)
		if err != nil {
			return nil, fmt.Errorf("%w: task %q: %v", ErrInvalidResponse, task.ID, err)
		}
		if item.Reasoning.IsZero() {
			return nil, fmt.Errorf("%w: task %q missing reasoning", ErrInvalidResponse, task.ID)
		}
		if item.Advice.IsZero() {
			return nil, fmt.Errorf("%w: task %q missing advice", ErrInvalidResponse, task.ID)
		}

		results = append(results, domain.BatchAnalysisResult{
			TaskID:    task.ID,
			Quadrant:  quadrant,
			Reasoning: item.Reasoning,
			Advice:    item.Advice,
		})
	}
	return results, nil
}
