package triage

import (
	"github.com/quadrantly/triage-api/internal/domain"
	"github.com/quadrantly/triage-api/internal/llm"
)

// Response schemas declared alongside the prompts. Gemini enforces these
// natively; SiliconFlow ignores them and relies on the prompt text, with the
// parsers applying the same validation to both providers' output.

func bilingualSchema() *llm.Schema {
	return &llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			"cn": {Type: llm.TypeString},
			"en": {Type: llm.TypeString},
		},
		Required: []string{"cn", "en"},
	}
}

func questionsSchema() *llm.Schema {
	return &llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			"questions": {
				Type:  llm.TypeArray,
				Items: &llm.Schema{Type: llm.TypeString},
			},
		},
		Required: []string{"questions"},
	}
}

func analysisSchema() *llm.Schema {
	return &llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			"quadrantName": {Type: llm.TypeString},
			"isImportant":  {Type: llm.TypeBoolean},
			"isUrgent":     {Type: llm.TypeBoolean},
			"reasoning":    bilingualSchema(),
			"steps": {
				Type:  llm.TypeArray,
				Items: bilingualSchema(),
			},
			"advice": bilingualSchema(),
		},
		Required: []string{"quadrantName", "isImportant", "isUrgent", "reasoning", "steps", "advice"},
	}
}

// batchQuestionsSchema is built per call: the response object's properties
// are the batch's correlation ids themselves.
func batchQuestionsSchema(tasks []domain.BatchTaskInput) *llm.Schema {
	props := make(map[string]*llm.Schema, len(tasks))
	required := make([]string, 0, len(tasks))
	for _, task := range tasks {
		props[task.ID] = &llm.Schema{
			Type:  llm.TypeArray,
			Items: &llm.Schema{Type: llm.TypeString},
		}
		required = append(required, task.ID)
	}
	return &llm.Schema{
		Type:       llm.TypeObject,
		Properties: props,
		Required:   required,
	}
}

func batchAnalysisSchema() *llm.Schema {
	return &llm.Schema{
		Type: llm.TypeArray,
		Items: &llm.Schema{
			Type: llm.TypeObject,
			Properties: map[string]*llm.Schema{
				"taskId":       {Type: llm.TypeString},
				"quadrantName": {Type: llm.TypeString},
				"reasoning":    bilingualSchema(),
				"advice":       bilingualSchema(),
			},
			Required: []string{"taskId", "quadrantName", "reasoning", "advice"},
		},
	}
}
