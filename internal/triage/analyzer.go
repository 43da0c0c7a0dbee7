package triage

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/quadrantly/triage-api/internal/domain"
	"github.com/quadrantly/triage-api/internal/llm"
	"github.com/quadrantly/triage-api/internal/platform/gemini"
	"github.com/quadrantly/triage-api/internal/platform/siliconflow"
	"github.com/quadrantly/triage-api/internal/redact"
)

// ProviderFactory builds a provider from per-call settings. Selection is a
// pure function of Settings.Provider; a factory that fails with
// llm.ErrMissingCredentials propagates immediately, before any network
// call or retry.
type ProviderFactory func(logger *slog.Logger, s Settings) (llm.Provider, error)

// DefaultProviderFactory selects between the two supported backends. It is
// exported so the composition root can wrap it with server-side credential
// fallbacks while keeping the same dispatch.
func DefaultProviderFactory(logger *slog.Logger, s Settings) (llm.Provider, error) {
	switch s.Provider {
	case ProviderGemini:
		return gemini.New(logger, s.GeminiAPIKey, s.GeminiModel)
	case ProviderSiliconFlow:
		return siliconflow.New(logger, siliconflow.Config{
			APIKey: s.SiliconFlowAPIKey,
			Model:  s.SiliconFlowModel,
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, s.Provider)
	}
}

// Analyzer exposes the orchestration entry points. It holds no mutable
// state: every call closes over its own task, settings, and answer data, so
// concurrent calls cannot interfere.
type Analyzer struct {
	logger   *slog.Logger
	executor *llm.Executor
	factory  ProviderFactory
}

// NewAnalyzer creates an Analyzer. A nil factory selects the real
// two-provider dispatch; tests inject fakes through it.
func NewAnalyzer(logger *slog.Logger, executor *llm.Executor, factory ProviderFactory) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	if factory == nil {
		factory = DefaultProviderFactory
	}
	return &Analyzer{
		logger:   logger,
		executor: executor,
		factory:  factory,
	}
}

// GenerateQuestions produces the 3 assessment questions for one task.
// Question ids are assigned as stringified indexes in provider order, so
// the caller can address answers stably.
func (a *Analyzer) GenerateQuestions(ctx context.Context, task domain.TaskInput, s Settings) ([]domain.Question, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}

	provider, err := a.factory(a.logger, s)
	if err != nil {
		return nil, err
	}

	prompt := buildQuestionPrompt(task, s)
	raw, err := a.executor.Do(ctx, "generate-questions", func(ctx context.Context) (string, error) {
		return provider.Complete(ctx, llm.Request{
			System:      systemPrompt,
			Prompt:      prompt,
			Temperature: s.Creativity,
			Schema:      questionsSchema(),
		})
	})
	if err != nil {
		return nil, err
	}

	questions, err := parseQuestions(raw)
	if err != nil {
		return nil, err
	}

	a.logger.InfoContext(ctx, "generated assessment questions",
		"provider", provider.Name(),
		"task", task.Name,
		"question_count", len(questions))
	return questions, nil
}

// ClassifyTask classifies one task from its answered assessment questions.
// Every question must have an answer recorded; the caller normally
// enforces this, but an incomplete transcript is rejected here too rather
// than sent to the model.
func (a *Analyzer) ClassifyTask(
	ctx context.Context,
	task domain.TaskInput,
	questions []domain.Question,
	answers map[string]bool,
	s Settings,
) (*domain.AnalysisResult, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}
	for _, q := range questions {
		if _, ok := answers[q.ID]; !ok {
			return nil, fmt.Errorf("%w: question %s has no answer", ErrIncompleteAssessment, q.ID)
		}
	}

	provider, err := a.factory(a.logger, s)
	if err != nil {
		return nil, err
	}

	prompt := buildClassifyPrompt(task, questions, answers, s)
	raw, err := a.executor.Do(ctx, "classify-task", func(ctx context.Context) (string, error) {
		return provider.Complete(ctx, llm.Request{
			System:      systemPrompt,
			Prompt:      prompt,
			Temperature: s.Creativity,
			Schema:      analysisSchema(),
		})
	})
	if err != nil {
		return nil, err
	}

	result, err := parseAnalysis(raw)
	if err != nil {
		return nil, err
	}

	a.logger.InfoContext(ctx, "classified task",
		"provider", provider.Name(),
		"task", task.Name,
		"quadrant", result.Quadrant)
	return result, nil
}

// GenerateBatchQuestions produces 3 questions per task for up to
// MaxBatchSize tasks in one round-trip. The size guard fails fast: no
// prompt is built and no network touched for an oversized batch.
func (a *Analyzer) GenerateBatchQuestions(
	ctx context.Context,
	tasks []domain.BatchTaskInput,
	s Settings,
) (map[string][]string, error) {
	if len(tasks) == 0 {
		return map[string][]string{}, nil
	}
	if len(tasks) > MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d tasks", ErrBatchTooLarge, len(tasks))
	}
	if err := validateBatchInputs(tasks); err != nil {
		return nil, err
	}

	provider, err := a.factory(a.logger, s)
	if err != nil {
		return nil, err
	}

	prompt := buildBatchQuestionPrompt(tasks, s)
	raw, err := a.executor.Do(ctx, "generate-batch-questions", func(ctx context.Context) (string, error) {
		return provider.Complete(ctx, llm.Request{
			System:      systemPrompt,
			Prompt:      prompt,
			Temperature: s.Creativity,
			Schema:      batchQuestionsSchema(tasks),
		})
	})
	if err != nil {
		return nil, err
	}

	questions, err := parseBatchQuestions(raw, tasks)
	if err != nil {
		return nil, err
	}

	a.logger.InfoContext(ctx, "generated batch questions",
		"provider", provider.Name(),
		"task_count", len(tasks))
	return questions, nil
}

// ClassifyBatch classifies all tasks in one network round-trip. A single
// prompt keeps the token budget predictable and lets the model weigh the
// tasks against each other; the batch is never fanned out into concurrent
// single-task calls.
func (a *Analyzer) ClassifyBatch(
	ctx context.Context,
	tasks []domain.BatchTaskInput,
	questions map[string][]string,
	answers map[string]map[string]bool,
	s Settings,
) ([]domain.BatchAnalysisResult, error) {
	if len(tasks) == 0 {
		return []domain.BatchAnalysisResult{}, nil
	}
	if len(tasks) > MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d tasks", ErrBatchTooLarge, len(tasks))
	}
	if err := validateBatchInputs(tasks); err != nil {
		return nil, err
	}

	for _, task := range tasks {
		taskQuestions := questions[task.ID]
		if len(taskQuestions) != 3 {
			return nil, fmt.Errorf("%w: task %q has %d questions, want 3",
				ErrIncompleteAssessment, task.ID, len(taskQuestions))
		}
		for i := range taskQuestions {
			if _, ok := answers[task.ID][strconv.Itoa(i)]; !ok {
				return nil, fmt.Errorf("%w: task %q question %d has no answer",
					ErrIncompleteAssessment, task.ID, i)
			}
		}
	}

	provider, err := a.factory(a.logger, s)
	if err != nil {
		return nil, err
	}

	prompt := buildBatchClassifyPrompt(tasks, questions, answers, s)
	raw, err := a.executor.Do(ctx, "classify-batch", func(ctx context.Context) (string, error) {
		return provider.Complete(ctx, llm.Request{
			System:      systemPrompt,
			Prompt:      prompt,
			Temperature: s.Creativity,
			Schema:      batchAnalysisSchema(),
		})
	})
	if err != nil {
		return nil, err
	}

	results, err := parseBatchAnalysis(raw, tasks)
	if err != nil {
		return nil, err
	}

	a.logger.InfoContext(ctx, "classified batch",
		"provider", provider.Name(),
		"task_count", len(tasks))
	return results, nil
}

// TestConnection validates credentials and reachability with one minimal
// completion. It never fails: every underlying error is logged and
// converted to false, because the result only drives a UI status
// indicator.
func (a *Analyzer) TestConnection(ctx context.Context, s Settings) bool {
	provider, err := a.factory(a.logger, s)
	if err != nil {
		a.logger.WarnContext(ctx, "connection test failed before any call",
			"provider", s.Provider,
			"error", redact.Error(err))
		return false
	}

	if err := provider.Ping(ctx); err != nil {
		a.logger.WarnContext(ctx, "connection test failed",
			"provider", provider.Name(),
			"error", redact.Error(err))
		return false
	}

	return true
}

// validateBatchInputs rejects empty or duplicate correlation ids upfront;
// correlation on return is an exact string match, so ambiguity here cannot
// be recovered from later.
func validateBatchInputs(tasks []domain.BatchTaskInput) error {
	seen := make(map[string]struct{}, len(tasks))
	for _, task := range tasks {
		if task.ID == "" {
			return fmt.Errorf("%w: task %q", ErrMissingBatchID, task.Name)
		}
		if task.Name == "" {
			return domain.ErrTaskNameEmpty
		}
		if _, dup := seen[task.ID]; dup {
			return fmt.Errorf("%w: id %q", ErrDuplicateBatchID, task.ID)
		}
		seen[task.ID] = struct{}{}
	}
	return nil
}
