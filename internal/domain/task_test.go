package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuadrant(t *testing.T) {
	for _, valid := range []string{"Do", "Plan", "Delegate", "Eliminate"} {
		q, err := ParseQuadrant(valid)
		require.NoError(t, err)
		assert.Equal(t, Quadrant(valid), q)
	}

	for _, invalid := range []string{"", "do", "DO", "Urgent", "Later"} {
		_, err := ParseQuadrant(invalid)
		require.Error(t, err, "quadrant %q must be rejected", invalid)
		assert.ErrorIs(t, err, ErrInvalidQuadrant)
	}
}

func TestNewTaskFromAnalysis(t *testing.T) {
	input := TaskInput{Name: "Finish Q3 report", EstimatedTime: "2025-01-10"}
	analysis := AnalysisResult{
		Quadrant:    QuadrantDo,
		IsImportant: true,
		IsUrgent:    true,
		Reasoning:   PlainText("deadline"),
		Steps:       []BilingualText{PlainText("a"), PlainText("b")},
		Advice:      PlainText("time-box it"),
	}

	task, err := NewTask(input, analysis)
	require.NoError(t, err)
	assert.NotEqual(t, task.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.Equal(t, "Finish Q3 report", task.Name)
	assert.Equal(t, QuadrantDo, task.Quadrant)
	assert.True(t, task.IsImportant)
	assert.False(t, task.Completed)
	assert.False(t, task.CreatedAt.IsZero())
}

func TestNewTaskValidation(t *testing.T) {
	_, err := NewTask(TaskInput{}, AnalysisResult{Quadrant: QuadrantDo})
	assert.ErrorIs(t, err, ErrTaskNameEmpty)

	_, err = NewTask(TaskInput{Name: "x"}, AnalysisResult{Quadrant: "Nope"})
	assert.ErrorIs(t, err, ErrTaskQuadrantInvalid)
}

func TestNewTaskFromBatchDerivesFlags(t *testing.T) {
	input := BatchTaskInput{ID: "t1", Name: "Write report", EstimatedTime: "2025-01-10"}

	tests := []struct {
		quadrant      Quadrant
		wantImportant bool
		wantUrgent    bool
	}{
		{QuadrantDo, true, true},
		{QuadrantPlan, true, false},
		{QuadrantDelegate, false, true},
		{QuadrantEliminate, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.quadrant), func(t *testing.T) {
			task, err := NewTaskFromBatch(input, BatchAnalysisResult{
				TaskID:    "t1",
				Quadrant:  tt.quadrant,
				Reasoning: PlainText("r"),
				Advice:    PlainText("a"),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantImportant, task.IsImportant)
			assert.Equal(t, tt.wantUrgent, task.IsUrgent)
			assert.Empty(t, task.Steps, "Batch materialization carries no steps")
		})
	}
}
