package answer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerscope/careerscope/internal/dataset"
	"github.com/careerscope/careerscope/internal/log"
	"github.com/careerscope/careerscope/internal/query"
	"github.com/careerscope/careerscope/internal/testutil"
)

func composerStore(t *testing.T) *dataset.Store {
	t.Helper()
	records := []dataset.StudentRecord{
		{StudentID: "S1", Program: "Computer Science", GraduationYear: 2022, Status: dataset.StatusEmployed, Salary: 50000, HasSalary: true, Sector: "IT"},
		{StudentID: "S2", Program: "Computer Science", GraduationYear: 2022, Status: dataset.StatusUnemployed},
	}
	store, err := dataset.New(records)
	require.NoError(t, err)
	return store
}

func TestAnswer_HeuristicOnly(t *testing.T) {
	store := composerStore(t)
	completer := testutil.NewMockCompleter("model answer")
	c := NewComposer(store, completer, time.Second, log.NewNop())

	res := c.Answer(context.Background(), "What is the employment rate?", ModeHeuristicOnly)

	assert.False(t, res.UsedModel)
	assert.Equal(t, "The employment rate is 50.0% (n=2).", res.Text)
	assert.Empty(t, completer.Prompts(), "heuristic mode never calls the model")
}

func TestAnswer_HeuristicOnly_UnrecognizedSentinel(t *testing.T) {
	c := NewComposer(composerStore(t), nil, time.Second, log.NewNop())

	res := c.Answer(context.Background(), "What is the weather?", ModeHeuristicOnly)

	assert.False(t, res.UsedModel)
	assert.Equal(t, query.Suggestion, res.Text)
}

func TestAnswer_PreferModel_UsesModel(t *testing.T) {
	store := composerStore(t)
	completer := testutil.NewMockCompleter("Half of the graduates are employed.")
	c := NewComposer(store, completer, time.Second, log.NewNop())

	res := c.Answer(context.Background(), "Should I worry about job prospects?", ModePreferModel)

	assert.True(t, res.UsedModel)
	assert.Equal(t, "Half of the graduates are employed.", res.Text)
}

func TestAnswer_PreferModel_PromptIsGrounded(t *testing.T) {
	store := composerStore(t)
	completer := testutil.NewMockCompleter("ok")
	c := NewComposer(store, completer, time.Second, log.NewNop())

	c.Answer(context.Background(), "What is the employment rate?", ModePreferModel)

	prompts := completer.Prompts()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "Total records: 2")
	assert.Contains(t, prompts[0], "Employment rate: 50.0%")
	assert.Contains(t, prompts[0], "Median salary: 50000 INR per year")
	assert.Contains(t, prompts[0], "Top hiring sector: IT")
	assert.Contains(t, prompts[0], "Deterministic answer to this question:")
	assert.Contains(t, prompts[0], "Question: What is the employment rate?")
}

func TestAnswer_PreferModel_NilCompleterFallsBack(t *testing.T) {
	c := NewComposer(composerStore(t), nil, time.Second, log.NewNop())

	res := c.Answer(context.Background(), "What is the employment rate?", ModePreferModel)

	assert.False(t, res.UsedModel)
	assert.Equal(t, "The employment rate is 50.0% (n=2).", res.Text)
}

func TestAnswer_PreferModel_ErrorFallsBack(t *testing.T) {
	completer := testutil.NewMockCompleter("never seen")
	completer.SetError(errors.New("quota exceeded"))
	c := NewComposer(composerStore(t), completer, time.Second, log.NewNop())

	res := c.Answer(context.Background(), "What is the employment rate?", ModePreferModel)

	assert.False(t, res.UsedModel)
	assert.Equal(t, "The employment rate is 50.0% (n=2).", res.Text)
}

func TestAnswer_PreferModel_EmptyResponseFallsBack(t *testing.T) {
	completer := testutil.NewMockCompleter("   ")
	c := NewComposer(composerStore(t), completer, time.Second, log.NewNop())

	res := c.Answer(context.Background(), "What is the employment rate?", ModePreferModel)

	assert.False(t, res.UsedModel)
	assert.Equal(t, "The employment rate is 50.0% (n=2).", res.Text)
}

func TestAnswer_PreferModel_TimeoutMatchesHeuristic(t *testing.T) {
	question := "What is the median salary for Computer Science?"
	store := composerStore(t)

	slow := testutil.NewMockCompleter("too late")
	slow.SetDelay(time.Second)
	preferred := NewComposer(store, slow, 10*time.Millisecond, log.NewNop())
	heuristic := NewComposer(store, nil, time.Second, log.NewNop())

	got := preferred.Answer(context.Background(), question, ModePreferModel)
	want := heuristic.Answer(context.Background(), question, ModeHeuristicOnly)

	// Fallback equivalence: a timed-out model yields exactly the
	// heuristic answer.
	assert.False(t, got.UsedModel)
	assert.Equal(t, want.Text, got.Text)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("prefer-model")
	require.NoError(t, err)
	assert.Equal(t, ModePreferModel, m)

	m, err = ParseMode("heuristic")
	require.NoError(t, err)
	assert.Equal(t, ModeHeuristicOnly, m)

	_, err = ParseMode("model-only")
	assert.ErrorIs(t, err, ErrUnknownMode)

	_, err = ParseMode("")
	assert.ErrorIs(t, err, ErrUnknownMode)
}
