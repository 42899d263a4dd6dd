// Package answer decides whether a question is answered by the
// deterministic heuristic alone or enriched by an external language
// model grounded in precomputed aggregates.
//
// The one rule this package exists to enforce: a usable answer is
// always returned. The model is a single-attempt, timeout-bounded
// enrichment; any failure falls back silently to the heuristic.
package answer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/careerscope/careerscope/internal/dataset"
	"github.com/careerscope/careerscope/internal/log"
	"github.com/careerscope/careerscope/internal/query"
)

var (
	// ErrModelUnavailable indicates the model could not produce an
	// answer (unconfigured, timed out, errored, or empty). Handled
	// inside the composer; never reaches callers of Answer.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrUnknownMode indicates an unrecognized answer mode name.
	ErrUnknownMode = errors.New("unknown answer mode")
)

// Completer is the narrow capability the composer needs from an
// external language model. Implementations must honor ctx
// cancellation; the composer bounds every call with its timeout.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Mode selects the answering strategy.
type Mode string

const (
	// ModeHeuristicOnly always returns the interpreter's output,
	// including the cannot-answer sentinel.
	ModeHeuristicOnly Mode = "heuristic"

	// ModePreferModel attempts one model call grounded in real
	// aggregates, falling back to the heuristic on any failure.
	ModePreferModel Mode = "prefer-model"
)

// ParseMode converts an external mode name to a Mode. An empty string
// is not accepted; callers apply their own default first.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeHeuristicOnly, ModePreferModel:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Result is a composed answer.
type Result struct {
	Text      string
	UsedModel bool
}

// Composer answers questions over a store, optionally through a model.
type Composer struct {
	store     *dataset.Store
	interp    *query.Interpreter
	completer Completer // nil when no model is configured
	timeout   time.Duration
	logger    log.Logger
}

// NewComposer creates a composer. completer may be nil, in which case
// every mode behaves like ModeHeuristicOnly. timeout bounds each model
// call; a single attempt is made, no retries.
func NewComposer(store *dataset.Store, completer Completer, timeout time.Duration, logger log.Logger) *Composer {
	return &Composer{
		store:     store,
		interp:    query.New(store),
		completer: completer,
		timeout:   timeout,
		logger:    logger,
	}
}

// Answer produces an answer for question under mode. It never returns
// an error: recoverable conditions become explanatory sentences and
// model failures degrade to the heuristic answer.
func (c *Composer) Answer(ctx context.Context, question string, mode Mode) Result {
	heuristic := c.interp.Answer(question)

	if mode != ModePreferModel {
		return Result{Text: heuristic.Text}
	}

	text, err := c.modelAnswer(ctx, question, heuristic)
	if err != nil {
		c.logger.Warn("model answer unavailable, using heuristic",
			"error", err,
			"answered_heuristically", heuristic.Answered,
		)
		return Result{Text: heuristic.Text}
	}
	return Result{Text: text, UsedModel: true}
}

// modelAnswer makes the single bounded model attempt.
func (c *Composer) modelAnswer(ctx context.Context, question string, heuristic query.Outcome) (string, error) {
	if c.completer == nil {
		return "", fmt.Errorf("%w: no completer configured", ErrModelUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	text, err := c.completer.Complete(ctx, c.buildPrompt(question, heuristic))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrModelUnavailable, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrModelUnavailable)
	}
	return text, nil
}
