package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/careerscope/careerscope/internal/answer"
	"github.com/careerscope/careerscope/internal/config"
	"github.com/careerscope/careerscope/internal/dataset"
	"github.com/careerscope/careerscope/internal/log"
)

// app bundles the components every command needs: the loaded dataset
// and a composer wired to the configured model (or none).
type app struct {
	cfg      *config.Config
	store    *dataset.Store
	composer *answer.Composer
	mode     answer.Mode
}

// setup loads configuration and the dataset and builds the composer.
// A missing or misconfigured model is not fatal: it is logged once
// here and every answer falls back to the heuristic.
func setup(ctx context.Context, logger log.Logger) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	store, dropped, err := dataset.LoadFile(cfg.DatasetPath, logger)
	if err != nil {
		return nil, fmt.Errorf("loading dataset %s: %w", cfg.DatasetPath, err)
	}
	logger.Info("dataset loaded",
		"path", cfg.DatasetPath,
		"records", store.Len(),
		"dropped_rows", dropped,
	)

	var completer answer.Completer
	switch {
	case cfg.Provider == config.ProviderNone:
		logger.Info("answer provider disabled, using heuristic answers only")
	case cfg.GeminiAPIKey == "":
		logger.Warn("GEMINI_API_KEY not set, model answers disabled",
			"provider", cfg.Provider,
		)
	default:
		gemini, err := answer.NewGemini(ctx, answer.GeminiConfig{
			APIKey:      cfg.GeminiAPIKey,
			Model:       cfg.ModelName,
			Temperature: cfg.Temperature,
		})
		if err != nil {
			logger.Warn("model client unavailable, using heuristic answers only",
				"error", err,
			)
		} else {
			completer = gemini
		}
	}

	mode, err := answer.ParseMode(cfg.AnswerMode)
	if err != nil {
		return nil, fmt.Errorf("parsing answer mode: %w", err)
	}

	timeout := time.Duration(cfg.ModelTimeout) * time.Second
	composer := answer.NewComposer(store, completer, timeout, logger)

	return &app{cfg: cfg, store: store, composer: composer, mode: mode}, nil
}
