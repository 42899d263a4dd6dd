package config

import "fmt"

// Validate checks configuration values and returns the first problem
// found, wrapped around a sentinel error.
func (c *Config) Validate() error {
	if c.DatasetPath == "" {
		return ErrMissingDatasetPath
	}

	switch c.Provider {
	case ProviderGemini, ProviderNone:
	default:
		return fmt.Errorf("%w: %q (expected %q or %q)",
			ErrInvalidProvider, c.Provider, ProviderGemini, ProviderNone)
	}

	switch c.AnswerMode {
	case ModeHeuristic, ModePreferModel:
	default:
		return fmt.Errorf("%w: %q (expected %q or %q)",
			ErrInvalidAnswerMode, c.AnswerMode, ModePreferModel, ModeHeuristic)
	}

	if c.ModelTimeout <= 0 || c.ModelTimeout > 300 {
		return fmt.Errorf("%w: %d (expected 1-300 seconds)",
			ErrInvalidModelTimeout, c.ModelTimeout)
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("%w: %g (expected 0.0-2.0)",
			ErrInvalidTemperature, c.Temperature)
	}

	if c.RateBurst < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRateBurst, c.RateBurst)
	}

	return nil
}

// ModelConfigured reports whether the configuration names a usable
// external model: a provider other than "none" with an API key present.
func (c *Config) ModelConfigured() bool {
	return c.Provider == ProviderGemini && c.GeminiAPIKey != ""
}
