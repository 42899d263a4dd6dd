// Package config provides application configuration with multi-source
// priority.
//
// Sources (highest to lowest):
//  1. Environment variables (CAREERSCOPE_* and GEMINI_* overrides)
//  2. Config file (~/.careerscope/config.yaml or ./config.yaml)
//  3. Defaults
//
// Error handling uses sentinel errors so callers can check with
// errors.Is(); wrap with fmt.Errorf("%w: details", ErrXxx).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

var (
	// ErrInvalidProvider indicates the answer provider is not supported.
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrInvalidAnswerMode indicates the answer mode is not supported.
	ErrInvalidAnswerMode = errors.New("invalid answer mode")

	// ErrMissingDatasetPath indicates no dataset path is configured.
	ErrMissingDatasetPath = errors.New("missing dataset path")

	// ErrInvalidModelTimeout indicates the model timeout is out of range.
	ErrInvalidModelTimeout = errors.New("invalid model timeout")

	// ErrInvalidTemperature indicates the temperature is out of range.
	ErrInvalidTemperature = errors.New("invalid temperature")

	// ErrInvalidRateBurst indicates the rate limiter burst is negative.
	ErrInvalidRateBurst = errors.New("invalid rate burst")
)

// Answer providers used in Config.Provider.
const (
	ProviderGemini = "gemini"
	ProviderNone   = "none"
)

// Answer modes used in Config.AnswerMode.
const (
	ModeHeuristic   = "heuristic"
	ModePreferModel = "prefer-model"
)

// Config stores application configuration.
type Config struct {
	// Dataset
	DatasetPath string `mapstructure:"dataset_path"`

	// Answer provider and model configuration
	Provider     string  `mapstructure:"provider"`   // "gemini" (default) or "none"
	ModelName    string  `mapstructure:"model_name"` // e.g. "gemini-2.5-flash"
	Temperature  float32 `mapstructure:"temperature"`
	ModelTimeout int     `mapstructure:"model_timeout_seconds"`
	AnswerMode   string  `mapstructure:"answer_mode"` // "prefer-model" or "heuristic"
	GeminiAPIKey string  `mapstructure:"gemini_api_key"`

	// HTTP server
	Addr        string   `mapstructure:"addr"`
	CORSOrigins []string `mapstructure:"cors_origins"`
	TrustProxy  bool     `mapstructure:"trust_proxy"`
	RateBurst   int      `mapstructure:"rate_burst"`
}

// Load loads configuration.
// Priority: environment variables > config file > defaults.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".careerscope")

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	setDefaults(v)
	bindEnvVariables(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using defaults",
			"search_paths", []string{configDir, "."})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("dataset_path", "data/career_data.csv")

	v.SetDefault("provider", ProviderGemini)
	v.SetDefault("model_name", "gemini-2.5-flash")
	v.SetDefault("temperature", 0.2)
	v.SetDefault("model_timeout_seconds", 15)
	v.SetDefault("answer_mode", ModePreferModel)

	v.SetDefault("addr", "127.0.0.1:8080")
	// Vite dev server, matching the frontend this API serves.
	v.SetDefault("cors_origins", []string{"http://localhost:5173", "http://127.0.0.1:5173"})
	v.SetDefault("trust_proxy", false)
	v.SetDefault("rate_burst", 60)
}

// bindEnvVariables binds environment overrides explicitly.
func bindEnvVariables(v *viper.Viper) {
	// Hardcoded keys cannot fail to bind; a panic here is a bug.
	mustBind := func(key, envVar string) {
		if err := v.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("dataset_path", "CAREERSCOPE_DATASET")
	mustBind("provider", "CAREERSCOPE_PROVIDER")
	mustBind("answer_mode", "CAREERSCOPE_ANSWER_MODE")
	mustBind("addr", "CAREERSCOPE_ADDR")
	mustBind("cors_origins", "CAREERSCOPE_CORS_ORIGINS")
	mustBind("trust_proxy", "CAREERSCOPE_TRUST_PROXY")
	mustBind("rate_burst", "CAREERSCOPE_RATE_BURST")

	// Gemini variables keep their upstream names so existing
	// deployments work unchanged.
	mustBind("gemini_api_key", "GEMINI_API_KEY")
	mustBind("model_name", "GEMINI_MODEL")
}
