package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a config that passes Validate.
func validConfig() Config {
	return Config{
		DatasetPath:  "data/career_data.csv",
		Provider:     ProviderGemini,
		ModelName:    "gemini-2.5-flash",
		Temperature:  0.2,
		ModelTimeout: 15,
		AnswerMode:   ModePreferModel,
		Addr:         "127.0.0.1:8080",
		RateBurst:    60,
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "missing dataset path",
			mutate:  func(c *Config) { c.DatasetPath = "" },
			wantErr: ErrMissingDatasetPath,
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Provider = "openai" },
			wantErr: ErrInvalidProvider,
		},
		{
			name:    "unknown answer mode",
			mutate:  func(c *Config) { c.AnswerMode = "always-model" },
			wantErr: ErrInvalidAnswerMode,
		},
		{
			name:    "zero model timeout",
			mutate:  func(c *Config) { c.ModelTimeout = 0 },
			wantErr: ErrInvalidModelTimeout,
		},
		{
			name:    "excessive model timeout",
			mutate:  func(c *Config) { c.ModelTimeout = 301 },
			wantErr: ErrInvalidModelTimeout,
		},
		{
			name:    "negative temperature",
			mutate:  func(c *Config) { c.Temperature = -0.1 },
			wantErr: ErrInvalidTemperature,
		},
		{
			name:    "negative rate burst",
			mutate:  func(c *Config) { c.RateBurst = -1 },
			wantErr: ErrInvalidRateBurst,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))

	assert.Equal(t, "data/career_data.csv", cfg.DatasetPath)
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, ModePreferModel, cfg.AnswerMode)
	assert.Equal(t, 15, cfg.ModelTimeout)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr)

	// Defaults alone must form a valid configuration.
	require.NoError(t, cfg.Validate())
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("CAREERSCOPE_PROVIDER", "none")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")

	v := viper.New()
	setDefaults(v)
	bindEnvVariables(v)

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))

	assert.Equal(t, ProviderNone, cfg.Provider)
	assert.Equal(t, "gemini-2.5-pro", cfg.ModelName)
}

func TestModelConfigured(t *testing.T) {
	cfg := validConfig()
	assert.False(t, cfg.ModelConfigured(), "no API key")

	cfg.GeminiAPIKey = "test-key"
	assert.True(t, cfg.ModelConfigured())

	cfg.Provider = ProviderNone
	assert.False(t, cfg.ModelConfigured(), "provider none disables the model")
}
