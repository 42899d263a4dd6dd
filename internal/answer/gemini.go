package answer

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiConfig configures the Gemini-backed completer.
type GeminiConfig struct {
	APIKey      string
	Model       string // defaults to gemini-2.5-flash
	Temperature float32
}

// Gemini implements Completer on the Google Gemini API.
type Gemini struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGemini creates a Gemini completer. An API key is required; the
// caller decides whether a missing key is fatal or just disables the
// model path.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("gemini: creating client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &Gemini{client: client, model: model, temperature: cfg.Temperature}, nil
}

// Complete sends the prompt and returns the model's text. The caller
// bounds ctx; no retry happens here.
func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("gemini: generating content: %w", err)
	}
	return resp.Text(), nil
}
