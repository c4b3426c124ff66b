package llm

import (
	"context"

	"github.com/clawfood/clawfood/internal/resilience"
	"github.com/clawfood/clawfood/pkg/gemini"
)

// Gemini completes prompts with a Gemini model.
type Gemini struct {
	client      gemini.Client
	model       string
	temperature float32
}

// NewGemini wraps a Gemini client.
func NewGemini(c gemini.Client, model string, temperature float64) *Gemini {
	if model == "" {
		model = gemini.DefaultModel
	}
	return &Gemini{client: c, model: model, temperature: float32(temperature)}
}

// Name implements Client.
func (g *Gemini) Name() string { return "gemini/" + g.model }

// Complete implements Client.
func (g *Gemini) Complete(ctx context.Context, system, prompt string) (string, error) {
	temp := g.temperature
	text, err := g.client.GenerateText(ctx, gemini.TextRequest{
		Model:       g.model,
		System:      system,
		Prompt:      prompt,
		Temperature: &temp,
	})
	if err != nil {
		return "", resilience.ClassifyStatus(err, gemini.StatusCode(err))
	}
	return text, nil
}
