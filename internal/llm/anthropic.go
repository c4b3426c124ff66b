package llm

import (
	"context"

	"github.com/clawfood/clawfood/internal/resilience"
	"github.com/clawfood/clawfood/pkg/anthropic"
)

const defaultMaxTokens = 2048

// Anthropic completes prompts with a Claude model.
type Anthropic struct {
	client      anthropic.Client
	model       string
	maxTokens   int64
	temperature float64
}

// NewAnthropic wraps an Anthropic client.
func NewAnthropic(c anthropic.Client, model string, maxTokens int64, temperature float64) *Anthropic {
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Anthropic{client: c, model: model, maxTokens: maxTokens, temperature: temperature}
}

// Name implements Client.
func (a *Anthropic) Name() string { return "anthropic/" + a.model }

// Complete implements Client.
func (a *Anthropic) Complete(ctx context.Context, system, prompt string) (string, error) {
	temp := a.temperature
	resp, err := a.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       a.model,
		MaxTokens:   a.maxTokens,
		System:      system,
		Messages:    []anthropic.Message{{Role: "user", Content: prompt}},
		Temperature: &temp,
	})
	if err != nil {
		return "", resilience.ClassifyStatus(err, anthropic.StatusCode(err))
	}
	resp.Usage.Log(a.model, "suggest")
	return resp.Text(), nil
}
