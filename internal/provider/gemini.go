package provider

import (
	"context"
	"strings"

	genai "google.golang.org/genai"
)

// GeminiProvider is a thin wrapper around the official genai client.
type GeminiProvider struct {
	cli   *genai.Client
	model string
}

func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiProvider{cli: cli, model: model}, nil
}

func (g *GeminiProvider) Name() string { return "Gemini:" + g.model }

func (g *GeminiProvider) Submit(ctx context.Context, prompt string) (string, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		nil,
	)
	if err != nil {
		if isQuotaMessage(err.Error()) {
			return "", &RateLimitedError{Err: err}
		}
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyCompletion
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// isQuotaMessage detects the 429/quota shapes the Gemini API returns.
func isQuotaMessage(msg string) bool {
	m := strings.ToLower(msg)
	return strings.Contains(m, "429") ||
		strings.Contains(m, "quota") ||
		strings.Contains(m, "resource_exhausted") ||
		strings.Contains(m, "rate limit")
}
