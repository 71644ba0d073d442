package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// chatClient speaks the OpenAI-compatible chat-completions wire format.
// DeepSeek and OpenRouter both expose it.
type chatClient struct {
	http    *http.Client
	name    string
	apiKey  string
	model   string
	baseURL string
}

type chatReq struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResp struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *chatClient) Name() string { return c.name + ":" + c.model }

func (c *chatClient) Submit(ctx context.Context, prompt string) (string, error) {
	body, _ := json.Marshal(chatReq{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a helpful assistant."},
			{Role: "user", Content: prompt},
		},
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", &RateLimitedError{Err: statusError(c.name, resp.Status)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", statusError(c.name, resp.Status)
	}

	var out chatResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}
	return out.Choices[0].Message.Content, nil
}

// NewDeepSeekProvider targets api.deepseek.com with the deepseek-chat model.
func NewDeepSeekProvider(apiKey string) Provider {
	return &chatClient{
		http:    &http.Client{Timeout: 60 * time.Second},
		name:    "DeepSeek",
		apiKey:  apiKey,
		model:   "deepseek-chat",
		baseURL: "https://api.deepseek.com/chat/completions",
	}
}

// NewOpenRouterProvider targets openrouter.ai. Model is configurable since
// OpenRouter fronts many backends.
func NewOpenRouterProvider(apiKey, model string) Provider {
	if model == "" {
		model = "deepseek/deepseek-chat"
	}
	return &chatClient{
		http:    &http.Client{Timeout: 60 * time.Second},
		name:    "OpenRouter",
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://openrouter.ai/api/v1/chat/completions",
	}
}
