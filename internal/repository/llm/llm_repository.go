package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"recomart/domain"
)

type LLMConfig struct {
	BaseURL   string
	APIKey    string
	Model     string
	MaxTokens int
}

// LLMRepository talks to an OpenAI-compatible chat completions endpoint
// (OpenAI, Ollama, OpenRouter). It performs exactly one request per call;
// retry policy belongs to the recommendation engine.
type LLMRepository struct {
	llmConfig LLMConfig
	client    *http.Client
}

func NewLLMRepository(cfg LLMConfig) *LLMRepository {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1000
	}

	return &LLMRepository{
		llmConfig: cfg,
		client:    &http.Client{},
	}
}

// IsConfigured reports whether base URL, key and model are all present.
func (r *LLMRepository) IsConfigured() bool {
	return r.llmConfig.BaseURL != "" && r.llmConfig.APIKey != "" && r.llmConfig.Model != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one chat completion request and returns the raw assistant
// message. An unconfigured client fails fast with a permanent error and no
// network attempt.
func (r *LLMRepository) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if !r.IsConfigured() {
		return "", &domain.ProviderError{
			Transient: false,
			Err:       fmt.Errorf("llm provider not configured"),
		}
	}

	payload, err := json.Marshal(chatRequest{
		Model: r.llmConfig.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.7,
		MaxTokens:   r.llmConfig.MaxTokens,
	})
	if err != nil {
		return "", &domain.ProviderError{Transient: false, Err: err}
	}

	url := strings.TrimSuffix(r.llmConfig.BaseURL, "/") + "/chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", &domain.ProviderError{Transient: false, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.llmConfig.APIKey)

	res, err := r.client.Do(req)
	if err != nil {
		// connection errors and context timeouts are worth a retry
		return "", &domain.ProviderError{Transient: true, Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", &domain.ProviderError{Transient: true, Err: err}
	}

	if res.StatusCode >= 500 {
		return "", &domain.ProviderError{
			Transient: true,
			Err:       fmt.Errorf("llm provider returned %d", res.StatusCode),
		}
	}
	if res.StatusCode >= 400 {
		return "", &domain.ProviderError{
			Transient: false,
			Err:       fmt.Errorf("llm provider returned %d", res.StatusCode),
		}
	}

	var chatRes chatResponse
	if err := json.Unmarshal(body, &chatRes); err != nil {
		return "", &domain.ProviderError{
			Transient: false,
			Err:       fmt.Errorf("malformed provider response: %w", err),
		}
	}

	if len(chatRes.Choices) == 0 {
		return "", &domain.ProviderError{
			Transient: false,
			Err:       fmt.Errorf("provider response has no choices"),
		}
	}

	return chatRes.Choices[0].Message.Content, nil
}
