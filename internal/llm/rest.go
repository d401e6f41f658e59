package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/erezadam/GymIq-sub000/internal/config"
)

// RESTClient speaks the OpenAI-compatible chat-completions wire format
// directly over net/http. Used for self-hosted gateways (Ollama, Groq-style
// proxies) where pulling in the full SDK buys nothing.
type RESTClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	timeout    timeoutCfg
}

func NewRESTClient(cfg config.LLMConfig) *RESTClient {
	return &RESTClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: &http.Client{},
		timeout:    timeoutCfg{d: cfg.Timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *RESTClient) Generate(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) Result {
	ctx, cancel := c.timeout.apply(ctx)
	defer cancel()

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens: maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return FailureResult(fmt.Errorf("encoding chat request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return FailureResult(fmt.Errorf("building chat request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return FailureResult(fmt.Errorf("calling chat completions: %w", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return FailureResult(fmt.Errorf("reading chat response: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		return FailureResult(fmt.Errorf("chat completions returned status %d", resp.StatusCode))
	}

	var decoded chatResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return FailureResult(fmt.Errorf("decoding chat response: %w", err))
	}
	if decoded.Error != nil {
		return FailureResult(fmt.Errorf("chat completions error: %s", decoded.Error.Message))
	}
	if len(decoded.Choices) == 0 || decoded.Choices[0].Message.Content == "" {
		return EmptyResult()
	}
	return TextResult(decoded.Choices[0].Message.Content)
}

// timeoutCfg bounds a single call's wall-clock time. A zero duration
// leaves the parent context untouched.
type timeoutCfg struct {
	d time.Duration
}

func (t timeoutCfg) apply(ctx context.Context) (context.Context, context.CancelFunc) {
	if t.d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, t.d)
}
