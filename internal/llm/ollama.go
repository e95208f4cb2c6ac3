package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"neighborly/internal/config"
	"neighborly/internal/logger"
)

// OllamaClient calls a local Ollama server through its native chat API.
type OllamaClient struct {
	client  *api.Client
	model   string
	timeout time.Duration
}

// NewOllamaClient creates a client for the configured Ollama host.
func NewOllamaClient(cfg config.OllamaConfig, timeout time.Duration, httpClient *http.Client) (*OllamaClient, error) {
	// api.NewClient expects the bare host, without an OpenAI-style /v1 suffix
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	baseURL = strings.TrimSuffix(baseURL, "/v1")

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama base URL %q: %w", cfg.BaseURL, err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &OllamaClient{
		client:  api.NewClient(parsedURL, httpClient),
		model:   cfg.Model,
		timeout: timeout,
	}, nil
}

func (c *OllamaClient) Model() string {
	return c.model
}

// GenerateText runs a single non-streaming chat request.
func (c *OllamaClient) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	stream := false
	chatReq := &api.ChatRequest{
		Model: c.model,
		Messages: []api.Message{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		Stream: &stream,
		Options: map[string]interface{}{
			"temperature": req.Temperature,
		},
	}
	if req.JSONObject {
		chatReq.Format = json.RawMessage(`"json"`)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var resp api.ChatResponse
	err := c.client.Chat(ctx, chatReq, func(r api.ChatResponse) error {
		resp = r
		return nil
	})
	if err != nil {
		return "", wrapInvocation(err)
	}

	content := resp.Message.Content
	if strings.TrimSpace(content) == "" {
		return "", invocationError("empty response from model %s", c.model)
	}

	observeTokens(config.ProviderOllama, c.model, resp.PromptEvalCount, resp.EvalCount)
	logger.FromContext(ctx).Debug("Ollama usage",
		"model", c.model,
		"prompt_tokens", resp.PromptEvalCount,
		"completion_tokens", resp.EvalCount)

	return content, nil
}
