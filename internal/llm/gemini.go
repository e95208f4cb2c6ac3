package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"neighborly/internal/config"
	"neighborly/internal/logger"
)

// GeminiClient calls the Gemini API through the generative-ai-go SDK.
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiClient creates a Gemini client authenticated with an API key.
func NewGeminiClient(ctx context.Context, cfg config.GeminiConfig, timeout time.Duration) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client:  client,
		model:   cfg.Model,
		timeout: timeout,
	}, nil
}

func (c *GeminiClient) Model() string {
	return c.model
}

// GenerateText generates a single candidate and joins its text parts.
func (c *GeminiClient) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(req.Temperature)
	model.SystemInstruction = genai.NewUserContent(genai.Text(req.System))
	if req.JSONObject {
		model.ResponseMIMEType = "application/json"
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.User))
	if err != nil {
		return "", wrapInvocation(err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", invocationError("no candidates from model %s", c.model)
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", invocationError("empty response from model %s", c.model)
	}

	if resp.UsageMetadata != nil {
		observeTokens(config.ProviderGemini, c.model,
			int(resp.UsageMetadata.PromptTokenCount), int(resp.UsageMetadata.CandidatesTokenCount))
		logger.FromContext(ctx).Debug("Gemini usage",
			"model", c.model,
			"prompt_tokens", resp.UsageMetadata.PromptTokenCount,
			"completion_tokens", resp.UsageMetadata.CandidatesTokenCount)
	}

	return text.String(), nil
}

// Close releases the underlying SDK client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}
