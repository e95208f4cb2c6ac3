package llm

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/pkoukk/tiktoken-go"
	openai "github.com/sashabaranov/go-openai"

	"neighborly/internal/config"
	"neighborly/internal/logger"
)

// OpenAIClient calls the OpenAI chat completions API.
type OpenAIClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIClient creates a client for the configured model and base URL.
func NewOpenAIClient(cfg config.OpenAIConfig, timeout time.Duration, httpClient *http.Client) *OpenAIClient {
	openaiConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		openaiConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}
	if httpClient != nil {
		openaiConfig.HTTPClient = httpClient
	}

	return &OpenAIClient{
		client:  openai.NewClientWithConfig(openaiConfig),
		model:   cfg.Model,
		timeout: timeout,
	}
}

func (c *OpenAIClient) Model() string {
	return c.model
}

// GenerateText sends one chat completion and returns the first choice's content.
func (c *OpenAIClient) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: req.System},
		{Role: openai.ChatMessageRoleUser, Content: req.User},
	}

	request := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
	}
	if req.JSONObject {
		request.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", wrapInvocation(err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", invocationError("empty response from model %s", c.model)
	}

	content := resp.Choices[0].Message.Content

	usage := resp.Usage
	if usage.TotalTokens == 0 {
		usage.PromptTokens = estimateTokens(c.model, req.System+"\n"+req.User)
		usage.CompletionTokens = estimateTokens(c.model, content)
		usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens
	}
	observeTokens(config.ProviderOpenAI, c.model, usage.PromptTokens, usage.CompletionTokens)
	logger.FromContext(ctx).Debug("OpenAI usage",
		"model", c.model,
		"prompt_tokens", usage.PromptTokens,
		"completion_tokens", usage.CompletionTokens)

	return content, nil
}

// estimateTokens counts tokens locally when the API omits usage.
// Returns 0 when no encoding is available.
func estimateTokens(model, text string) int {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding(tiktoken.MODEL_CL100K_BASE)
		if err != nil {
			return 0
		}
	}
	return len(enc.Encode(text, nil, nil))
}
