package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"neighborly/internal/config"
)

var (
	// ErrNotConfigured is returned when the service is switched off or the
	// provider credential is missing. No network call is attempted.
	ErrNotConfigured = errors.New("language model not configured")

	// ErrInvocation covers transport failures, non-2xx responses, timeouts
	// and responses without a text payload.
	ErrInvocation = errors.New("language model invocation failed")
)

// TextRequest is a single chat-style generation request.
type TextRequest struct {
	System      string  // System instruction
	User        string  // User payload
	Temperature float32 // Sampling temperature
	JSONObject  bool    // Ask the provider to emit a JSON object
}

// Generator produces text from a system/user prompt pair.
type Generator interface {
	GenerateText(ctx context.Context, req TextRequest) (string, error)
	// Model returns the model identifier used for calls.
	Model() string
}

// New builds the Generator selected by cfg. When the service is disabled, or the
// selected provider lacks its credential, it returns a DisabledClient. The result
// is wrapped with request metrics and logging.
func New(cfg config.AI) (Generator, error) {
	return NewWithHTTPClient(cfg, &http.Client{Timeout: cfg.RequestTimeout()})
}

// NewWithHTTPClient is New with an explicit HTTP client for the HTTP-based providers.
func NewWithHTTPClient(cfg config.AI, httpClient *http.Client) (Generator, error) {
	gen, err := newProvider(cfg, httpClient)
	if err != nil {
		return nil, err
	}
	return Instrument(gen, cfg.Provider), nil
}

func newProvider(cfg config.AI, httpClient *http.Client) (Generator, error) {
	timeout := cfg.RequestTimeout()

	switch cfg.Provider {
	case config.ProviderOpenAI:
		if !cfg.Configured() {
			return NewDisabledClient(cfg.OpenAI.Model), nil
		}
		return NewOpenAIClient(cfg.OpenAI, timeout, httpClient), nil
	case config.ProviderOllama:
		if !cfg.Configured() {
			return NewDisabledClient(cfg.Ollama.Model), nil
		}
		return NewOllamaClient(cfg.Ollama, timeout, httpClient)
	case config.ProviderGemini:
		if !cfg.Configured() {
			return NewDisabledClient(cfg.Gemini.Model), nil
		}
		return NewGeminiClient(context.Background(), cfg.Gemini, timeout)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}

// invocationError builds an ErrInvocation with a message.
func invocationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvocation, fmt.Sprintf(format, args...))
}

// wrapInvocation marks err as an ErrInvocation while keeping it matchable.
func wrapInvocation(err error) error {
	return fmt.Errorf("%w: %w", ErrInvocation, err)
}
