package llm

import (
	"context"
	"errors"
	"time"

	"neighborly/internal/logger"
)

// InstrumentedGenerator wraps a Generator with request metrics and logging.
type InstrumentedGenerator struct {
	next     Generator
	provider string
}

// Instrument wraps gen; provider is used as a metric label.
func Instrument(gen Generator, provider string) *InstrumentedGenerator {
	return &InstrumentedGenerator{next: gen, provider: provider}
}

// Unwrap returns the underlying generator.
func (g *InstrumentedGenerator) Unwrap() Generator {
	return g.next
}

func (g *InstrumentedGenerator) Model() string {
	return g.next.Model()
}

// Enabled reports whether calls can reach a provider at all.
func (g *InstrumentedGenerator) Enabled() bool {
	_, disabled := g.next.(*DisabledClient)
	return !disabled
}

// GenerateText forwards to the wrapped generator and records the outcome.
func (g *InstrumentedGenerator) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	model := g.next.Model()
	log := logger.FromContext(ctx)

	startTime := time.Now()
	text, err := g.next.GenerateText(ctx, req)
	duration := time.Since(startTime)

	switch {
	case err == nil:
		requestsTotal.WithLabelValues(g.provider, model, statusSuccess).Inc()
		requestDuration.WithLabelValues(g.provider, model).Observe(duration.Seconds())
		log.Debug("Model call succeeded",
			"provider", g.provider,
			"model", model,
			"duration", duration,
			"response_bytes", len(text))
	case errors.Is(err, ErrNotConfigured):
		requestsTotal.WithLabelValues(g.provider, model, statusNotConfigured).Inc()
	default:
		requestsTotal.WithLabelValues(g.provider, model, statusError).Inc()
		requestDuration.WithLabelValues(g.provider, model).Observe(duration.Seconds())
		log.Warn("Model call failed",
			"provider", g.provider,
			"model", model,
			"duration", duration,
			"error", err)
	}

	return text, err
}
