package llm

import "context"

// DisabledClient stands in for a provider that cannot be called. Every
// generation fails immediately with ErrNotConfigured.
type DisabledClient struct {
	model string
}

// NewDisabledClient returns a client that reports model as its identifier.
func NewDisabledClient(model string) *DisabledClient {
	return &DisabledClient{model: model}
}

// GenerateText always fails with ErrNotConfigured.
func (c *DisabledClient) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	return "", ErrNotConfigured
}

// Model returns the configured model name even though it is never called.
func (c *DisabledClient) Model() string {
	return c.model
}
