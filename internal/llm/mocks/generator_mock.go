package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"neighborly/internal/llm"
)

// MockGenerator is a testify mock of llm.Generator.
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateText(ctx context.Context, req llm.TextRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockGenerator) Model() string {
	args := m.Called()
	return args.String(0)
}

var _ llm.Generator = (*MockGenerator)(nil)
