package llm

import (
	"context"
)

// MockInvoker is a configurable mock for testing model-backed functionality.
// Set the function field to control behavior in tests.
type MockInvoker struct {
	// CompleteFunc is called when Complete is invoked.
	// If nil, returns an empty result and nil error.
	CompleteFunc func(ctx context.Context, systemPrompt, userPrompt string) (*CompletionResult, error)

	// Model is returned by GetModel. Defaults to "mock-model".
	Model string

	// Endpoint is returned by GetEndpoint. Defaults to "http://mock-endpoint".
	Endpoint string

	// Call tracking for verification
	CompleteCalls int

	// LastSystemPrompt and LastUserPrompt record the most recent call.
	LastSystemPrompt string
	LastUserPrompt   string
}

// NewMockInvoker creates a new mock with sensible defaults.
func NewMockInvoker() *MockInvoker {
	return &MockInvoker{
		Model:    "mock-model",
		Endpoint: "http://mock-endpoint",
	}
}

// NewMockInvokerWithResponse creates a mock that always returns the given content.
func NewMockInvokerWithResponse(content string) *MockInvoker {
	m := NewMockInvoker()
	m.CompleteFunc = func(ctx context.Context, systemPrompt, userPrompt string) (*CompletionResult, error) {
		return &CompletionResult{Content: content}, nil
	}
	return m
}

// Complete implements Invoker.
func (m *MockInvoker) Complete(ctx context.Context, systemPrompt, userPrompt string) (*CompletionResult, error) {
	m.CompleteCalls++
	m.LastSystemPrompt = systemPrompt
	m.LastUserPrompt = userPrompt
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, systemPrompt, userPrompt)
	}
	return &CompletionResult{}, nil
}

// GetModel implements Invoker.
func (m *MockInvoker) GetModel() string {
	if m.Model == "" {
		return "mock-model"
	}
	return m.Model
}

// GetEndpoint implements Invoker.
func (m *MockInvoker) GetEndpoint() string {
	if m.Endpoint == "" {
		return "http://mock-endpoint"
	}
	return m.Endpoint
}

// Reset clears call tracking.
func (m *MockInvoker) Reset() {
	m.CompleteCalls = 0
	m.LastSystemPrompt = ""
	m.LastUserPrompt = ""
}
