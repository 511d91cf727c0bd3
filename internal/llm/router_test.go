package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubProvider struct {
	name string
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Complete(ctx context.Context, model, system string, history []ChatMessage) (string, error) {
	return "", nil
}

func TestRouter_Resolve(t *testing.T) {
	openai := &stubProvider{name: "openai"}
	anthropic := &stubProvider{name: "anthropic"}
	router := NewRouter(openai, anthropic)

	tests := []struct {
		requested    string
		wantProvider string
		wantModel    string
	}{
		{"gpt-5", "openai", "gpt-5"},
		{"gpt-4o-mini", "openai", "gpt-4o-mini"},
		{"claude-4-sonnet", "anthropic", "claude-4-sonnet"},
		{"gemini-pro", "openai", DefaultModel},
		{"", "openai", DefaultModel},
	}

	for _, tt := range tests {
		provider, model := router.Resolve(tt.requested)
		assert.Equal(t, tt.wantProvider, provider.Name(), "requested %q", tt.requested)
		assert.Equal(t, tt.wantModel, model, "requested %q", tt.requested)
	}
}
