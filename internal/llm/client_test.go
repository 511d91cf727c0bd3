package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIClient_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req openAIRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-5", req.Model)
		require.Len(t, req.Messages, 3)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "be helpful", req.Messages[0].Content)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Equal(t, "assistant", req.Messages[2].Role)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"certo!"}}]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(server.URL, "test-key", logrus.New())

	reply, err := client.Complete(context.Background(), "gpt-5", "be helpful", []ChatMessage{
		{Role: "user", Content: "ciao"},
		{Role: "assistant", Content: "ciao!"},
	})
	require.NoError(t, err)
	assert.Equal(t, "certo!", reply)
}

func TestOpenAIClient_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(server.URL, "test-key", logrus.New())

	_, err := client.Complete(context.Background(), "gpt-5", "", nil)
	assert.Error(t, err)
}

func TestOpenAIClient_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`rate limited`))
	}))
	defer server.Close()

	client := NewOpenAIClient(server.URL, "test-key", logrus.New())

	_, err := client.Complete(context.Background(), "gpt-5", "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestAnthropicClient_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var req anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-4", req.Model)
		assert.Equal(t, "be helpful", req.System)
		assert.Equal(t, 4096, req.MaxTokens)
		require.Len(t, req.Messages, 1)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":[{"type":"text","text":"volentieri"}]}`))
	}))
	defer server.Close()

	client := NewAnthropicClient(server.URL, "test-key", logrus.New())

	reply, err := client.Complete(context.Background(), "claude-4", "be helpful", []ChatMessage{
		{Role: "user", Content: "ciao"},
	})
	require.NoError(t, err)
	assert.Equal(t, "volentieri", reply)
}

func TestAnthropicClient_SkipsNonTextBlocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":[{"type":"thinking","text":"..."},{"type":"text","text":"risposta"}]}`))
	}))
	defer server.Close()

	client := NewAnthropicClient(server.URL, "test-key", logrus.New())

	reply, err := client.Complete(context.Background(), "claude-4", "", []ChatMessage{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "risposta", reply)
}

func TestAnthropicClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"bad model"}}`))
	}))
	defer server.Close()

	client := NewAnthropicClient(server.URL, "test-key", logrus.New())

	_, err := client.Complete(context.Background(), "claude-nope", "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad model")
}
