package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casaplan/casaplan/backend/internal/llm"
	"github.com/casaplan/casaplan/backend/internal/models"
	"github.com/casaplan/casaplan/backend/internal/repository"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepos(t *testing.T) *repository.RepositoryManager {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Conversation{}, &models.Message{}))

	return repository.NewRepositoryManager(db)
}

func newChatService(t *testing.T, providerURL string) (*ChatService, *repository.RepositoryManager) {
	t.Helper()

	repos := newTestRepos(t)
	openai := llm.NewOpenAIClient(providerURL, "test-key", logrus.New())
	anthropic := llm.NewAnthropicClient(providerURL, "test-key", logrus.New())
	router := llm.NewRouter(openai, anthropic)

	return NewChatService(repos, router, logrus.New()), repos
}

func TestChatService_SendMessage(t *testing.T) {
	var dispatched struct {
		Model    string            `json:"model"`
		Messages []llm.ChatMessage `json:"messages"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&dispatched))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ecco il modello 3D"}}]}`))
	}))
	defer server.Close()

	service, repos := newChatService(t, server.URL)

	reply, modelTag, err := service.SendMessage(context.Background(), "conv-1", "convertila in 3D", "gpt-5")
	require.NoError(t, err)
	assert.Equal(t, "ecco il modello 3D", reply)
	assert.Equal(t, "openai/gpt-5", modelTag)

	// The dispatch carries the system instruction plus the stored history.
	require.NotEmpty(t, dispatched.Messages)
	assert.Equal(t, "system", dispatched.Messages[0].Role)
	assert.Equal(t, "user", dispatched.Messages[1].Role)
	assert.Equal(t, "convertila in 3D", dispatched.Messages[1].Content)

	messages, err := repos.Message.ListByConversation("conv-1")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "user", messages[0].Role)
	assert.Nil(t, messages[0].Model)
	assert.Equal(t, "assistant", messages[1].Role)
	require.NotNil(t, messages[1].Model)
	assert.Equal(t, "openai/gpt-5", *messages[1].Model)
}

func TestChatService_UnknownModelFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-5", req.Model)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer server.Close()

	service, _ := newChatService(t, server.URL)

	_, modelTag, err := service.SendMessage(context.Background(), "conv-1", "ciao", "gemini-pro")
	require.NoError(t, err)
	assert.Equal(t, "openai/gpt-5", modelTag)
}

func TestChatService_ProviderFailureKeepsUserMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	service, repos := newChatService(t, server.URL)

	_, _, err := service.SendMessage(context.Background(), "conv-1", "ciao", "gpt-5")
	require.Error(t, err)

	messages, listErr := repos.Message.ListByConversation("conv-1")
	require.NoError(t, listErr)
	require.Len(t, messages, 1)
	assert.Equal(t, "user", messages[0].Role)
}
