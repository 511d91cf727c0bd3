package services

import (
	"context"
	"fmt"

	"github.com/casaplan/casaplan/backend/internal/llm"
	"github.com/casaplan/casaplan/backend/internal/models"
	"github.com/casaplan/casaplan/backend/internal/repository"
	"github.com/sirupsen/logrus"
)

// systemInstruction is the fixed assistant persona sent with every dispatch.
const systemInstruction = "Sei un assistente AI esperto in architettura e design 3D. " +
	"Aiuti gli utenti a convertire piantine 2D in modelli 3D, suggerisci miglioramenti " +
	"e rispondi a domande su design, rendering e layout degli spazi. Impari dalle " +
	"preferenze degli utenti e dai loro feedback per offrire suggerimenti sempre più personalizzati."

type ChatService struct {
	repoManager *repository.RepositoryManager
	router      *llm.Router
	logger      *logrus.Logger
}

func NewChatService(repoManager *repository.RepositoryManager, router *llm.Router, logger *logrus.Logger) *ChatService {
	return &ChatService{
		repoManager: repoManager,
		router:      router,
		logger:      logger,
	}
}

// SendMessage persists the inbound user message, dispatches the full history
// to the resolved provider, persists the reply, and returns it with its
// provider/model tag. The user message is not rolled back when the provider
// call fails, so histories can contain unanswered user turns.
func (s *ChatService) SendMessage(ctx context.Context, conversationID, text, requestedModel string) (string, string, error) {
	userMsg := &models.Message{
		ConversationID: conversationID,
		Role:           "user",
		Content:        text,
	}
	if err := s.repoManager.Message.Create(userMsg); err != nil {
		return "", "", fmt.Errorf("failed to store user message: %w", err)
	}

	history, err := s.repoManager.Message.ListByConversation(conversationID)
	if err != nil {
		return "", "", fmt.Errorf("failed to load conversation history: %w", err)
	}

	provider, model := s.router.Resolve(requestedModel)
	modelTag := fmt.Sprintf("%s/%s", provider.Name(), model)

	providerHistory := make([]llm.ChatMessage, 0, len(history))
	for _, msg := range history {
		providerHistory = append(providerHistory, llm.ChatMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	s.logger.WithFields(logrus.Fields{
		"conversation_id": conversationID,
		"model":           modelTag,
		"history_size":    len(providerHistory),
	}).Info("Dispatching chat message")

	reply, err := provider.Complete(ctx, model, systemInstruction, providerHistory)
	if err != nil {
		return "", "", fmt.Errorf("provider call failed: %w", err)
	}

	assistantMsg := &models.Message{
		ConversationID: conversationID,
		Role:           "assistant",
		Content:        reply,
		Model:          &modelTag,
	}
	if err := s.repoManager.Message.Create(assistantMsg); err != nil {
		return "", "", fmt.Errorf("failed to store assistant message: %w", err)
	}

	return reply, modelTag, nil
}
