package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/freddy-ai/freddy-backend/internal/apperr"
	"github.com/freddy-ai/freddy-backend/internal/logger"
	"github.com/freddy-ai/freddy-backend/internal/requestdata"
	"github.com/freddy-ai/freddy-backend/internal/types"
)

type ChatRequest struct {
	Message        string             `json:"message"`
	ConversationID uuid.UUID          `json:"conversationId"`
	Settings       *types.Preferences `json:"settings"`
}

type ChatResponse struct {
	Message        string      `json:"message"`
	Sources        []RAGResult `json:"sources"`
	Usage          ChatUsage   `json:"usage"`
	ConversationID uuid.UUID   `json:"conversationId"`
}

type ChatInfo struct {
	Status string `json:"status"`
	Model  string `json:"model"`
}

// ChatService builds Freddy's tutoring prompt, optionally grounds it with
// knowledge-base context, and proxies to the chat-completion API.
type ChatService interface {
	Respond(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	Info() ChatInfo
}

type chatService struct {
	client ChatClient
	rag    RAGService
	log    *logger.Logger
}

func NewChatService(client ChatClient, rag RAGService, baseLog *logger.Logger) ChatService {
	return &chatService{client: client, rag: rag, log: baseLog.With("service", "ChatService")}
}

func (s *chatService) Info() ChatInfo {
	return ChatInfo{Status: "ok", Model: s.client.Model()}
}

func (s *chatService) Respond(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if requestdata.UserID(ctx) == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("%w: message is required", apperr.ErrValidation)
	}
	settings := types.DefaultPreferences()
	if req.Settings != nil {
		settings = *req.Settings
	}

	// A broken knowledge base degrades to an ungrounded answer, it never
	// fails the chat request.
	var sources []RAGResult
	if settings.RAGEnabled {
		results, err := s.rag.Search(ctx, req.Message, 3)
		if err != nil {
			s.log.Warn("Knowledge base search failed, answering without context", "error", err)
		} else {
			sources = results
		}
	}

	completion, err := s.client.CreateChatCompletion(ctx, ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: types.MessageRoleSystem, Content: buildSystemPrompt(settings, sources)},
			{Role: types.MessageRoleUser, Content: req.Message},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return nil, err
	}

	if sources == nil {
		sources = []RAGResult{}
	}
	return &ChatResponse{
		Message:        completion.Choices[0].Message.Content,
		Sources:        sources,
		Usage:          completion.Usage,
		ConversationID: req.ConversationID,
	}, nil
}

func buildSystemPrompt(settings types.Preferences, sources []RAGResult) string {
	var b strings.Builder
	b.WriteString("You are Freddy, a friendly AI English tutor. ")
	b.WriteString("Correct the learner's mistakes gently and keep the conversation going.\n")

	switch settings.Difficulty {
	case types.DifficultyAdvanced:
		b.WriteString("Use natural, idiomatic English and challenge the learner.\n")
	case types.DifficultyIntermediate:
		b.WriteString("Use everyday English with occasional new vocabulary, explained briefly.\n")
	default:
		b.WriteString("Use short, simple sentences and common vocabulary.\n")
	}
	if len(settings.Topics) > 0 {
		b.WriteString("The learner wants to practice: " + strings.Join(settings.Topics, ", ") + ".\n")
	}
	if settings.PersonalityType != "" {
		b.WriteString("Keep a " + settings.PersonalityType + " tone.\n")
	}
	if len(sources) > 0 {
		b.WriteString("\nUse this reference material when relevant:\n")
		for _, src := range sources {
			b.WriteString("- " + src.Title + ": " + src.Content + "\n")
		}
	}
	return b.String()
}
