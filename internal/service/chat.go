package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Saon110/Weather-Agentic-Ai/internal/domain"
	"github.com/Saon110/Weather-Agentic-Ai/internal/repository"
)

// ChatService manages persisted conversations on top of the chat repository.
type ChatService struct {
	repo *repository.ChatRepository
}

func NewChatService(repo *repository.ChatRepository) *ChatService {
	return &ChatService{repo: repo}
}

func (s *ChatService) Create(ctx context.Context, owner int64) (*domain.ChatSession, error) {
	return s.repo.CreateChat(ctx, uuid.NewString(), owner)
}

func (s *ChatService) AppendMessage(ctx context.Context, chatID, role, content string) (*domain.ChatMessage, error) {
	if role != domain.RoleUser && role != domain.RoleAssistant {
		return nil, fmt.Errorf("invalid message role %q", role)
	}
	return s.repo.AppendMessage(ctx, chatID, role, content)
}

func (s *ChatService) RecentMessages(ctx context.Context, chatID string) ([]domain.ChatMessage, error) {
	return s.repo.RecentMessages(ctx, chatID)
}

func (s *ChatService) List(ctx context.Context, owner int64) ([]domain.ChatSession, error) {
	return s.repo.ListChats(ctx, owner)
}

func (s *ChatService) Get(ctx context.Context, chatID string) (*domain.ChatSession, error) {
	return s.repo.GetChat(ctx, chatID)
}

func (s *ChatService) Delete(ctx context.Context, chatID string) error {
	return s.repo.DeleteChat(ctx, chatID)
}
