package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/byigitt/kaiban/internal/model"
	"github.com/byigitt/kaiban/internal/operation"
	"github.com/byigitt/kaiban/internal/store"
)

type ConversationService interface {
	List(ctx context.Context) ([]model.Conversation, error)
	Get(ctx context.Context, id int64) (*model.Conversation, error)
	ClearMessages(ctx context.Context, id int64) (int64, error)
}

type conversationService struct {
	stores StoreProvider
}

func NewConversationService(stores StoreProvider) ConversationService {
	return &conversationService{stores: stores}
}

func (s *conversationService) List(ctx context.Context) ([]model.Conversation, error) {
	convs, err := s.stores.Conversations().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing conversations: %w", err)
	}
	return convs, nil
}

// Get returns the conversation with its transcript in order.
func (s *conversationService) Get(ctx context.Context, id int64) (*model.Conversation, error) {
	conv, err := s.stores.Conversations().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, operation.NotFound("Conversation not found.")
		}
		return nil, fmt.Errorf("loading conversation: %w", err)
	}

	msgs, err := s.stores.Messages().ListByConversation(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	conv.Messages = msgs
	return conv, nil
}

// ClearMessages deletes the transcript but keeps the conversation and the
// tasks it created.
func (s *conversationService) ClearMessages(ctx context.Context, id int64) (int64, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return 0, err
	}

	n, err := s.stores.Messages().DeleteByConversation(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("clearing messages: %w", err)
	}

	slog.InfoContext(ctx, "conversation messages cleared", "conversation_id", id, "deleted", n)
	return n, nil
}
