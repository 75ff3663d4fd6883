package store

import (
	"context"

	"github.com/byigitt/kaiban/core/db/sqlc"
	"github.com/byigitt/kaiban/internal/model"
)

type conversationStore struct {
	queries *sqlc.Queries
}

func newConversationStore(queries *sqlc.Queries) ConversationStore {
	return &conversationStore{queries: queries}
}

func (s *conversationStore) GetByID(ctx context.Context, id int64) (*model.Conversation, error) {
	row, err := s.queries.GetConversation(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return toConversationModel(row), nil
}

func (s *conversationStore) Create(ctx context.Context, conv *model.Conversation) error {
	row, err := s.queries.CreateConversation(ctx, sqlc.CreateConversationParams{
		ID:    conv.ID,
		Topic: conv.Topic,
	})
	if err != nil {
		return mapErr(err)
	}
	*conv = *toConversationModel(row)
	return nil
}

func (s *conversationStore) Touch(ctx context.Context, id int64) error {
	n, err := s.queries.TouchConversation(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *conversationStore) List(ctx context.Context) ([]model.Conversation, error) {
	rows, err := s.queries.ListConversations(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]model.Conversation, len(rows))
	for i, row := range rows {
		result[i] = *toConversationModel(row)
	}
	return result, nil
}

func toConversationModel(row sqlc.Conversation) *model.Conversation {
	return &model.Conversation{
		ID:        row.ID,
		Topic:     row.Topic,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
