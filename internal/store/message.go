package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/byigitt/kaiban/core/db/sqlc"
	"github.com/byigitt/kaiban/internal/model"
)

type messageStore struct {
	queries *sqlc.Queries
}

func newMessageStore(queries *sqlc.Queries) MessageStore {
	return &messageStore{queries: queries}
}

func (s *messageStore) CreateMany(ctx context.Context, msgs []model.ConversationMessage) error {
	for i := range msgs {
		meta, err := json.Marshal(msgs[i].Metadata)
		if err != nil {
			return fmt.Errorf("encoding message metadata: %w", err)
		}
		row, err := s.queries.CreateConversationMessage(ctx, sqlc.CreateConversationMessageParams{
			ID:             msgs[i].ID,
			ConversationID: msgs[i].ConversationID,
			Role:           string(msgs[i].Role),
			Content:        msgs[i].Content,
			Metadata:       meta,
		})
		if err != nil {
			return mapErr(err)
		}
		msgs[i] = toMessageModel(row)
	}
	return nil
}

func (s *messageStore) ListByConversation(ctx context.Context, conversationID int64) ([]model.ConversationMessage, error) {
	rows, err := s.queries.ListConversationMessages(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	result := make([]model.ConversationMessage, len(rows))
	for i, row := range rows {
		result[i] = toMessageModel(row)
	}
	return result, nil
}

func (s *messageStore) DeleteByConversation(ctx context.Context, conversationID int64) (int64, error) {
	return s.queries.DeleteConversationMessages(ctx, conversationID)
}

func toMessageModel(row sqlc.ConversationMessage) model.ConversationMessage {
	var meta model.MessageMetadata
	_ = json.Unmarshal(row.Metadata, &meta)
	return model.ConversationMessage{
		ID:             row.ID,
		ConversationID: row.ConversationID,
		Role:           model.Role(row.Role),
		Content:        row.Content,
		Metadata:       meta,
		CreatedAt:      row.CreatedAt.Time,
	}
}
