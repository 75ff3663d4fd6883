package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/byigitt/kaiban/internal/model"
	"github.com/byigitt/kaiban/internal/store"
)

type conversationStore struct{ s *Stores }

func (c *conversationStore) GetByID(ctx context.Context, id int64) (*model.Conversation, error) {
	var out *model.Conversation
	err := c.s.do(ctx, func(st *state) error {
		conv, ok := st.conversations[id]
		if !ok {
			return store.ErrNotFound
		}
		out = &conv
		return nil
	})
	return out, err
}

func (c *conversationStore) Create(ctx context.Context, conv *model.Conversation) error {
	return c.s.do(ctx, func(st *state) error {
		conv.ID = c.s.assignID(conv.ID)
		if _, exists := st.conversations[conv.ID]; exists {
			return store.ErrConflict
		}
		now := c.s.now()
		conv.CreatedAt, conv.UpdatedAt = now, now
		conv.Messages = nil
		st.conversations[conv.ID] = *conv
		return nil
	})
}

func (c *conversationStore) Touch(ctx context.Context, id int64) error {
	return c.s.do(ctx, func(st *state) error {
		conv, ok := st.conversations[id]
		if !ok {
			return store.ErrNotFound
		}
		conv.UpdatedAt = c.s.now()
		st.conversations[id] = conv
		return nil
	})
}

func (c *conversationStore) List(ctx context.Context) ([]model.Conversation, error) {
	var out []model.Conversation
	err := c.s.do(ctx, func(st *state) error {
		out = make([]model.Conversation, 0, len(st.conversations))
		for _, conv := range st.conversations {
			out = append(out, conv)
		}
		sort.Slice(out, func(i, j int) bool {
			if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
				return out[i].UpdatedAt.After(out[j].UpdatedAt)
			}
			return out[i].ID > out[j].ID
		})
		return nil
	})
	return out, err
}

type messageStore struct{ s *Stores }

func (m *messageStore) CreateMany(ctx context.Context, msgs []model.ConversationMessage) error {
	return m.s.do(ctx, func(st *state) error {
		now := m.s.now()
		for i := range msgs {
			if _, ok := st.conversations[msgs[i].ConversationID]; !ok {
				return fmt.Errorf("message references unknown conversation %d", msgs[i].ConversationID)
			}
			msgs[i].ID = m.s.assignID(msgs[i].ID)
			msgs[i].CreatedAt = now
			st.messages = append(st.messages, msgs[i])
		}
		return nil
	})
}

func (m *messageStore) ListByConversation(ctx context.Context, conversationID int64) ([]model.ConversationMessage, error) {
	var out []model.ConversationMessage
	err := m.s.do(ctx, func(st *state) error {
		for _, msg := range st.messages {
			if msg.ConversationID == conversationID {
				out = append(out, msg)
			}
		}
		return nil
	})
	return out, err
}

func (m *messageStore) DeleteByConversation(ctx context.Context, conversationID int64) (int64, error) {
	var n int64
	err := m.s.do(ctx, func(st *state) error {
		kept := st.messages[:0:0]
		for _, msg := range st.messages {
			if msg.ConversationID == conversationID {
				n++
				continue
			}
			kept = append(kept, msg)
		}
		st.messages = kept
		return nil
	})
	return n, err
}
