package dto

import (
	"time"

	"github.com/byigitt/kaiban/internal/model"
	"github.com/byigitt/kaiban/internal/service"
)

type StartConversationRequest struct {
	Text    string `json:"text"`
	BoardID *int64 `json:"boardId,string,omitempty"`
}

type ConversationResponse struct {
	ID        int64                       `json:"id,string"`
	Topic     *string                     `json:"topic"`
	Messages  []model.ConversationMessage `json:"messages"`
	CreatedAt time.Time                   `json:"createdAt"`
	UpdatedAt time.Time                   `json:"updatedAt"`
}

type StartConversationResponse struct {
	ConversationID int64                 `json:"conversationId,string"`
	Conversation   *ConversationResponse `json:"conversation"`
	Tasks          []model.Task          `json:"tasks"`
}

type ClearMessagesResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

func ToConversationResponse(conv *model.Conversation) *ConversationResponse {
	msgs := conv.Messages
	if msgs == nil {
		msgs = []model.ConversationMessage{}
	}
	return &ConversationResponse{
		ID:        conv.ID,
		Topic:     conv.Topic,
		Messages:  msgs,
		CreatedAt: conv.CreatedAt,
		UpdatedAt: conv.UpdatedAt,
	}
}

func ToStartConversationResponse(res *service.StartResult) *StartConversationResponse {
	tasks := res.Tasks
	if tasks == nil {
		tasks = []model.Task{}
	}
	return &StartConversationResponse{
		ConversationID: res.Conversation.ID,
		Conversation:   ToConversationResponse(res.Conversation),
		Tasks:          tasks,
	}
}
