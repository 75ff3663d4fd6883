package model

import (
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"
)

type Role string

const (
	RoleUser      Role = "USER"
	RoleAssistant Role = "ASSISTANT"
)

// MaxTopicLength bounds the topic derived from a conversation's first command.
const MaxTopicLength = 120

type Conversation struct {
	ID        int64                 `json:"id,string"`
	Topic     *string               `json:"topic"`
	Messages  []ConversationMessage `json:"messages,omitempty"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// ConversationMessage is one transcript entry. Messages are always written in
// USER/ASSISTANT pairs, one pair per applied operation.
type ConversationMessage struct {
	ID             int64           `json:"id,string"`
	ConversationID int64           `json:"conversationId,string"`
	Role           Role            `json:"role"`
	Content        string          `json:"content"`
	Metadata       MessageMetadata `json:"metadata"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// MessageMetadata records which operation produced a message, the contract
// version it was produced under and, on responses, the applied arguments.
type MessageMetadata struct {
	Type          string          `json:"type"`
	PromptVersion string          `json:"promptVersion"`
	Result        json.RawMessage `json:"result,omitempty"`
}

// DeriveTopic returns the first non-empty line of text, cut to MaxTopicLength
// runes. It returns nil when text is blank.
func DeriveTopic(text string) *string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	line, _, _ := strings.Cut(trimmed, "\n")
	line = strings.TrimSpace(line)
	if utf8.RuneCountInString(line) > MaxTopicLength {
		line = string([]rune(line)[:MaxTopicLength])
	}
	return &line
}
