package store

import (
	"context"
	"errors"

	"github.com/byigitt/kaiban/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write would violate a uniqueness constraint
var ErrConflict = errors.New("conflict")

// ConversationStore defines the contract for conversation data access
type ConversationStore interface {
	GetByID(ctx context.Context, id int64) (*model.Conversation, error)
	Create(ctx context.Context, conv *model.Conversation) error
	Touch(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.Conversation, error)
}

// MessageStore defines the contract for transcript data access
type MessageStore interface {
	CreateMany(ctx context.Context, msgs []model.ConversationMessage) error
	ListByConversation(ctx context.Context, conversationID int64) ([]model.ConversationMessage, error)
	DeleteByConversation(ctx context.Context, conversationID int64) (int64, error)
}

// TaskStore defines the contract for task data access.
// Tasks are addressed by case number everywhere outside this layer.
type TaskStore interface {
	GetByCaseNumber(ctx context.Context, caseNumber string) (*model.Task, error)
	CreateMany(ctx context.Context, tasks []model.Task) ([]model.Task, error)
	Update(ctx context.Context, id int64, patch model.TaskPatch) (*model.Task, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, boardID *int64) ([]model.Task, error)
	ListCaseNumbers(ctx context.Context, prefix string) ([]string, error)
	ListCaseNumbersByStatus(ctx context.Context, boardID int64, status string) ([]string, error)
	DeleteByBoard(ctx context.Context, boardID int64) (int64, error)
}

// BoardStore defines the contract for board data access.
// Boards are always returned with their columns in display order.
type BoardStore interface {
	GetByID(ctx context.Context, id int64) (*model.Board, error)
	Create(ctx context.Context, board *model.Board) error
	Rename(ctx context.Context, id int64, name string) (*model.Board, error)
	Delete(ctx context.Context, id int64) error // cascades to columns and tasks
	List(ctx context.Context) ([]model.BoardSummary, error)
}

// ColumnStore defines the contract for board column data access
type ColumnStore interface {
	GetByBoardAndTitle(ctx context.Context, boardID int64, title string) (*model.Column, error)
	Create(ctx context.Context, col *model.Column) error
	Update(ctx context.Context, id int64, title *string, helper *string, setHelper bool) (*model.Column, error)
	Delete(ctx context.Context, id int64) error
}
