package operation

import "github.com/byigitt/kaiban/internal/model"

// Action tags the result of an applied operation for the UI.
type Action string

const (
	ActionCreateTasks      Action = "create_tasks"
	ActionUpdateStatus     Action = "update_status"
	ActionDelete           Action = "delete"
	ActionUpdateProperties Action = "update_properties"
	ActionCreateBoard      Action = "create_board"
	ActionUpdateBoard      Action = "update_board"
	ActionDeleteBoard      Action = "delete_board"
	ActionCreateColumn     Action = "create_column"
	ActionUpdateColumn     Action = "update_column"
	ActionDeleteColumn     Action = "delete_column"
)

// Result is what the client applies to its local view after a command.
// Only the fields relevant to Action are set.
type Result struct {
	Action Action `json:"action"`

	Tasks      []model.Task `json:"tasks,omitempty"`
	CaseNumber string       `json:"caseNumber,omitempty"`
	NewStatus  string       `json:"newStatus,omitempty"`

	NewCaseNumber  *string         `json:"newCaseNumber,omitempty"`
	NewTitle       *string         `json:"newTitle,omitempty"`
	NewDescription *string         `json:"newDescription,omitempty"`
	NewPriority    *model.Priority `json:"newPriority,omitempty"`

	Board   *model.Board  `json:"board,omitempty"`
	BoardID *int64        `json:"boardId,string,omitempty"`
	Column  *model.Column `json:"column,omitempty"`

	ColumnTitle string `json:"columnTitle,omitempty"`
	// AffectedCaseNumbers lists tasks whose status named a deleted column.
	// They are kept; the client hides them.
	AffectedCaseNumbers []string `json:"affectedCaseNumbers,omitempty"`
}
