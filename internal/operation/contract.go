// Package operation defines the closed set of board operations a model may
// propose, their argument shapes, and the results and errors of applying them.
package operation

import (
	"encoding/json"

	"github.com/byigitt/kaiban/internal/model"
)

// ContractVersion is stamped on every transcript entry written for an
// operation so old transcripts stay readable as the argument shapes evolve.
const ContractVersion = "2025-10-15"

type Name string

const (
	CreateTasksFromText  Name = "create_tasks_from_text"
	UpdateTaskStatus     Name = "update_task_status"
	DeleteTask           Name = "delete_task"
	UpdateTaskProperties Name = "update_task_properties"
	CreateBoard          Name = "create_board"
	UpdateBoard          Name = "update_board"
	DeleteBoard          Name = "delete_board"
	CreateColumn         Name = "create_column"
	UpdateColumn         Name = "update_column"
	DeleteColumn         Name = "delete_column"
)

var names = []Name{
	CreateTasksFromText,
	UpdateTaskStatus,
	DeleteTask,
	UpdateTaskProperties,
	CreateBoard,
	UpdateBoard,
	DeleteBoard,
	CreateColumn,
	UpdateColumn,
	DeleteColumn,
}

// Names returns every operation in contract order.
func Names() []Name {
	out := make([]Name, len(names))
	copy(out, names)
	return out
}

func (n Name) Valid() bool {
	for _, known := range names {
		if n == known {
			return true
		}
	}
	return false
}

// BoardScoped reports whether n can only be applied against an active board.
func (n Name) BoardScoped() bool {
	switch n {
	case UpdateBoard, DeleteBoard, CreateColumn, UpdateColumn, DeleteColumn:
		return true
	}
	return false
}

// TranscriptType is the prefix used for the metadata type of the transcript
// pair written for n, e.g. "update-task" for "update-task-request".
func (n Name) TranscriptType() string {
	switch n {
	case CreateTasksFromText:
		return "create-tasks"
	case UpdateTaskStatus:
		return "update-task"
	case DeleteTask:
		return "delete-task"
	case UpdateTaskProperties:
		return "update-task-properties"
	case CreateBoard:
		return "create-board"
	case UpdateBoard:
		return "update-board"
	case DeleteBoard:
		return "delete-board"
	case CreateColumn:
		return "create-column"
	case UpdateColumn:
		return "update-column"
	case DeleteColumn:
		return "delete-column"
	}
	return string(n)
}

// Action is the result tag returned for n.
func (n Name) Action() Action {
	switch n {
	case CreateTasksFromText:
		return ActionCreateTasks
	case UpdateTaskStatus:
		return ActionUpdateStatus
	case DeleteTask:
		return ActionDelete
	case UpdateTaskProperties:
		return ActionUpdateProperties
	case CreateBoard:
		return ActionCreateBoard
	case UpdateBoard:
		return ActionUpdateBoard
	case DeleteBoard:
		return ActionDeleteBoard
	case CreateColumn:
		return ActionCreateColumn
	case UpdateColumn:
		return ActionUpdateColumn
	case DeleteColumn:
		return ActionDeleteColumn
	}
	return Action(n)
}

// Call is one structured call proposed by the model, not yet validated.
type Call struct {
	Name Name            `json:"name"`
	Args json.RawMessage `json:"args"`
}

// Args is implemented by the validated argument struct of every operation.
type Args interface {
	Operation() Name
}

type TaskInput struct {
	CaseNumber  string         `json:"caseNumber" jsonschema:"minLength=1" jsonschema_description:"Unique identifier for the task, e.g. TASK-101."`
	Title       string         `json:"title" jsonschema:"minLength=1" jsonschema_description:"Short title of the task."`
	Description string         `json:"description" jsonschema:"minLength=1" jsonschema_description:"Full description of the task."`
	Status      string         `json:"status" jsonschema:"minLength=1" jsonschema_description:"Initial status. Must be the title of a column on the board."`
	Priority    model.Priority `json:"priority" jsonschema:"enum=low,enum=medium,enum=high" jsonschema_description:"Priority level of the task."`
}

type CreateTasksArgs struct {
	Tasks []TaskInput `json:"tasks" jsonschema:"minItems=1" jsonschema_description:"Tasks to create, one per distinct line or bullet."`
}

type UpdateTaskStatusArgs struct {
	CaseNumber string `json:"caseNumber" jsonschema:"minLength=1" jsonschema_description:"Identifier of the task to move."`
	NewStatus  string `json:"newStatus" jsonschema:"minLength=1" jsonschema_description:"Target status, the title of a column on the board."`
}

type DeleteTaskArgs struct {
	CaseNumber string `json:"caseNumber" jsonschema:"minLength=1" jsonschema_description:"Identifier of the task to delete."`
}

type UpdateTaskPropertiesArgs struct {
	CaseNumber     string          `json:"caseNumber" jsonschema:"minLength=1" jsonschema_description:"Current identifier of the task."`
	NewCaseNumber  *string         `json:"newCaseNumber,omitempty" jsonschema:"minLength=1" jsonschema_description:"New identifier when renaming the task."`
	NewTitle       *string         `json:"newTitle,omitempty" jsonschema:"minLength=1" jsonschema_description:"New title for the task."`
	NewDescription *string         `json:"newDescription,omitempty" jsonschema:"minLength=1" jsonschema_description:"New description for the task."`
	NewPriority    *model.Priority `json:"newPriority,omitempty" jsonschema:"enum=low,enum=medium,enum=high" jsonschema_description:"New priority level for the task."`
}

type ColumnInput struct {
	Title  string  `json:"title" jsonschema:"minLength=1" jsonschema_description:"Column title. Tasks use it as their status."`
	Helper *string `json:"helper,omitempty" jsonschema_description:"Short text describing what belongs in the column."`
}

type CreateBoardArgs struct {
	Name    string        `json:"name" jsonschema:"minLength=1" jsonschema_description:"Name of the new board."`
	Columns []ColumnInput `json:"columns,omitempty" jsonschema_description:"Columns in display order. Omit to use Backlog, In Progress, Testing and Done."`
}

type UpdateBoardArgs struct {
	Name string `json:"name" jsonschema:"minLength=1" jsonschema_description:"New name for the active board."`
}

type DeleteBoardArgs struct {
	Confirmed bool `json:"confirmed" jsonschema_description:"True only when the user explicitly confirmed deleting the board."`
}

type CreateColumnArgs struct {
	Title  string  `json:"title" jsonschema:"minLength=1" jsonschema_description:"Title of the new column."`
	Helper *string `json:"helper,omitempty" jsonschema_description:"Short text describing what belongs in the column."`
}

type UpdateColumnArgs struct {
	Title     string  `json:"title" jsonschema:"minLength=1" jsonschema_description:"Current title of the column."`
	NewTitle  *string `json:"newTitle,omitempty" jsonschema:"minLength=1" jsonschema_description:"New title for the column."`
	NewHelper *string `json:"newHelper,omitempty" jsonschema_description:"New helper text. An empty string clears it."`
}

type DeleteColumnArgs struct {
	Title string `json:"title" jsonschema:"minLength=1" jsonschema_description:"Title of the column to delete."`
}

func (CreateTasksArgs) Operation() Name          { return CreateTasksFromText }
func (UpdateTaskStatusArgs) Operation() Name     { return UpdateTaskStatus }
func (DeleteTaskArgs) Operation() Name           { return DeleteTask }
func (UpdateTaskPropertiesArgs) Operation() Name { return UpdateTaskProperties }
func (CreateBoardArgs) Operation() Name          { return CreateBoard }
func (UpdateBoardArgs) Operation() Name          { return UpdateBoard }
func (DeleteBoardArgs) Operation() Name          { return DeleteBoard }
func (CreateColumnArgs) Operation() Name         { return CreateColumn }
func (UpdateColumnArgs) Operation() Name         { return UpdateColumn }
func (DeleteColumnArgs) Operation() Name         { return DeleteColumn }
