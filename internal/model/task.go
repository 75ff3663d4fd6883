package model

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the closed set of priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a single card on a board. CaseNumber (TASK-<n>) is its natural key;
// every mutation addresses the task by it.
type Task struct {
	ID             int64        `json:"id,string"`
	CaseNumber     string       `json:"caseNumber"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Status         string       `json:"status"`
	Priority       Priority     `json:"priority"`
	BoardID        *int64       `json:"boardId,string,omitempty"`
	ConversationID *int64       `json:"conversationId,string,omitempty"`
	Metadata       TaskMetadata `json:"metadata"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// TaskMetadata is the provenance bag stored alongside a task. Writers merge
// into it, they never replace it.
type TaskMetadata map[string]any

// Merge returns a copy of m with every key of patch applied on top.
func (m TaskMetadata) Merge(patch TaskMetadata) TaskMetadata {
	out := make(TaskMetadata, len(m)+len(patch))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range patch {
		out[k] = v
	}
	return out
}

// Provenance markers written into TaskMetadata.
const (
	ViaCreateTasks          = "create-tasks"
	ViaUpdateTask           = "update-task"
	ViaUpdateTaskProperties = "update-task-properties"
	ViaManualEdit           = "manual-edit"
)

// TaskPatch is a sparse update. Nil fields are left untouched.
type TaskPatch struct {
	CaseNumber  *string
	Title       *string
	Description *string
	Status      *string
	Priority    *Priority
	Metadata    TaskMetadata
}
