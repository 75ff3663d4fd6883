package model

import "time"

// Board owns an ordered set of columns and, optionally, tasks. Title mirrors
// Name and is kept for display.
type Board struct {
	ID        int64     `json:"id,string"`
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Columns   []Column  `json:"columns"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Column belongs to one board. Within a board it is addressed by Title.
type Column struct {
	ID      int64   `json:"id,string"`
	BoardID int64   `json:"boardId,string"`
	Title   string  `json:"title"`
	Helper  *string `json:"helper"`
	Order   int     `json:"order"`
}

// ColumnSpec describes a column to be created.
type ColumnSpec struct {
	Title  string
	Helper *string
}

// BoardSummary is a board as listed, with the number of tasks on it.
type BoardSummary struct {
	Board
	TaskCount int64 `json:"taskCount"`
}

// ColumnTitles returns the titles of b's columns in display order.
func (b Board) ColumnTitles() []string {
	titles := make([]string, len(b.Columns))
	for i, c := range b.Columns {
		titles[i] = c.Title
	}
	return titles
}

// HasColumn reports whether b has a column with the given title.
func (b Board) HasColumn(title string) bool {
	for _, c := range b.Columns {
		if c.Title == title {
			return true
		}
	}
	return false
}

// NextColumnOrder is the order a column appended to cols receives.
func NextColumnOrder(cols []Column) int {
	if len(cols) == 0 {
		return 0
	}
	max := cols[0].Order
	for _, c := range cols[1:] {
		if c.Order > max {
			max = c.Order
		}
	}
	return max + 1
}

func strPtr(s string) *string { return &s }

// DefaultColumns are used when a board is created without explicit columns.
func DefaultColumns() []ColumnSpec {
	return []ColumnSpec{
		{Title: "Backlog", Helper: strPtr("Tasks to be done")},
		{Title: "In Progress", Helper: strPtr("Tasks being worked on")},
		{Title: "Testing", Helper: strPtr("Tasks being tested")},
		{Title: "Done", Helper: strPtr("Completed tasks")},
	}
}

// ManualDefaultColumns are used by boards created through the board API
// rather than by a chat command.
func ManualDefaultColumns() []ColumnSpec {
	return []ColumnSpec{
		{Title: "Backlog", Helper: strPtr("Ideas and items that are not in motion yet.")},
		{Title: "In Progress", Helper: strPtr("Work currently being tackled.")},
		{Title: "Testing", Helper: strPtr("Verifications, QA, or user review in flight.")},
		{Title: "Done", Helper: strPtr("Completed work ready to close out.")},
	}
}
