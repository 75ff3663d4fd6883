package memory

import (
	"context"
	"sort"

	"github.com/byigitt/kaiban/internal/model"
	"github.com/byigitt/kaiban/internal/store"
)

type boardStore struct{ s *Stores }

func boardColumns(st *state, boardID int64) []model.Column {
	cols := []model.Column{}
	for _, c := range st.columns {
		if c.BoardID == boardID {
			cols = append(cols, c)
		}
	}
	sort.Slice(cols, func(i, j int) bool {
		if cols[i].Order != cols[j].Order {
			return cols[i].Order < cols[j].Order
		}
		return cols[i].ID < cols[j].ID
	})
	return cols
}

func withColumns(st *state, b model.Board) *model.Board {
	b.Columns = boardColumns(st, b.ID)
	return &b
}

func (b *boardStore) GetByID(ctx context.Context, id int64) (*model.Board, error) {
	var out *model.Board
	err := b.s.do(ctx, func(st *state) error {
		board, ok := st.boards[id]
		if !ok {
			return store.ErrNotFound
		}
		out = withColumns(st, board)
		return nil
	})
	return out, err
}

// Create leaves board untouched unless the insert succeeds.
func (b *boardStore) Create(ctx context.Context, board *model.Board) error {
	return b.s.do(ctx, func(st *state) error {
		seen := make(map[string]bool, len(board.Columns))
		for _, c := range board.Columns {
			if seen[c.Title] {
				return store.ErrConflict
			}
			seen[c.Title] = true
		}

		row := *board
		row.Columns = nil
		row.ID = b.s.assignID(board.ID)
		if _, exists := st.boards[row.ID]; exists {
			return store.ErrConflict
		}
		now := b.s.now()
		row.CreatedAt, row.UpdatedAt = now, now

		st.boards[row.ID] = row
		for _, c := range board.Columns {
			c.ID = b.s.assignID(c.ID)
			c.BoardID = row.ID
			st.columns[c.ID] = c
		}
		*board = *withColumns(st, row)
		return nil
	})
}

func (b *boardStore) Rename(ctx context.Context, id int64, name string) (*model.Board, error) {
	var out *model.Board
	err := b.s.do(ctx, func(st *state) error {
		board, ok := st.boards[id]
		if !ok {
			return store.ErrNotFound
		}
		board.Name, board.Title = name, name
		board.UpdatedAt = b.s.now()
		st.boards[id] = board
		out = withColumns(st, board)
		return nil
	})
	return out, err
}

func (b *boardStore) Delete(ctx context.Context, id int64) error {
	return b.s.do(ctx, func(st *state) error {
		if _, ok := st.boards[id]; !ok {
			return store.ErrNotFound
		}
		delete(st.boards, id)
		for colID, c := range st.columns {
			if c.BoardID == id {
				delete(st.columns, colID)
			}
		}
		deleteBoardTasks(st, id)
		return nil
	})
}

func (b *boardStore) List(ctx context.Context) ([]model.BoardSummary, error) {
	var out []model.BoardSummary
	err := b.s.do(ctx, func(st *state) error {
		counts := map[int64]int64{}
		for _, t := range st.tasks {
			if t.BoardID != nil {
				counts[*t.BoardID]++
			}
		}
		out = make([]model.BoardSummary, 0, len(st.boards))
		for _, board := range st.boards {
			out = append(out, model.BoardSummary{
				Board:     *withColumns(st, board),
				TaskCount: counts[board.ID],
			})
		}
		sort.Slice(out, func(i, j int) bool {
			if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
				return out[i].CreatedAt.Before(out[j].CreatedAt)
			}
			return out[i].ID < out[j].ID
		})
		return nil
	})
	return out, err
}

type columnStore struct{ s *Stores }

func findColumn(st *state, boardID int64, title string) (model.Column, bool) {
	for _, c := range st.columns {
		if c.BoardID == boardID && c.Title == title {
			return c, true
		}
	}
	return model.Column{}, false
}

func (c *columnStore) GetByBoardAndTitle(ctx context.Context, boardID int64, title string) (*model.Column, error) {
	var out *model.Column
	err := c.s.do(ctx, func(st *state) error {
		col, ok := findColumn(st, boardID, title)
		if !ok {
			return store.ErrNotFound
		}
		out = &col
		return nil
	})
	return out, err
}

func (c *columnStore) Create(ctx context.Context, col *model.Column) error {
	return c.s.do(ctx, func(st *state) error {
		if _, ok := st.boards[col.BoardID]; !ok {
			return store.ErrNotFound
		}
		if _, exists := findColumn(st, col.BoardID, col.Title); exists {
			return store.ErrConflict
		}
		col.ID = c.s.assignID(col.ID)
		st.columns[col.ID] = *col
		return nil
	})
}

func (c *columnStore) Update(ctx context.Context, id int64, title *string, helper *string, setHelper bool) (*model.Column, error) {
	var out *model.Column
	err := c.s.do(ctx, func(st *state) error {
		col, ok := st.columns[id]
		if !ok {
			return store.ErrNotFound
		}
		if title != nil && *title != col.Title {
			if _, exists := findColumn(st, col.BoardID, *title); exists {
				return store.ErrConflict
			}
			col.Title = *title
		}
		if setHelper {
			col.Helper = helper
		}
		st.columns[id] = col
		out = &col
		return nil
	})
	return out, err
}

func (c *columnStore) Delete(ctx context.Context, id int64) error {
	return c.s.do(ctx, func(st *state) error {
		if _, ok := st.columns[id]; !ok {
			return store.ErrNotFound
		}
		delete(st.columns, id)
		return nil
	})
}
