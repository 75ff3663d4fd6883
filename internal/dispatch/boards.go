package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/byigitt/kaiban/common/id"
	"github.com/byigitt/kaiban/internal/model"
	"github.com/byigitt/kaiban/internal/operation"
	"github.com/byigitt/kaiban/internal/store"
)

func getBoard(ctx context.Context, stores StoreProvider, boardID int64) (*model.Board, error) {
	board, err := stores.Boards().GetByID(ctx, boardID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, operation.NotFound("Board not found.")
		}
		return nil, fmt.Errorf("loading board: %w", err)
	}
	return board, nil
}

// NewBoard builds a board with fresh ids. Columns are placed in the given
// order; an empty list yields the default columns.
func NewBoard(name string, specs []model.ColumnSpec, defaults func() []model.ColumnSpec) (*model.Board, error) {
	if len(specs) == 0 {
		specs = defaults()
	}

	board := &model.Board{
		ID:      id.New(),
		Name:    name,
		Title:   name,
		Columns: make([]model.Column, 0, len(specs)),
	}
	seen := make(map[string]bool, len(specs))
	for i, spec := range specs {
		if seen[spec.Title] {
			return nil, operation.Conflict("Column %q is listed more than once.", spec.Title)
		}
		seen[spec.Title] = true
		board.Columns = append(board.Columns, model.Column{
			ID:      id.New(),
			BoardID: board.ID,
			Title:   spec.Title,
			Helper:  spec.Helper,
			Order:   i,
		})
	}
	return board, nil
}

func (d *Dispatcher) createBoard(ctx context.Context, stores StoreProvider, args operation.CreateBoardArgs) (outcome, error) {
	specs := make([]model.ColumnSpec, len(args.Columns))
	for i, c := range args.Columns {
		specs[i] = model.ColumnSpec{Title: c.Title, Helper: c.Helper}
	}

	board, err := NewBoard(args.Name, specs, model.DefaultColumns)
	if err != nil {
		return outcome{}, err
	}
	if err := stores.Boards().Create(ctx, board); err != nil {
		return outcome{}, fmt.Errorf("creating board: %w", err)
	}

	return outcome{
		result: &operation.Result{
			Action: operation.ActionCreateBoard,
			Board:  board,
		},
		summary: fmt.Sprintf("Created board %q with %d column(s).", board.Name, len(board.Columns)),
	}, nil
}

func (d *Dispatcher) updateBoard(ctx context.Context, stores StoreProvider, boardID int64, args operation.UpdateBoardArgs) (outcome, error) {
	if _, err := getBoard(ctx, stores, boardID); err != nil {
		return outcome{}, err
	}

	board, err := stores.Boards().Rename(ctx, boardID, args.Name)
	if err != nil {
		return outcome{}, fmt.Errorf("renaming board: %w", err)
	}

	return outcome{
		result: &operation.Result{
			Action: operation.ActionUpdateBoard,
			Board:  board,
		},
		summary: fmt.Sprintf("Board renamed to %q.", args.Name),
	}, nil
}

func (d *Dispatcher) deleteBoard(ctx context.Context, stores StoreProvider, boardID int64) (outcome, error) {
	board, err := getBoard(ctx, stores, boardID)
	if err != nil {
		return outcome{}, err
	}

	if err := stores.Boards().Delete(ctx, boardID); err != nil {
		return outcome{}, fmt.Errorf("deleting board: %w", err)
	}

	return outcome{
		result: &operation.Result{
			Action:  operation.ActionDeleteBoard,
			BoardID: &boardID,
		},
		summary: fmt.Sprintf("Board %q has been deleted.", board.Name),
	}, nil
}
