package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/byigitt/kaiban/common/id"
	"github.com/byigitt/kaiban/internal/model"
	"github.com/byigitt/kaiban/internal/operation"
	"github.com/byigitt/kaiban/internal/store"
)

func getColumn(ctx context.Context, stores StoreProvider, boardID int64, title string) (*model.Column, error) {
	col, err := stores.Columns().GetByBoardAndTitle(ctx, boardID, title)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, operation.NotFound("Column %q not found.", title)
		}
		return nil, fmt.Errorf("loading column %q: %w", title, err)
	}
	return col, nil
}

func ensureColumnTitleFree(ctx context.Context, stores StoreProvider, boardID int64, title string) error {
	_, err := stores.Columns().GetByBoardAndTitle(ctx, boardID, title)
	switch {
	case err == nil:
		return operation.Conflict("Column %q already exists on this board.", title)
	case errors.Is(err, store.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("checking column %q: %w", title, err)
	}
}

func (d *Dispatcher) createColumn(ctx context.Context, stores StoreProvider, boardID int64, args operation.CreateColumnArgs) (outcome, error) {
	board, err := getBoard(ctx, stores, boardID)
	if err != nil {
		return outcome{}, err
	}
	if board.HasColumn(args.Title) {
		return outcome{}, operation.Conflict("Column %q already exists on this board.", args.Title)
	}

	col := &model.Column{
		ID:      id.New(),
		BoardID: boardID,
		Title:   args.Title,
		Helper:  args.Helper,
		Order:   model.NextColumnOrder(board.Columns),
	}
	if err := stores.Columns().Create(ctx, col); err != nil {
		return outcome{}, fmt.Errorf("creating column: %w", err)
	}

	return outcome{
		result: &operation.Result{
			Action: operation.ActionCreateColumn,
			Column: col,
		},
		summary: fmt.Sprintf("Column %q added to board.", args.Title),
	}, nil
}

func (d *Dispatcher) updateColumn(ctx context.Context, stores StoreProvider, boardID int64, args operation.UpdateColumnArgs) (outcome, error) {
	col, err := getColumn(ctx, stores, boardID, args.Title)
	if err != nil {
		return outcome{}, err
	}
	if args.NewTitle != nil && *args.NewTitle != args.Title {
		if err := ensureColumnTitleFree(ctx, stores, boardID, *args.NewTitle); err != nil {
			return outcome{}, err
		}
	}

	var helper *string
	if args.NewHelper != nil && *args.NewHelper != "" {
		helper = args.NewHelper
	}
	updated, err := stores.Columns().Update(ctx, col.ID, args.NewTitle, helper, args.NewHelper != nil)
	if err != nil {
		return outcome{}, fmt.Errorf("updating column %q: %w", args.Title, err)
	}

	var changes []string
	if args.NewTitle != nil {
		changes = append(changes, fmt.Sprintf("renamed to %q", *args.NewTitle))
	}
	if args.NewHelper != nil {
		changes = append(changes, "helper text updated")
	}

	return outcome{
		result: &operation.Result{
			Action: operation.ActionUpdateColumn,
			Column: updated,
		},
		summary: fmt.Sprintf("Column %q %s.", args.Title, strings.Join(changes, " and ")),
	}, nil
}

// deleteColumn removes the column only. Tasks whose status is the deleted
// title stay in storage and are reported back so the client can hide them.
func (d *Dispatcher) deleteColumn(ctx context.Context, stores StoreProvider, boardID int64, args operation.DeleteColumnArgs) (outcome, error) {
	col, err := getColumn(ctx, stores, boardID, args.Title)
	if err != nil {
		return outcome{}, err
	}

	affected, err := stores.Tasks().ListCaseNumbersByStatus(ctx, boardID, col.Title)
	if err != nil {
		return outcome{}, fmt.Errorf("listing tasks in column %q: %w", args.Title, err)
	}
	if err := stores.Columns().Delete(ctx, col.ID); err != nil {
		return outcome{}, fmt.Errorf("deleting column %q: %w", args.Title, err)
	}

	return outcome{
		result: &operation.Result{
			Action:              operation.ActionDeleteColumn,
			BoardID:             &boardID,
			ColumnTitle:         args.Title,
			AffectedCaseNumbers: affected,
		},
		summary: fmt.Sprintf("Column %q has been deleted.", args.Title),
	}, nil
}
