package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/byigitt/kaiban/internal/dispatch"
	"github.com/byigitt/kaiban/internal/model"
	"github.com/byigitt/kaiban/internal/operation"
	"github.com/byigitt/kaiban/internal/store"
)

// BoardService manages boards directly, outside of chat commands. Nothing it
// does is written to a transcript.
type BoardService interface {
	List(ctx context.Context) ([]model.BoardSummary, error)
	Get(ctx context.Context, id int64) (*model.Board, error)
	Create(ctx context.Context, name string, columns []model.ColumnSpec) (*model.Board, error)
	Rename(ctx context.Context, id int64, name string) (*model.Board, error)
	Delete(ctx context.Context, id int64) error
	Clear(ctx context.Context, id int64) (int64, error)
}

type boardService struct {
	stores   StoreProvider
	txRunner TxRunner
}

func NewBoardService(stores StoreProvider, txRunner TxRunner) BoardService {
	return &boardService{stores: stores, txRunner: txRunner}
}

func boardNotFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return operation.NotFound("Board not found.")
	}
	return err
}

func (s *boardService) List(ctx context.Context) ([]model.BoardSummary, error) {
	boards, err := s.stores.Boards().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing boards: %w", err)
	}
	return boards, nil
}

func (s *boardService) Get(ctx context.Context, id int64) (*model.Board, error) {
	board, err := s.stores.Boards().GetByID(ctx, id)
	if err != nil {
		return nil, boardNotFound(err)
	}
	return board, nil
}

// Create falls back to the manual-board default columns when none are given.
// The board and its columns are written in one transaction.
func (s *boardService) Create(ctx context.Context, name string, columns []model.ColumnSpec) (*model.Board, error) {
	name = strings.TrimSpace(name)
	var fields []operation.FieldError
	if name == "" {
		fields = append(fields, operation.FieldError{Field: "name", Message: "must not be empty"})
	}
	specs := make([]model.ColumnSpec, 0, len(columns))
	for i, c := range columns {
		title := strings.TrimSpace(c.Title)
		if title == "" {
			fields = append(fields, operation.FieldError{Field: fmt.Sprintf("columns[%d].title", i), Message: "must not be empty"})
			continue
		}
		specs = append(specs, model.ColumnSpec{Title: title, Helper: c.Helper})
	}
	if len(fields) > 0 {
		return nil, operation.InvalidInput(fields...)
	}

	board, err := dispatch.NewBoard(name, specs, model.ManualDefaultColumns)
	if err != nil {
		return nil, err
	}
	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if err := stores.Boards().Create(ctx, board); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return operation.Conflict("Board columns must have unique titles.")
			}
			return fmt.Errorf("creating board: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "board created", "board_id", board.ID, "columns", len(board.Columns))
	return board, nil
}

func (s *boardService) Rename(ctx context.Context, id int64, name string) (*model.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, operation.InvalidInput(operation.FieldError{Field: "name", Message: "must not be empty"})
	}

	board, err := s.stores.Boards().Rename(ctx, id, name)
	if err != nil {
		return nil, boardNotFound(err)
	}
	return board, nil
}

func (s *boardService) Delete(ctx context.Context, id int64) error {
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		return stores.Boards().Delete(ctx, id)
	})
	if err != nil {
		return boardNotFound(err)
	}
	slog.InfoContext(ctx, "board deleted", "board_id", id)
	return nil
}

// Clear deletes every task on the board and keeps its columns.
func (s *boardService) Clear(ctx context.Context, id int64) (int64, error) {
	var cleared int64
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if _, err := stores.Boards().GetByID(ctx, id); err != nil {
			return boardNotFound(err)
		}
		n, err := stores.Tasks().DeleteByBoard(ctx, id)
		if err != nil {
			return fmt.Errorf("clearing board tasks: %w", err)
		}
		cleared = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.InfoContext(ctx, "board cleared", "board_id", id, "cleared", cleared)
	return cleared, nil
}
