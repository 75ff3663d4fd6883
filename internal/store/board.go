package store

import (
	"context"

	"github.com/byigitt/kaiban/core/db/sqlc"
	"github.com/byigitt/kaiban/internal/model"
)

type boardStore struct {
	queries *sqlc.Queries
}

func newBoardStore(queries *sqlc.Queries) BoardStore {
	return &boardStore{queries: queries}
}

func (s *boardStore) GetByID(ctx context.Context, id int64) (*model.Board, error) {
	row, err := s.queries.GetBoard(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	cols, err := s.queries.ListBoardColumns(ctx, id)
	if err != nil {
		return nil, err
	}
	board := toBoardModel(row)
	board.Columns = toColumnModels(cols)
	return board, nil
}

// Create inserts the board and its columns. Column ids and orders must be
// set by the caller.
func (s *boardStore) Create(ctx context.Context, board *model.Board) error {
	row, err := s.queries.CreateBoard(ctx, sqlc.CreateBoardParams{
		ID:    board.ID,
		Name:  board.Name,
		Title: board.Title,
	})
	if err != nil {
		return mapErr(err)
	}

	cols := make([]model.Column, 0, len(board.Columns))
	for _, c := range board.Columns {
		colRow, err := s.queries.CreateBoardColumn(ctx, sqlc.CreateBoardColumnParams{
			ID:       c.ID,
			BoardID:  row.ID,
			Title:    c.Title,
			Helper:   c.Helper,
			Position: int32(c.Order),
		})
		if err != nil {
			return mapErr(err)
		}
		cols = append(cols, *toColumnModel(colRow))
	}

	*board = *toBoardModel(row)
	board.Columns = cols
	return nil
}

func (s *boardStore) Rename(ctx context.Context, id int64, name string) (*model.Board, error) {
	row, err := s.queries.RenameBoard(ctx, sqlc.RenameBoardParams{ID: id, Name: name})
	if err != nil {
		return nil, mapErr(err)
	}
	cols, err := s.queries.ListBoardColumns(ctx, id)
	if err != nil {
		return nil, err
	}
	board := toBoardModel(row)
	board.Columns = toColumnModels(cols)
	return board, nil
}

func (s *boardStore) Delete(ctx context.Context, id int64) error {
	n, err := s.queries.DeleteBoard(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *boardStore) List(ctx context.Context) ([]model.BoardSummary, error) {
	rows, err := s.queries.ListBoardsWithTaskCount(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	cols, err := s.queries.ListColumnsForBoards(ctx, ids)
	if err != nil {
		return nil, err
	}
	byBoard := make(map[int64][]model.Column, len(rows))
	for _, c := range cols {
		byBoard[c.BoardID] = append(byBoard[c.BoardID], *toColumnModel(c))
	}

	result := make([]model.BoardSummary, len(rows))
	for i, row := range rows {
		result[i] = model.BoardSummary{
			Board: model.Board{
				ID:        row.ID,
				Name:      row.Name,
				Title:     row.Title,
				Columns:   byBoard[row.ID],
				CreatedAt: row.CreatedAt.Time,
				UpdatedAt: row.UpdatedAt.Time,
			},
			TaskCount: row.TaskCount,
		}
		if result[i].Columns == nil {
			result[i].Columns = []model.Column{}
		}
	}
	return result, nil
}

func toBoardModel(row sqlc.Board) *model.Board {
	return &model.Board{
		ID:        row.ID,
		Name:      row.Name,
		Title:     row.Title,
		Columns:   []model.Column{},
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
