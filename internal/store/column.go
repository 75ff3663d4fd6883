package store

import (
	"context"

	"github.com/byigitt/kaiban/core/db/sqlc"
	"github.com/byigitt/kaiban/internal/model"
)

type columnStore struct {
	queries *sqlc.Queries
}

func newColumnStore(queries *sqlc.Queries) ColumnStore {
	return &columnStore{queries: queries}
}

func (s *columnStore) GetByBoardAndTitle(ctx context.Context, boardID int64, title string) (*model.Column, error) {
	row, err := s.queries.GetBoardColumnByTitle(ctx, sqlc.GetBoardColumnByTitleParams{
		BoardID: boardID,
		Title:   title,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toColumnModel(row), nil
}

func (s *columnStore) Create(ctx context.Context, col *model.Column) error {
	row, err := s.queries.CreateBoardColumn(ctx, sqlc.CreateBoardColumnParams{
		ID:       col.ID,
		BoardID:  col.BoardID,
		Title:    col.Title,
		Helper:   col.Helper,
		Position: int32(col.Order),
	})
	if err != nil {
		return mapErr(err)
	}
	*col = *toColumnModel(row)
	return nil
}

func (s *columnStore) Update(ctx context.Context, id int64, title *string, helper *string, setHelper bool) (*model.Column, error) {
	row, err := s.queries.UpdateBoardColumn(ctx, sqlc.UpdateBoardColumnParams{
		ID:        id,
		Title:     title,
		SetHelper: setHelper,
		Helper:    helper,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toColumnModel(row), nil
}

func (s *columnStore) Delete(ctx context.Context, id int64) error {
	n, err := s.queries.DeleteBoardColumn(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func toColumnModel(row sqlc.BoardColumn) *model.Column {
	return &model.Column{
		ID:      row.ID,
		BoardID: row.BoardID,
		Title:   row.Title,
		Helper:  row.Helper,
		Order:   int(row.Position),
	}
}

func toColumnModels(rows []sqlc.BoardColumn) []model.Column {
	result := make([]model.Column, len(rows))
	for i, row := range rows {
		result[i] = *toColumnModel(row)
	}
	return result
}
