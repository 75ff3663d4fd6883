package store

import (
	"context"
	"fmt"

	"github.com/byigitt/kaiban/core/db/sqlc"
	"github.com/byigitt/kaiban/internal/model"
)

type taskStore struct {
	queries *sqlc.Queries
}

func newTaskStore(queries *sqlc.Queries) TaskStore {
	return &taskStore{queries: queries}
}

func (s *taskStore) GetByCaseNumber(ctx context.Context, caseNumber string) (*model.Task, error) {
	row, err := s.queries.GetTaskByCaseNumber(ctx, caseNumber)
	if err != nil {
		return nil, mapErr(err)
	}
	return toTaskModel(row)
}

func (s *taskStore) CreateMany(ctx context.Context, tasks []model.Task) ([]model.Task, error) {
	created := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		meta, err := encodeMetadata(t.Metadata)
		if err != nil {
			return nil, fmt.Errorf("encoding task metadata: %w", err)
		}
		row, err := s.queries.CreateTask(ctx, sqlc.CreateTaskParams{
			ID:             t.ID,
			CaseNumber:     t.CaseNumber,
			Title:          t.Title,
			Description:    t.Description,
			Status:         t.Status,
			Priority:       string(t.Priority),
			BoardID:        t.BoardID,
			ConversationID: t.ConversationID,
			Metadata:       meta,
		})
		if err != nil {
			return nil, mapErr(err)
		}
		task, err := toTaskModel(row)
		if err != nil {
			return nil, err
		}
		created = append(created, *task)
	}
	return created, nil
}

func (s *taskStore) Update(ctx context.Context, id int64, patch model.TaskPatch) (*model.Task, error) {
	params := sqlc.UpdateTaskParams{
		ID:          id,
		CaseNumber:  patch.CaseNumber,
		Title:       patch.Title,
		Description: patch.Description,
		Status:      patch.Status,
	}
	if patch.Priority != nil {
		p := string(*patch.Priority)
		params.Priority = &p
	}
	if patch.Metadata != nil {
		meta, err := encodeMetadata(patch.Metadata)
		if err != nil {
			return nil, fmt.Errorf("encoding task metadata: %w", err)
		}
		params.Metadata = meta
	}

	row, err := s.queries.UpdateTask(ctx, params)
	if err != nil {
		return nil, mapErr(err)
	}
	return toTaskModel(row)
}

func (s *taskStore) Delete(ctx context.Context, id int64) error {
	n, err := s.queries.DeleteTask(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *taskStore) List(ctx context.Context, boardID *int64) ([]model.Task, error) {
	var (
		rows []sqlc.Task
		err  error
	)
	if boardID != nil {
		rows, err = s.queries.ListTasksByBoard(ctx, boardID)
	} else {
		rows, err = s.queries.ListTasks(ctx)
	}
	if err != nil {
		return nil, err
	}
	return toTaskModels(rows)
}

func (s *taskStore) ListCaseNumbers(ctx context.Context, prefix string) ([]string, error) {
	return s.queries.ListTaskCaseNumbers(ctx, prefix)
}

func (s *taskStore) ListCaseNumbersByStatus(ctx context.Context, boardID int64, status string) ([]string, error) {
	return s.queries.ListTaskCaseNumbersByBoardAndStatus(ctx, sqlc.ListTaskCaseNumbersByBoardAndStatusParams{
		BoardID: &boardID,
		Status:  status,
	})
}

func (s *taskStore) DeleteByBoard(ctx context.Context, boardID int64) (int64, error) {
	return s.queries.DeleteTasksByBoard(ctx, &boardID)
}

func toTaskModel(row sqlc.Task) (*model.Task, error) {
	meta, err := decodeMetadata(row.Metadata)
	if err != nil {
		return nil, fmt.Errorf("decoding metadata of %s: %w", row.CaseNumber, err)
	}
	return &model.Task{
		ID:             row.ID,
		CaseNumber:     row.CaseNumber,
		Title:          row.Title,
		Description:    row.Description,
		Status:         row.Status,
		Priority:       model.Priority(row.Priority),
		BoardID:        row.BoardID,
		ConversationID: row.ConversationID,
		Metadata:       meta,
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}, nil
}

func toTaskModels(rows []sqlc.Task) ([]model.Task, error) {
	result := make([]model.Task, len(rows))
	for i, row := range rows {
		task, err := toTaskModel(row)
		if err != nil {
			return nil, err
		}
		result[i] = *task
	}
	return result, nil
}
