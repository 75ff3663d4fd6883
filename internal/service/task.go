package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/byigitt/kaiban/internal/model"
	"github.com/byigitt/kaiban/internal/operation"
	"github.com/byigitt/kaiban/internal/store"
)

// TaskEdit is a manual edit from the board UI. Nil fields are left alone.
type TaskEdit struct {
	NewCaseNumber *string
	Title         *string
	Description   *string
	Priority      *model.Priority
}

type TaskService interface {
	List(ctx context.Context, boardID *int64) ([]model.Task, error)
	Edit(ctx context.Context, caseNumber string, edit TaskEdit) (*model.Task, error)
}

type taskService struct {
	stores   StoreProvider
	txRunner TxRunner
	now      func() time.Time
}

func NewTaskService(stores StoreProvider, txRunner TxRunner) TaskService {
	return &taskService{
		stores:   stores,
		txRunner: txRunner,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *taskService) List(ctx context.Context, boardID *int64) ([]model.Task, error) {
	tasks, err := s.stores.Tasks().List(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return tasks, nil
}

func (s *taskService) Edit(ctx context.Context, caseNumber string, edit TaskEdit) (*model.Task, error) {
	edit, err := normalizeEdit(edit)
	if err != nil {
		return nil, err
	}

	var updated *model.Task
	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		task, err := stores.Tasks().GetByCaseNumber(ctx, caseNumber)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return operation.NotFound("Task %s not found in the database.", caseNumber)
			}
			return fmt.Errorf("loading task %s: %w", caseNumber, err)
		}

		if edit.NewCaseNumber != nil && *edit.NewCaseNumber != caseNumber {
			_, err := stores.Tasks().GetByCaseNumber(ctx, *edit.NewCaseNumber)
			switch {
			case err == nil:
				return operation.Conflict("Task %s already exists.", *edit.NewCaseNumber)
			case !errors.Is(err, store.ErrNotFound):
				return fmt.Errorf("checking task %s: %w", *edit.NewCaseNumber, err)
			}
		}

		updated, err = stores.Tasks().Update(ctx, task.ID, model.TaskPatch{
			CaseNumber:  edit.NewCaseNumber,
			Title:       edit.Title,
			Description: edit.Description,
			Priority:    edit.Priority,
			Metadata: task.Metadata.Merge(model.TaskMetadata{
				"updatedVia": model.ViaManualEdit,
				"updatedAt":  s.now().Format(time.RFC3339Nano),
			}),
		})
		if errors.Is(err, store.ErrConflict) && edit.NewCaseNumber != nil {
			return operation.Conflict("Task %s already exists.", *edit.NewCaseNumber)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "task edited manually", "case_number", caseNumber, "new_case_number", updated.CaseNumber)
	return updated, nil
}

func normalizeEdit(edit TaskEdit) (TaskEdit, error) {
	var fields []operation.FieldError
	trim := func(field string, v *string) *string {
		if v == nil {
			return nil
		}
		t := strings.TrimSpace(*v)
		if t == "" {
			fields = append(fields, operation.FieldError{Field: field, Message: "must not be empty"})
		}
		return &t
	}

	edit.NewCaseNumber = trim("newCaseNumber", edit.NewCaseNumber)
	edit.Title = trim("title", edit.Title)
	edit.Description = trim("description", edit.Description)
	if edit.Priority != nil && !edit.Priority.Valid() {
		fields = append(fields, operation.FieldError{Field: "priority", Message: "must be one of low, medium, high"})
	}
	if edit.NewCaseNumber == nil && edit.Title == nil && edit.Description == nil && edit.Priority == nil {
		fields = append(fields, operation.FieldError{Field: "newCaseNumber", Message: "at least one of newCaseNumber, title, description, priority is required"})
	}

	if len(fields) > 0 {
		return edit, operation.InvalidInput(fields...)
	}
	return edit, nil
}
