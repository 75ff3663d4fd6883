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

func getTask(ctx context.Context, stores StoreProvider, caseNumber string) (*model.Task, error) {
	task, err := stores.Tasks().GetByCaseNumber(ctx, caseNumber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, operation.NotFound("Task %s not found in the database.", caseNumber)
		}
		return nil, fmt.Errorf("loading task %s: %w", caseNumber, err)
	}
	return task, nil
}

// ensureCaseNumberFree fails with a conflict when caseNumber is taken.
func ensureCaseNumberFree(ctx context.Context, stores StoreProvider, caseNumber string) error {
	_, err := stores.Tasks().GetByCaseNumber(ctx, caseNumber)
	switch {
	case err == nil:
		return operation.Conflict("Task %s already exists.", caseNumber)
	case errors.Is(err, store.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("checking task %s: %w", caseNumber, err)
	}
}

// ensureStatusOnBoard checks that status names a column of the board. Tasks
// that are not on a board accept any status.
func ensureStatusOnBoard(ctx context.Context, stores StoreProvider, boardID *int64, status string) error {
	if boardID == nil {
		return nil
	}
	board, err := stores.Boards().GetByID(ctx, *boardID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return operation.NotFound("Board not found.")
		}
		return fmt.Errorf("loading board: %w", err)
	}
	if !board.HasColumn(status) {
		return operation.NotFound("Column %q not found on board.", status)
	}
	return nil
}

func (d *Dispatcher) createTasks(ctx context.Context, stores StoreProvider, req Request, args operation.CreateTasksArgs) (outcome, error) {
	seen := make(map[string]bool, len(args.Tasks))
	for _, t := range args.Tasks {
		if seen[t.CaseNumber] {
			return outcome{}, operation.Conflict("Task %s is listed more than once.", t.CaseNumber)
		}
		seen[t.CaseNumber] = true
	}

	// Every precondition is checked before the first insert so a batch is
	// either written whole or not at all.
	for _, t := range args.Tasks {
		if err := ensureStatusOnBoard(ctx, stores, req.BoardID, t.Status); err != nil {
			return outcome{}, err
		}
		if err := ensureCaseNumberFree(ctx, stores, t.CaseNumber); err != nil {
			return outcome{}, err
		}
	}

	now := d.timestamp()
	conversationID := req.ConversationID
	tasks := make([]model.Task, len(args.Tasks))
	for i, t := range args.Tasks {
		tasks[i] = model.Task{
			ID:             id.New(),
			CaseNumber:     t.CaseNumber,
			Title:          t.Title,
			Description:    t.Description,
			Status:         t.Status,
			Priority:       t.Priority,
			BoardID:        req.BoardID,
			ConversationID: &conversationID,
			Metadata: model.TaskMetadata{
				"createdVia":    model.ViaCreateTasks,
				"createdAt":     now,
				"promptVersion": operation.ContractVersion,
			},
		}
	}

	created, err := stores.Tasks().CreateMany(ctx, tasks)
	if err != nil {
		return outcome{}, fmt.Errorf("creating tasks: %w", err)
	}

	lines := make([]string, len(created))
	for i, t := range created {
		lines[i] = fmt.Sprintf("%s: %s", t.CaseNumber, t.Description)
	}

	return outcome{
		result: &operation.Result{
			Action: operation.ActionCreateTasks,
			Tasks:  created,
		},
		summary: fmt.Sprintf("Created %d task(s):\n%s", len(created), strings.Join(lines, "\n")),
	}, nil
}

func (d *Dispatcher) updateTaskStatus(ctx context.Context, stores StoreProvider, args operation.UpdateTaskStatusArgs) (outcome, error) {
	task, err := getTask(ctx, stores, args.CaseNumber)
	if err != nil {
		return outcome{}, err
	}
	if err := ensureStatusOnBoard(ctx, stores, task.BoardID, args.NewStatus); err != nil {
		return outcome{}, err
	}

	_, err = stores.Tasks().Update(ctx, task.ID, model.TaskPatch{
		Status: &args.NewStatus,
		Metadata: task.Metadata.Merge(model.TaskMetadata{
			"status":        args.NewStatus,
			"updatedVia":    model.ViaUpdateTask,
			"updatedAt":     d.timestamp(),
			"promptVersion": operation.ContractVersion,
			"lastOperation": string(operation.UpdateTaskStatus),
		}),
	})
	if err != nil {
		return outcome{}, fmt.Errorf("updating task %s: %w", args.CaseNumber, err)
	}

	return outcome{
		result: &operation.Result{
			Action:     operation.ActionUpdateStatus,
			CaseNumber: args.CaseNumber,
			NewStatus:  args.NewStatus,
		},
		summary: fmt.Sprintf("%s moved to %s.", args.CaseNumber, args.NewStatus),
	}, nil
}

func (d *Dispatcher) deleteTask(ctx context.Context, stores StoreProvider, args operation.DeleteTaskArgs) (outcome, error) {
	task, err := getTask(ctx, stores, args.CaseNumber)
	if err != nil {
		return outcome{}, err
	}
	if err := stores.Tasks().Delete(ctx, task.ID); err != nil {
		return outcome{}, fmt.Errorf("deleting task %s: %w", args.CaseNumber, err)
	}

	return outcome{
		result: &operation.Result{
			Action:     operation.ActionDelete,
			CaseNumber: args.CaseNumber,
		},
		summary: fmt.Sprintf("%s has been deleted.", args.CaseNumber),
	}, nil
}

func (d *Dispatcher) updateTaskProperties(ctx context.Context, stores StoreProvider, args operation.UpdateTaskPropertiesArgs) (outcome, error) {
	task, err := getTask(ctx, stores, args.CaseNumber)
	if err != nil {
		return outcome{}, err
	}
	if args.NewCaseNumber != nil && *args.NewCaseNumber != args.CaseNumber {
		if err := ensureCaseNumberFree(ctx, stores, *args.NewCaseNumber); err != nil {
			return outcome{}, err
		}
	}

	_, err = stores.Tasks().Update(ctx, task.ID, model.TaskPatch{
		CaseNumber:  args.NewCaseNumber,
		Title:       args.NewTitle,
		Description: args.NewDescription,
		Priority:    args.NewPriority,
		Metadata: task.Metadata.Merge(model.TaskMetadata{
			"updatedVia":    model.ViaUpdateTaskProperties,
			"updatedAt":     d.timestamp(),
			"promptVersion": operation.ContractVersion,
			"lastOperation": string(operation.UpdateTaskProperties),
		}),
	})
	if err != nil {
		return outcome{}, fmt.Errorf("updating task %s: %w", args.CaseNumber, err)
	}

	var changes []string
	if args.NewCaseNumber != nil {
		changes = append(changes, "renamed to "+*args.NewCaseNumber)
	}
	if args.NewTitle != nil {
		changes = append(changes, "title updated")
	}
	if args.NewDescription != nil {
		changes = append(changes, "description updated")
	}
	if args.NewPriority != nil {
		changes = append(changes, "priority changed to "+string(*args.NewPriority))
	}

	return outcome{
		result: &operation.Result{
			Action:         operation.ActionUpdateProperties,
			CaseNumber:     args.CaseNumber,
			NewCaseNumber:  args.NewCaseNumber,
			NewTitle:       args.NewTitle,
			NewDescription: args.NewDescription,
			NewPriority:    args.NewPriority,
		},
		summary: fmt.Sprintf("%s %s.", args.CaseNumber, strings.Join(changes, " and ")),
	}, nil
}
