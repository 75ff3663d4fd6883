package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/byigitt/kaiban/internal/model"
	"github.com/byigitt/kaiban/internal/store"
)

type taskStore struct{ s *Stores }

func findTask(st *state, caseNumber string) (model.Task, bool) {
	for _, t := range st.tasks {
		if t.CaseNumber == caseNumber {
			return t, true
		}
	}
	return model.Task{}, false
}

func sortedTasks(st *state, keep func(model.Task) bool) []model.Task {
	out := make([]model.Task, 0, len(st.tasks))
	for _, t := range st.tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (t *taskStore) GetByCaseNumber(ctx context.Context, caseNumber string) (*model.Task, error) {
	var out *model.Task
	err := t.s.do(ctx, func(st *state) error {
		task, ok := findTask(st, caseNumber)
		if !ok {
			return store.ErrNotFound
		}
		out = &task
		return nil
	})
	return out, err
}

func (t *taskStore) CreateMany(ctx context.Context, tasks []model.Task) ([]model.Task, error) {
	var created []model.Task
	err := t.s.do(ctx, func(st *state) error {
		now := t.s.now()
		created = make([]model.Task, 0, len(tasks))
		for _, task := range tasks {
			if _, exists := findTask(st, task.CaseNumber); exists {
				return store.ErrConflict
			}
			if task.BoardID != nil {
				if _, ok := st.boards[*task.BoardID]; !ok {
					return store.ErrNotFound
				}
			}
			task.ID = t.s.assignID(task.ID)
			task.Metadata = model.TaskMetadata{}.Merge(task.Metadata)
			task.CreatedAt, task.UpdatedAt = now, now
			st.tasks[task.ID] = task
			created = append(created, task)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (t *taskStore) Update(ctx context.Context, id int64, patch model.TaskPatch) (*model.Task, error) {
	var out *model.Task
	err := t.s.do(ctx, func(st *state) error {
		task, ok := st.tasks[id]
		if !ok {
			return store.ErrNotFound
		}
		if patch.CaseNumber != nil && *patch.CaseNumber != task.CaseNumber {
			if _, exists := findTask(st, *patch.CaseNumber); exists {
				return store.ErrConflict
			}
			task.CaseNumber = *patch.CaseNumber
		}
		if patch.Title != nil {
			task.Title = *patch.Title
		}
		if patch.Description != nil {
			task.Description = *patch.Description
		}
		if patch.Status != nil {
			task.Status = *patch.Status
		}
		if patch.Priority != nil {
			task.Priority = *patch.Priority
		}
		if patch.Metadata != nil {
			task.Metadata = model.TaskMetadata{}.Merge(patch.Metadata)
		}
		task.UpdatedAt = t.s.now()
		st.tasks[id] = task
		out = &task
		return nil
	})
	return out, err
}

func (t *taskStore) Delete(ctx context.Context, id int64) error {
	return t.s.do(ctx, func(st *state) error {
		if _, ok := st.tasks[id]; !ok {
			return store.ErrNotFound
		}
		delete(st.tasks, id)
		return nil
	})
}

func (t *taskStore) List(ctx context.Context, boardID *int64) ([]model.Task, error) {
	var out []model.Task
	err := t.s.do(ctx, func(st *state) error {
		out = sortedTasks(st, func(task model.Task) bool {
			return boardID == nil || (task.BoardID != nil && *task.BoardID == *boardID)
		})
		return nil
	})
	return out, err
}

func (t *taskStore) ListCaseNumbers(ctx context.Context, prefix string) ([]string, error) {
	var out []string
	err := t.s.do(ctx, func(st *state) error {
		for _, task := range st.tasks {
			if strings.HasPrefix(task.CaseNumber, prefix) {
				out = append(out, task.CaseNumber)
			}
		}
		return nil
	})
	return out, err
}

func (t *taskStore) ListCaseNumbersByStatus(ctx context.Context, boardID int64, status string) ([]string, error) {
	var out []string
	err := t.s.do(ctx, func(st *state) error {
		for _, task := range st.tasks {
			if task.BoardID != nil && *task.BoardID == boardID && task.Status == status {
				out = append(out, task.CaseNumber)
			}
		}
		sort.Strings(out)
		return nil
	})
	return out, err
}

func (t *taskStore) DeleteByBoard(ctx context.Context, boardID int64) (int64, error) {
	var n int64
	err := t.s.do(ctx, func(st *state) error {
		n = deleteBoardTasks(st, boardID)
		return nil
	})
	return n, err
}

func deleteBoardTasks(st *state, boardID int64) int64 {
	var n int64
	for id, task := range st.tasks {
		if task.BoardID != nil && *task.BoardID == boardID {
			delete(st.tasks, id)
			n++
		}
	}
	return n
}
