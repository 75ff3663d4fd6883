package dto

import "github.com/byigitt/kaiban/internal/model"

type ColumnRequest struct {
	Title  string  `json:"title" binding:"required"`
	Helper *string `json:"helper,omitempty"`
}

type CreateBoardRequest struct {
	Name    string          `json:"name" binding:"required"`
	Columns []ColumnRequest `json:"columns,omitempty" binding:"omitempty,dive"`
}

type RenameBoardRequest struct {
	Name string `json:"name" binding:"required"`
}

type ClearBoardResponse struct {
	ClearedCount int64 `json:"clearedCount"`
}

func (r CreateBoardRequest) ColumnSpecs() []model.ColumnSpec {
	specs := make([]model.ColumnSpec, len(r.Columns))
	for i, c := range r.Columns {
		specs[i] = model.ColumnSpec{Title: c.Title, Helper: c.Helper}
	}
	return specs
}
