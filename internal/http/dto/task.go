package dto

import (
	"github.com/byigitt/kaiban/internal/model"
	"github.com/byigitt/kaiban/internal/service"
)

type EditTaskRequest struct {
	NewCaseNumber *string         `json:"newCaseNumber,omitempty"`
	Title         *string         `json:"title,omitempty"`
	Description   *string         `json:"description,omitempty"`
	Priority      *model.Priority `json:"priority,omitempty"`
}

func (r EditTaskRequest) ToEdit() service.TaskEdit {
	return service.TaskEdit{
		NewCaseNumber: r.NewCaseNumber,
		Title:         r.Title,
		Description:   r.Description,
		Priority:      r.Priority,
	}
}
