package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/byigitt/kaiban/internal/http/dto"
	"github.com/byigitt/kaiban/internal/model"
	"github.com/byigitt/kaiban/internal/service"
)

type TaskHandler struct {
	taskService     service.TaskService
	snapshotService service.SnapshotService
}

func NewTaskHandler(taskService service.TaskService, snapshotService service.SnapshotService) *TaskHandler {
	return &TaskHandler{taskService: taskService, snapshotService: snapshotService}
}

func (h *TaskHandler) List(c *gin.Context) {
	boardID, ok := parseOptionalIDQuery(c, "boardId")
	if !ok {
		return
	}

	tasks, err := h.taskService.List(c.Request.Context(), boardID)
	if err != nil {
		respondError(c, err, "failed to list tasks")
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) Edit(c *gin.Context) {
	var req dto.EditTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	task, err := h.taskService.Edit(c.Request.Context(), c.Param("caseNumber"), req.ToEdit())
	if err != nil {
		respondError(c, err, "failed to update task")
		return
	}
	c.JSON(http.StatusOK, task)
}

// Snapshot returns conversations, tasks and boards in one response.
func (h *TaskHandler) Snapshot(c *gin.Context) {
	boardID, ok := parseOptionalIDQuery(c, "boardId")
	if !ok {
		return
	}

	snap, err := h.snapshotService.Load(c.Request.Context(), boardID)
	if err != nil {
		respondError(c, err, "failed to load data")
		return
	}
	c.JSON(http.StatusOK, snap)
}
