package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/byigitt/kaiban/internal/dispatch"
	"github.com/byigitt/kaiban/internal/http/dto"
	"github.com/byigitt/kaiban/internal/service"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type CommandHandler struct {
	commandService service.CommandService
}

func NewCommandHandler(commandService service.CommandService) *CommandHandler {
	return &CommandHandler{commandService: commandService}
}

// Process runs one chat command and returns the operation result.
func (h *CommandHandler) Process(c *gin.Context) {
	var req dto.CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.commandService.Process(c.Request.Context(), service.CommandRequest{
		Command:        req.Command,
		ConversationID: req.ConversationID,
		BoardID:        req.BoardID,
		IdempotencyKey: c.GetHeader(IdempotencyKeyHeader),
	})
	if err != nil {
		respondError(c, err, "failed to process command")
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *CommandHandler) NextCaseNumber(c *gin.Context) {
	next, err := h.commandService.NextCaseNumber(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to compute next case number")
		return
	}

	c.JSON(http.StatusOK, dto.NextCaseNumberResponse{
		NextCaseNumber: next,
		CaseNumber:     fmt.Sprintf("%s%d", dispatch.CaseNumberPrefix, next),
	})
}
