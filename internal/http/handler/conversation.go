package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/byigitt/kaiban/internal/http/dto"
	"github.com/byigitt/kaiban/internal/service"
)

type ConversationHandler struct {
	commandService      service.CommandService
	conversationService service.ConversationService
}

func NewConversationHandler(commandService service.CommandService, conversationService service.ConversationService) *ConversationHandler {
	return &ConversationHandler{
		commandService:      commandService,
		conversationService: conversationService,
	}
}

// Start creates a conversation, importing tasks from the text if any.
func (h *ConversationHandler) Start(c *gin.Context) {
	var req dto.StartConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.commandService.StartConversation(c.Request.Context(), req.Text, req.BoardID)
	if err != nil {
		respondError(c, err, "failed to start conversation")
		return
	}

	c.JSON(http.StatusCreated, dto.ToStartConversationResponse(res))
}

func (h *ConversationHandler) List(c *gin.Context) {
	convs, err := h.conversationService.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list conversations")
		return
	}

	resp := make([]*dto.ConversationResponse, len(convs))
	for i := range convs {
		resp[i] = dto.ToConversationResponse(&convs[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConversationHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	conv, err := h.conversationService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to load conversation")
		return
	}

	c.JSON(http.StatusOK, dto.ToConversationResponse(conv))
}

func (h *ConversationHandler) ClearMessages(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	n, err := h.conversationService.ClearMessages(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to clear messages")
		return
	}

	c.JSON(http.StatusOK, dto.ClearMessagesResponse{DeletedCount: n})
}
