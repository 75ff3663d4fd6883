package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/byigitt/kaiban/internal/http/dto"
	"github.com/byigitt/kaiban/internal/service"
)

type BoardHandler struct {
	boardService service.BoardService
}

func NewBoardHandler(boardService service.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

func (h *BoardHandler) List(c *gin.Context) {
	boards, err := h.boardService.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed to list boards")
		return
	}
	c.JSON(http.StatusOK, boards)
}

func (h *BoardHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	board, err := h.boardService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to load board")
		return
	}
	c.JSON(http.StatusOK, board)
}

func (h *BoardHandler) Create(c *gin.Context) {
	var req dto.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	board, err := h.boardService.Create(c.Request.Context(), req.Name, req.ColumnSpecs())
	if err != nil {
		respondError(c, err, "failed to create board")
		return
	}
	c.JSON(http.StatusCreated, board)
}

func (h *BoardHandler) Rename(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.RenameBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	board, err := h.boardService.Rename(c.Request.Context(), id, req.Name)
	if err != nil {
		respondError(c, err, "failed to rename board")
		return
	}
	c.JSON(http.StatusOK, board)
}

func (h *BoardHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.boardService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "failed to delete board")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BoardHandler) Clear(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	n, err := h.boardService.Clear(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to clear board")
		return
	}
	c.JSON(http.StatusOK, dto.ClearBoardResponse{ClearedCount: n})
}
