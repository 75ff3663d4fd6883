package router

import (
	"github.com/gin-gonic/gin"

	"github.com/byigitt/kaiban/internal/http/handler"
)

func TaskRouter(rg *gin.RouterGroup, h *handler.TaskHandler, commands *handler.CommandHandler) {
	rg.GET("", h.List)
	rg.GET("/next-case-number", commands.NextCaseNumber)
	rg.PATCH("/:caseNumber", h.Edit)
}
