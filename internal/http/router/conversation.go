package router

import (
	"github.com/gin-gonic/gin"

	"github.com/byigitt/kaiban/internal/http/handler"
)

func ConversationRouter(rg *gin.RouterGroup, h *handler.ConversationHandler) {
	rg.POST("", h.Start)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.DELETE("/:id/messages", h.ClearMessages)
}
