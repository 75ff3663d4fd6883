package router

import (
	"github.com/gin-gonic/gin"

	"github.com/byigitt/kaiban/internal/http/handler"
)

func CommandRouter(rg *gin.RouterGroup, h *handler.CommandHandler) {
	rg.POST("", h.Process)
}
