package router

import (
	"github.com/gin-gonic/gin"

	"github.com/byigitt/kaiban/internal/http/handler"
)

func BoardRouter(rg *gin.RouterGroup, h *handler.BoardHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Rename)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/clear", h.Clear)
}
