package router

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/byigitt/kaiban/internal/http/handler"
	"github.com/byigitt/kaiban/internal/service"
)

type RouterConfig struct {
	// Ready backs /ready. Nil means always ready.
	Ready func(ctx context.Context) error
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/ready", func(c *gin.Context) {
		if cfg.Ready != nil {
			if err := cfg.Ready(c.Request.Context()); err != nil {
				slog.WarnContext(c.Request.Context(), "readiness check failed", "error", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	v1 := router.Group("/api/v1")
	{
		commandHandler := handler.NewCommandHandler(services.Commands())
		CommandRouter(v1.Group("/commands"), commandHandler)

		conversationHandler := handler.NewConversationHandler(services.Commands(), services.Conversations())
		ConversationRouter(v1.Group("/conversations"), conversationHandler)

		boardHandler := handler.NewBoardHandler(services.Boards())
		BoardRouter(v1.Group("/boards"), boardHandler)

		taskHandler := handler.NewTaskHandler(services.Tasks(), services.Snapshot())
		TaskRouter(v1.Group("/tasks"), taskHandler, commandHandler)
		v1.GET("/data", taskHandler.Snapshot)
	}
}
