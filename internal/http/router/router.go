package router

import (
	"github.com/gin-gonic/gin"

	"github.com/devsync/ai-engine/internal/http/handler"
)

func SetupRoutes(router *gin.Engine, reviewHandler *handler.ReviewHandler) {
	router.GET("/health", reviewHandler.Health)
	router.GET("/reviews", reviewHandler.List)

	ai := router.Group("/ai")
	{
		ai.POST("/review", reviewHandler.Create)
	}
}
