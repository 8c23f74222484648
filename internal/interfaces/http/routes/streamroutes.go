package routes

import (
	"github.com/gin-gonic/gin"

	"vigil/internal/domain/access"
	"vigil/internal/interfaces/http/handlers"
	"vigil/internal/interfaces/http/middleware"
)

type StreamRouteConfig struct {
	StreamHandler    *handlers.StreamHandler
	AuthMiddleware   *middleware.AuthMiddleware
	AccessMiddleware *middleware.AccessMiddleware
}

func SetupStreamRoutes(engine *gin.Engine, config *StreamRouteConfig) {
	engine.GET("/api/events/:event/stream",
		config.AuthMiddleware.RequireAuth(),
		config.AccessMiddleware.RequireEventAccess(access.ModeRead),
		config.StreamHandler.Stream)
}
