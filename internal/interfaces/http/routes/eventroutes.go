package routes

import (
	"github.com/gin-gonic/gin"

	"vigil/internal/domain/access"
	"vigil/internal/interfaces/http/handlers"
	"vigil/internal/interfaces/http/middleware"
)

type EventRouteConfig struct {
	EventHandler        *handlers.EventHandler
	IncidentTypeHandler *handlers.IncidentTypeHandler
	AuthMiddleware      *middleware.AuthMiddleware
	AccessMiddleware    *middleware.AccessMiddleware
}

func SetupEventRoutes(engine *gin.Engine, config *EventRouteConfig) {
	events := engine.Group("/api/events")
	events.Use(config.AuthMiddleware.RequireAuth())
	{
		events.GET("",
			config.EventHandler.ListEvents)
		events.POST("",
			middleware.RequireAdmin(),
			config.EventHandler.CreateEvent)

		// Access entries are administration surface, never mode-gated.
		accessGroup := events.Group("/:event/access",
			middleware.RequireAdmin(),
			config.AccessMiddleware.ResolveEvent())
		{
			accessGroup.GET("", config.EventHandler.ListAccessEntries)
			accessGroup.PUT("", config.EventHandler.SetAccessEntry)
			accessGroup.DELETE("", config.EventHandler.RemoveAccessEntry)
		}

		types := events.Group("/:event/incident-types")
		{
			types.GET("",
				config.AccessMiddleware.RequireEventAccess(access.ModeRead),
				config.IncidentTypeHandler.ListIncidentTypes)
			types.POST("",
				middleware.RequireAdmin(),
				config.AccessMiddleware.ResolveEvent(),
				config.IncidentTypeHandler.CreateIncidentType)
			types.PATCH("/:name",
				middleware.RequireAdmin(),
				config.AccessMiddleware.ResolveEvent(),
				config.IncidentTypeHandler.SetIncidentTypeHidden)
		}
	}
}
