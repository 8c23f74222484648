package routes

import (
	"github.com/gin-gonic/gin"

	"vigil/internal/domain/access"
	"vigil/internal/interfaces/http/handlers"
	"vigil/internal/interfaces/http/middleware"
)

type IncidentRouteConfig struct {
	IncidentHandler  *handlers.IncidentHandler
	AuthMiddleware   *middleware.AuthMiddleware
	AccessMiddleware *middleware.AccessMiddleware
}

func SetupIncidentRoutes(engine *gin.Engine, config *IncidentRouteConfig) {
	incidents := engine.Group("/api/events/:event/incidents")
	incidents.Use(config.AuthMiddleware.RequireAuth())
	{
		incidents.GET("",
			config.AccessMiddleware.RequireEventAccess(access.ModeRead),
			config.IncidentHandler.ListIncidents)
		incidents.POST("",
			config.AccessMiddleware.RequireEventAccess(access.ModeWrite),
			config.IncidentHandler.CreateIncident)

		incidents.POST("/:number/entries",
			config.AccessMiddleware.RequireEventAccess(access.ModeWrite),
			config.IncidentHandler.AppendEntry)

		incidents.GET("/:number",
			config.AccessMiddleware.RequireEventAccess(access.ModeRead),
			config.IncidentHandler.GetIncident)
		incidents.PATCH("/:number",
			config.AccessMiddleware.RequireEventAccess(access.ModeWrite),
			config.IncidentHandler.UpdateIncident)
	}

	// Entry ids are unique per event, so striking is addressed by entry
	// id alone regardless of the parent kind.
	entries := engine.Group("/api/events/:event/entries")
	entries.Use(config.AuthMiddleware.RequireAuth())
	{
		entries.PATCH("/:id",
			config.AccessMiddleware.RequireEventAccess(access.ModeWrite),
			config.IncidentHandler.SetEntryStricken)
	}
}
