package routes

import (
	"github.com/gin-gonic/gin"

	"vigil/internal/domain/access"
	"vigil/internal/interfaces/http/handlers"
	"vigil/internal/interfaces/http/middleware"
)

type FieldReportRouteConfig struct {
	FieldReportHandler *handlers.FieldReportHandler
	AuthMiddleware     *middleware.AuthMiddleware
	AccessMiddleware   *middleware.AccessMiddleware
}

func SetupFieldReportRoutes(engine *gin.Engine, config *FieldReportRouteConfig) {
	reports := engine.Group("/api/events/:event/field-reports")
	reports.Use(config.AuthMiddleware.RequireAuth())
	{
		reports.GET("",
			config.AccessMiddleware.RequireEventAccess(access.ModeRead),
			config.FieldReportHandler.ListFieldReports)
		// Filing a field report needs report access, not write access.
		reports.POST("",
			config.AccessMiddleware.RequireEventAccess(access.ModeReport),
			config.FieldReportHandler.CreateFieldReport)

		reports.POST("/:number/entries",
			config.AccessMiddleware.RequireEventAccess(access.ModeReport),
			config.FieldReportHandler.AppendEntry)
		reports.POST("/:number/attach",
			config.AccessMiddleware.RequireEventAccess(access.ModeWrite),
			config.FieldReportHandler.Attach)
		reports.POST("/:number/detach",
			config.AccessMiddleware.RequireEventAccess(access.ModeWrite),
			config.FieldReportHandler.Detach)

		reports.GET("/:number",
			config.AccessMiddleware.RequireEventAccess(access.ModeRead),
			config.FieldReportHandler.GetFieldReport)
		reports.PATCH("/:number",
			config.AccessMiddleware.RequireEventAccess(access.ModeWrite),
			config.FieldReportHandler.UpdateFieldReport)
	}
}
