package server

import (
	"github.com/labstack/echo/v4"

	"github.com/graphlens/lens/internal/server/routes"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api")

	// Session routes
	apiRoutes.GET("/status", routes.GetStatusHandler)
	apiRoutes.POST("/artifacts", routes.UploadArtifactsHandler)
	apiRoutes.POST("/artifacts/reload", routes.ReloadArtifactsHandler)
	apiRoutes.DELETE("/session", routes.ClearSessionHandler)

	// Graph routes
	apiRoutes.GET("/graph", routes.GetGraphHandler)
	apiRoutes.GET("/nodes/:id", routes.GetNodeHandler)
	apiRoutes.GET("/search", routes.SearchHandler)
	apiRoutes.GET("/diagnostics", routes.GetDiagnosticsHandler)

	// Remote query routes
	apiRoutes.POST("/query", routes.QueryHandler)
}
