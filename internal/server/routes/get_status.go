package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/graphlens/lens/internal/server/middleware"
	"github.com/graphlens/lens/pkg/session"
)

// GetStatusHandler reports whether artifacts are loaded and the summary
// counts of the current snapshot.
func GetStatusHandler(c echo.Context) error {
	type statusResponse struct {
		Loaded         bool           `json:"loaded"`
		RemoteQuery    bool           `json:"remote_query"`
		ArtifactSource bool           `json:"artifact_source"`
		Stats          *session.Stats `json:"stats,omitempty"`
	}

	app := c.(*middleware.AppContext).App
	resp := statusResponse{
		RemoteQuery:    app.Remote != nil,
		ArtifactSource: app.Fetcher.Configured(),
	}

	if snapshot := app.Session.Current(); snapshot != nil {
		stats := snapshot.Stats()
		resp.Loaded = true
		resp.Stats = &stats
	}

	return c.JSON(http.StatusOK, resp)
}
