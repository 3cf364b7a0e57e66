package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/graphlens/lens/internal/server/middleware"
	"github.com/graphlens/lens/pkg/graph"
	"github.com/graphlens/lens/pkg/session"
)

// GetGraphHandler returns the full node and edge lists of the current
// snapshot.
func GetGraphHandler(c echo.Context) error {
	type graphResponse struct {
		Message string         `json:"message,omitempty"`
		LoadID  string         `json:"load_id,omitempty"`
		Stats   *session.Stats `json:"stats,omitempty"`
		Nodes   []graph.Node   `json:"nodes"`
		Edges   []graph.Edge   `json:"edges"`
	}

	snapshot := c.(*middleware.AppContext).App.Session.Current()
	if snapshot == nil {
		return c.JSON(http.StatusNotFound, graphResponse{
			Message: "No artifacts loaded",
		})
	}

	stats := snapshot.Stats()
	return c.JSON(http.StatusOK, graphResponse{
		LoadID: snapshot.ID,
		Stats:  &stats,
		Nodes:  snapshot.Graph.Nodes,
		Edges:  snapshot.Graph.Edges,
	})
}
