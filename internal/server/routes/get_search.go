package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/graphlens/lens/internal/server/middleware"
	"github.com/graphlens/lens/pkg/search"
)

// SearchHandler runs a ranked search over the current snapshot's index.
// An empty query returns an empty match list, not an error.
func SearchHandler(c echo.Context) error {
	type searchResponse struct {
		Message string         `json:"message,omitempty"`
		Query   string         `json:"query"`
		Matches []search.Match `json:"matches"`
	}

	query := c.QueryParam("q")

	snapshot := c.(*middleware.AppContext).App.Session.Current()
	if snapshot == nil {
		return c.JSON(http.StatusNotFound, searchResponse{
			Message: "No artifacts loaded",
			Query:   query,
			Matches: []search.Match{},
		})
	}

	matches := snapshot.Index.Search(query)
	if matches == nil {
		matches = []search.Match{}
	}
	return c.JSON(http.StatusOK, searchResponse{
		Query:   query,
		Matches: matches,
	})
}
