package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/graphlens/lens/internal/server/middleware"
)

// ClearSessionHandler drops the current snapshot. Subsequent graph and
// search requests report that nothing is loaded until the next load.
func ClearSessionHandler(c echo.Context) error {
	type clearResponse struct {
		Message string `json:"message"`
	}

	c.(*middleware.AppContext).App.Session.Clear()
	return c.JSON(http.StatusOK, clearResponse{
		Message: "Session cleared",
	})
}
