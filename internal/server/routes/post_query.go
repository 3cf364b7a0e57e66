package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/graphlens/lens/internal/server/middleware"
	"github.com/graphlens/lens/pkg/logger"
	"github.com/graphlens/lens/pkg/remote"
)

// QueryHandler forwards a free-text question to the configured GraphRAG
// query server and returns its answer verbatim. The local graph is
// bypassed on this path.
func QueryHandler(c echo.Context) error {
	type queryBody struct {
		Query string `json:"query" validate:"required"`
		Mode  string `json:"mode"`
	}

	type queryResponse struct {
		Message    string `json:"message,omitempty"`
		Response   string `json:"response,omitempty"`
		MethodUsed string `json:"method_used,omitempty"`
		Success    bool   `json:"success"`
	}

	data := new(queryBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, queryResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, queryResponse{
			Message: "Invalid request body",
		})
	}

	app := c.(*middleware.AppContext).App
	if app.Remote == nil {
		return c.JSON(http.StatusConflict, queryResponse{
			Message: "No query server configured",
		})
	}

	result, err := app.Remote.Query(c.Request().Context(), data.Query, data.Mode)
	if err != nil {
		var queryErr *remote.QueryError
		if errors.As(err, &queryErr) {
			logger.Error("Remote query failed", "mode", queryErr.Mode, "status", queryErr.Status, "err", err)
			return c.JSON(http.StatusBadGateway, queryResponse{
				Message: "Query server request failed",
			})
		}
		return c.JSON(http.StatusBadRequest, queryResponse{
			Message: err.Error(),
		})
	}

	return c.JSON(http.StatusOK, queryResponse{
		Response:   result.Response,
		MethodUsed: result.MethodUsed,
		Success:    result.Success,
	})
}
