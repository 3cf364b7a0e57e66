package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/graphlens/lens/internal/server/middleware"
	"github.com/graphlens/lens/pkg/graph"
)

// GetDiagnosticsHandler returns everything the last load skipped or
// dropped: malformed rows, dangling edges, duplicate ids, decode errors.
func GetDiagnosticsHandler(c echo.Context) error {
	type diagnosticsResponse struct {
		Message      string             `json:"message,omitempty"`
		LoadID       string             `json:"load_id,omitempty"`
		Clean        bool               `json:"clean"`
		Diagnostics  *graph.Diagnostics `json:"diagnostics,omitempty"`
		DecodeErrors []string           `json:"decode_errors,omitempty"`
	}

	snapshot := c.(*middleware.AppContext).App.Session.Current()
	if snapshot == nil {
		return c.JSON(http.StatusNotFound, diagnosticsResponse{
			Message: "No artifacts loaded",
		})
	}

	resp := diagnosticsResponse{
		LoadID:      snapshot.ID,
		Clean:       snapshot.Diagnostics.Empty() && len(snapshot.DecodeErrors) == 0,
		Diagnostics: snapshot.Diagnostics,
	}
	for _, decodeErr := range snapshot.DecodeErrors {
		resp.DecodeErrors = append(resp.DecodeErrors, decodeErr.Error())
	}
	return c.JSON(http.StatusOK, resp)
}
