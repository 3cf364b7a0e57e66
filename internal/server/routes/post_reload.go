package routes

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/graphlens/lens/internal/queue"
	"github.com/graphlens/lens/internal/server/middleware"
	"github.com/graphlens/lens/internal/util"
	"github.com/graphlens/lens/pkg/logger"
	"github.com/graphlens/lens/pkg/session"
)

// ReloadArtifactsHandler reloads the session from a pipeline output
// directory on disk or from an S3 prefix. The previous snapshot stays
// current until the new load completes. With enqueue set, the reload is
// published to the refresh queue instead and handled by its consumer.
func ReloadArtifactsHandler(c echo.Context) error {
	type reloadBody struct {
		OutputDir string `json:"output_dir"`
		S3Prefix  string `json:"s3_prefix"`
		Enqueue   bool   `json:"enqueue"`
	}

	type reloadResponse struct {
		Message      string         `json:"message"`
		Stats        *session.Stats `json:"stats,omitempty"`
		DecodeErrors []string       `json:"decode_errors,omitempty"`
	}

	data := new(reloadBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, reloadResponse{
			Message: "Invalid request body",
		})
	}
	if data.OutputDir == "" && data.S3Prefix == "" {
		// Fall back to the directory the server preloaded from.
		data.OutputDir = util.GetEnv("ARTIFACT_DIR")
	}
	if data.OutputDir == "" && data.S3Prefix == "" {
		return c.JSON(http.StatusBadRequest, reloadResponse{
			Message: "Either output_dir or s3_prefix is required",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	if data.Enqueue {
		if app.Queue == nil {
			return c.JSON(http.StatusConflict, reloadResponse{
				Message: "No refresh queue configured",
			})
		}
		payload, err := json.Marshal(queue.RefreshMsg{
			OutputDir: data.OutputDir,
			S3Prefix:  data.S3Prefix,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, reloadResponse{
				Message: "Internal server error",
			})
		}
		if err := queue.Publish(app.Queue, queue.RefreshQueue, payload); err != nil {
			logger.Error("Failed to publish refresh message", "err", err)
			return c.JSON(http.StatusInternalServerError, reloadResponse{
				Message: "Internal server error",
			})
		}
		return c.JSON(http.StatusAccepted, reloadResponse{
			Message: "Reload enqueued",
		})
	}

	var snapshot *session.Snapshot
	var err error
	switch {
	case data.OutputDir != "":
		snapshot, err = app.Session.LoadDir(ctx, data.OutputDir)
	default:
		if !app.Fetcher.Configured() {
			return c.JSON(http.StatusConflict, reloadResponse{
				Message: "No artifact storage configured",
			})
		}
		artifactFiles, fetchErr := app.Fetcher.Fetch(ctx, data.S3Prefix)
		if fetchErr != nil {
			logger.Error("Failed to fetch artifacts", "prefix", data.S3Prefix, "err", fetchErr)
			return c.JSON(http.StatusBadGateway, reloadResponse{
				Message: "Failed to fetch artifacts from storage",
			})
		}
		snapshot, err = app.Session.Load(ctx, artifactFiles)
	}
	if err != nil {
		logger.Error("Failed to reload artifacts", "err", err)
		return c.JSON(http.StatusInternalServerError, reloadResponse{
			Message: "Internal server error",
		})
	}

	stats := snapshot.Stats()
	resp := reloadResponse{
		Message: "Artifacts loaded successfully",
		Stats:   &stats,
	}
	for _, decodeErr := range snapshot.DecodeErrors {
		resp.DecodeErrors = append(resp.DecodeErrors, decodeErr.Error())
	}
	return c.JSON(http.StatusOK, resp)
}
