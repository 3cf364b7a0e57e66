package routes

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/graphlens/lens/internal/server/middleware"
	"github.com/graphlens/lens/pkg/artifact"
	"github.com/graphlens/lens/pkg/logger"
	"github.com/graphlens/lens/pkg/session"
)

// UploadArtifactsHandler loads a pipeline output from uploaded artifact
// files (multipart/form-data, field "files"). A successful load replaces
// the current snapshot wholesale.
func UploadArtifactsHandler(c echo.Context) error {
	type uploadResponse struct {
		Message      string         `json:"message"`
		Stats        *session.Stats `json:"stats,omitempty"`
		DecodeErrors []string       `json:"decode_errors,omitempty"`
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, uploadResponse{
			Message: "Invalid request body",
		})
	}
	uploads := form.File["files"]
	if len(uploads) == 0 {
		return c.JSON(http.StatusBadRequest, uploadResponse{
			Message: "No files provided",
		})
	}

	// Unrecognized or undecodable files surface as per-file decode
	// errors; sibling files still load.
	files := make([]artifact.File, 0, len(uploads))
	for _, upload := range uploads {
		src, err := upload.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, uploadResponse{
				Message: "Could not open file",
			})
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return c.JSON(http.StatusBadRequest, uploadResponse{
				Message: "Could not read file",
			})
		}
		files = append(files, artifact.File{Name: upload.Filename, Data: data})
	}

	app := c.(*middleware.AppContext).App
	snapshot, err := app.Session.Load(c.Request().Context(), files)
	if err != nil {
		logger.Error("Failed to load artifacts", "err", err)
		return c.JSON(http.StatusInternalServerError, uploadResponse{
			Message: "Internal server error",
		})
	}

	stats := snapshot.Stats()
	resp := uploadResponse{
		Message: "Artifacts loaded successfully",
		Stats:   &stats,
	}
	for _, decodeErr := range snapshot.DecodeErrors {
		resp.DecodeErrors = append(resp.DecodeErrors, decodeErr.Error())
	}
	return c.JSON(http.StatusOK, resp)
}
