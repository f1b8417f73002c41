package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/simeon-code254/matobev-apps/api/types"
	"github.com/simeon-code254/matobev-apps/internal/services/pipeline"
)

// Create starts an ingestion run for an uploaded video
// @Summary Upload a video for analysis
// @Description Accepts a multipart video upload and starts the asynchronous ingestion pipeline:
// @Description store the blob, register the video, obtain a retrieval URL, run the remote analysis,
// @Description and persist the derived metrics. Returns immediately with a run id; poll
// @Description GET /api/v1/uploads/{id} for progress.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param video formData file true "Video file"
// @Param player_id formData string true "Owning player id"
// @Param title formData string false "Video title"
// @Param description formData string false "Video description"
// @Success 202 {object} types.RunResponse "Run started"
// @Failure 400 {object} types.ErrorResponse "Invalid input"
// @Failure 409 {object} types.ErrorResponse "Too many concurrent runs"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /api/v1/uploads [post]
func Create(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("video")
		if err != nil {
			types.SendBadRequest(c, "video file is required")
			return
		}

		// The multipart temp file is reclaimed when this handler returns,
		// so the upload is spooled to a file the run owns and removes.
		body, err := spool(fileHeader)
		if err != nil {
			types.SendInternalError(c, fmt.Sprintf("Failed to buffer upload: %v", err))
			return
		}

		run, err := deps.Pipeline.Start(c.Request.Context(), pipeline.UploadInput{
			PlayerID:    c.PostForm("player_id"),
			FileName:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
			Title:       c.PostForm("title"),
			Description: c.PostForm("description"),
			Body:        body,
		})
		if err != nil {
			_ = body.Close()
			var inputErr *pipeline.InputError
			switch {
			case errors.As(err, &inputErr):
				types.SendBadRequest(c, inputErr.Error())
			case errors.Is(err, pipeline.ErrTooManyRuns):
				types.SendConflict(c, "Too many uploads in progress, try again shortly")
			default:
				types.SendInternalError(c, fmt.Sprintf("Failed to start ingestion: %v", err))
			}
			return
		}

		c.JSON(http.StatusAccepted, types.NewRunResponse(run.Snapshot()))
	}
}

// spooledFile is a temp file that unlinks itself on Close
type spooledFile struct {
	*os.File
}

func (s *spooledFile) Close() error {
	err := s.File.Close()
	if removeErr := os.Remove(s.File.Name()); err == nil {
		err = removeErr
	}
	return err
}

// spool copies the multipart upload into a self-deleting temp file so the
// background run can read it after the request completes
func spool(fileHeader *multipart.FileHeader) (io.ReadCloser, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "matobev-upload-*")
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(tmp, src); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return nil, err
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return nil, err
	}
	return &spooledFile{tmp}, nil
}
