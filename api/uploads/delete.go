package uploads

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/simeon-code254/matobev-apps/api/types"
	"github.com/simeon-code254/matobev-apps/internal/services/pipeline"
)

// Delete cancels a live run or acknowledges a finished one
// @Summary Cancel or discard an ingestion run
// @Description For an active run, requests cooperative cancellation: stages up to URL signing
// @Description abort promptly, an in-flight analysis completes but its result is discarded.
// @Description For a finished run, acknowledges it and drops it from tracking.
// @Tags uploads
// @Produce json
// @Param id path string true "Run id"
// @Success 200 {object} types.RunResponse "Cancellation requested"
// @Success 204 "Finished run discarded"
// @Failure 404 {object} types.ErrorResponse "Run not found"
// @Failure 409 {object} types.ErrorResponse "Run past the point of cancellation"
// @Router /api/v1/uploads/{id} [delete]
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.RequireParam(c, "id")
		if !ok {
			return
		}

		run, err := deps.Pipeline.Get(id)
		if err != nil {
			if errors.Is(err, pipeline.ErrRunNotFound) {
				types.SendNotFound(c, "Run not found")
				return
			}
			types.SendInternalError(c, err.Error())
			return
		}

		if run.Terminal() {
			if err := deps.Pipeline.Acknowledge(id); err != nil {
				types.SendInternalError(c, err.Error())
				return
			}
			c.Status(http.StatusNoContent)
			return
		}

		if err := deps.Pipeline.Cancel(id); err != nil {
			if errors.Is(err, pipeline.ErrRunNotCancellable) {
				types.SendConflict(c, "Run is past the point of cancellation")
				return
			}
			types.SendInternalError(c, err.Error())
			return
		}

		c.JSON(http.StatusOK, types.NewRunResponse(run.Snapshot()))
	}
}
