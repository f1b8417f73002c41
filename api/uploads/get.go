package uploads

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/simeon-code254/matobev-apps/api/types"
	"github.com/simeon-code254/matobev-apps/internal/services/pipeline"
)

// Get reports the current state of an ingestion run
// @Summary Get ingestion run status
// @Description Poll the state machine of one ingestion run: current stage, video id once known,
// @Description failure detail if the run failed, and whether an uploaded blob was left orphaned.
// @Tags uploads
// @Produce json
// @Param id path string true "Run id"
// @Success 200 {object} types.RunResponse "Run state"
// @Failure 404 {object} types.ErrorResponse "Run not found"
// @Router /api/v1/uploads/{id} [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
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

		c.JSON(http.StatusOK, types.NewRunResponse(run.Snapshot()))
	}
}

// List returns all tracked ingestion runs
// @Summary List ingestion runs
// @Description Returns every run the server currently tracks: active runs plus finished runs
// @Description still inside the retention window.
// @Tags uploads
// @Produce json
// @Success 200 {object} map[string]interface{} "Runs"
// @Router /api/v1/uploads [get]
func List(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		runs := deps.Pipeline.List()
		out := make([]types.RunResponse, 0, len(runs))
		for _, run := range runs {
			out = append(out, types.NewRunResponse(run.Snapshot()))
		}
		c.JSON(http.StatusOK, gin.H{
			"runs":  out,
			"count": len(out),
		})
	}
}
