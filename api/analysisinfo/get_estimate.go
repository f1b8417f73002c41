package analysisinfo

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/simeon-code254/matobev-apps/api/types"
)

// GetEstimate proxies the analyzer's current processing time estimate
// @Summary Get analysis time estimate
// @Description Returns the remote analyzer's reported expected processing time in seconds.
// @Description Display guidance only; the pipeline does not depend on it for correctness.
// @Tags analysis
// @Produce json
// @Success 200 {object} map[string]interface{} "Estimate"
// @Router /api/v1/analysis/estimate [get]
func GetEstimate(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		estimate, err := deps.Pipeline.TimeEstimate(c.Request.Context())
		if err != nil {
			types.SendInternalError(c, err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"estimated_time_seconds": estimate.Seconds(),
		})
	}
}
