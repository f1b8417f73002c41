package players

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simeon-code254/matobev-apps/api/types"
	"github.com/simeon-code254/matobev-apps/internal/services/analyses"
)

// GetAnalyses returns a player's analysis history
// @Summary List a player's analysis results
// @Description Returns the append-only analysis history for a player, newest first,
// @Description optionally bounded by a completion time range.
// @Tags players
// @Produce json
// @Param id path string true "Player id"
// @Param since query string false "Only results completed at or after this RFC3339 time"
// @Param until query string false "Only results completed before this RFC3339 time"
// @Param limit query int false "Maximum results to return (default 50)"
// @Success 200 {object} map[string]interface{} "Analysis history"
// @Failure 400 {object} types.ErrorResponse "Invalid query parameter"
// @Router /api/v1/players/{id}/analyses [get]
func GetAnalyses(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID, ok := types.RequireParam(c, "id")
		if !ok {
			return
		}

		opts := analyses.ListOptions{Limit: 50}
		if since := c.Query("since"); since != "" {
			parsed, err := time.Parse(time.RFC3339, since)
			if err != nil {
				types.SendBadRequest(c, "Invalid since, expected RFC3339 timestamp")
				return
			}
			opts.Since = parsed
		}
		if until := c.Query("until"); until != "" {
			parsed, err := time.Parse(time.RFC3339, until)
			if err != nil {
				types.SendBadRequest(c, "Invalid until, expected RFC3339 timestamp")
				return
			}
			opts.Until = parsed
		}
		if limit := c.Query("limit"); limit != "" {
			parsed, err := strconv.Atoi(limit)
			if err != nil || parsed <= 0 {
				types.SendBadRequest(c, "Invalid limit")
				return
			}
			opts.Limit = parsed
		}

		results, err := deps.AnalysisService.ListByPlayer(c.Request.Context(), playerID, opts)
		if err != nil {
			types.SendInternalError(c, err.Error())
			return
		}

		out := make([]types.AnalysisResponse, 0, len(results))
		for _, result := range results {
			out = append(out, types.NewAnalysisResponse(result))
		}
		c.JSON(http.StatusOK, gin.H{
			"analyses": out,
			"count":    len(out),
		})
	}
}
