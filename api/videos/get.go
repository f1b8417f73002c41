package videos

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/simeon-code254/matobev-apps/api/types"
	videosService "github.com/simeon-code254/matobev-apps/internal/services/videos"
)

// Get returns one video asset
// @Summary Get a video asset
// @Description Returns a stored video's metadata and, once an analysis has completed,
// @Description its derived stats blob.
// @Tags videos
// @Produce json
// @Param id path string true "Video id"
// @Success 200 {object} types.VideoResponse "Video asset"
// @Failure 404 {object} types.ErrorResponse "Video not found"
// @Router /api/v1/videos/{id} [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.RequireParam(c, "id")
		if !ok {
			return
		}

		video, err := deps.VideoService.GetVideo(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, videosService.ErrVideoNotFound) {
				types.SendNotFound(c, "Video not found")
				return
			}
			types.SendInternalError(c, err.Error())
			return
		}

		c.JSON(http.StatusOK, types.NewVideoResponse(video))
	}
}

// List returns a player's video assets
// @Summary List video assets
// @Description Lists a player's uploaded videos, newest first.
// @Tags videos
// @Produce json
// @Param player_id query string true "Owning player id"
// @Param limit query int false "Maximum results to return (default 50)"
// @Success 200 {object} map[string]interface{} "Videos"
// @Failure 400 {object} types.ErrorResponse "Missing player_id"
// @Router /api/v1/videos [get]
func List(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID := c.Query("player_id")
		if playerID == "" {
			types.SendBadRequest(c, "player_id is required")
			return
		}

		limit := 50
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				types.SendBadRequest(c, "Invalid limit")
				return
			}
			limit = parsed
		}

		videos, err := deps.VideoService.ListByPlayer(c.Request.Context(), playerID, limit)
		if err != nil {
			types.SendInternalError(c, err.Error())
			return
		}

		out := make([]types.VideoResponse, 0, len(videos))
		for _, video := range videos {
			out = append(out, types.NewVideoResponse(video))
		}
		c.JSON(http.StatusOK, gin.H{
			"videos": out,
			"count":  len(out),
		})
	}
}
