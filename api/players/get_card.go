package players

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/simeon-code254/matobev-apps/api/types"
	"github.com/simeon-code254/matobev-apps/internal/services/playercards"
)

// GetCard returns a player's current derived stats card
// @Summary Get a player card
// @Description Returns the single current aggregate of a player's derived statistics,
// @Description reflecting the most recently completed analysis for that player.
// @Description Clients subscribe to the in-process hub for subsequent changes; this
// @Description endpoint provides the initial state.
// @Tags players
// @Produce json
// @Param id path string true "Player id"
// @Success 200 {object} types.PlayerCardResponse "Current card"
// @Failure 404 {object} types.ErrorResponse "No analyses completed for this player yet"
// @Router /api/v1/players/{id}/card [get]
func GetCard(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID, ok := types.RequireParam(c, "id")
		if !ok {
			return
		}

		card, err := deps.PlayerCardService.GetCard(c.Request.Context(), playerID)
		if err != nil {
			if errors.Is(err, playercards.ErrCardNotFound) {
				types.SendNotFound(c, "No player card yet, no completed analyses")
				return
			}
			types.SendInternalError(c, err.Error())
			return
		}

		c.JSON(http.StatusOK, types.NewPlayerCardResponse(card))
	}
}
