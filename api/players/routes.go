package players

import (
	"github.com/gin-gonic/gin"
	"github.com/simeon-code254/matobev-apps/api/types"
)

// RegisterRoutes registers player-facing routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("/:id/card", GetCard(deps))
	router.GET("/:id/analyses", GetAnalyses(deps))
}
