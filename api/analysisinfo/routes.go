package analysisinfo

import (
	"github.com/gin-gonic/gin"
	"github.com/simeon-code254/matobev-apps/api/types"
)

// RegisterRoutes registers analysis service info routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("/estimate", GetEstimate(deps))
}
