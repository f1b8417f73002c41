package uploads

import (
	"github.com/gin-gonic/gin"
	"github.com/simeon-code254/matobev-apps/api/types"
)

// RegisterRoutes registers upload pipeline routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("", Create(deps))        // Start an ingestion run
	router.GET("", List(deps))           // List tracked runs
	router.GET("/:id", Get(deps))        // Poll run status
	router.DELETE("/:id", Delete(deps))  // Cancel a live run or drop a finished one
}
