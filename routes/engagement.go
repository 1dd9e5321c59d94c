package routes

import (
	"vidquest/controllers"

	"github.com/gin-gonic/gin"
)

func StartWatchSessionRouteHandler(c *gin.Context) {
	controllers.StartWatchSession(c)
}

func WatchSessionHeartbeatRouteHandler(c *gin.Context) {
	controllers.WatchSessionHeartbeat(c)
}

func EndWatchSessionRouteHandler(c *gin.Context) {
	controllers.EndWatchSession(c)
}

func ClaimWatchBonusRouteHandler(c *gin.Context) {
	controllers.ClaimWatchBonus(c)
}
