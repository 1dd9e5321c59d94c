package routes

import (
	"vidquest/controllers"

	"github.com/gin-gonic/gin"
)

func ReportActionRouteHandler(c *gin.Context) {
	controllers.ReportAction(c)
}

func GetProgressRouteHandler(c *gin.Context) {
	controllers.GetProgress(c)
}

func GetAchievementsRouteHandler(c *gin.Context) {
	controllers.GetAchievements(c)
}

func GetLeaderboardRouteHandler(c *gin.Context) {
	controllers.GetLeaderboard(c)
}
