package routes

import (
	"vidquest/controllers"

	"github.com/gin-gonic/gin"
)

func LikeVideoRouteHandler(c *gin.Context) {
	controllers.LikeVideo(c)
}

func GetVideoLikeRouteHandler(c *gin.Context) {
	controllers.GetVideoLike(c)
}

func GetLearningMaterialRouteHandler(c *gin.Context) {
	controllers.GetLearningMaterial(c)
}
