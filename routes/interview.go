package routes

import (
	"mockmate/controllers"

	"github.com/gin-gonic/gin"
)

// SetupInterviewRoutes sets up the interview generation and read routes
func SetupInterviewRoutes(router *gin.RouterGroup) {
	interviews := router.Group("/api/interviews")
	{
		interviews.POST("/generate", controllers.GenerateInterview)
		interviews.GET("/latest", controllers.GetLatestInterviews)
		interviews.GET("/:id", controllers.GetInterview)
		interviews.GET("", controllers.GetUserInterviews)
	}
}
