package routes

import (
	"mockmate/controllers"

	"github.com/gin-gonic/gin"
)

// SetupFeedbackRoutes sets up the feedback creation and read routes
func SetupFeedbackRoutes(router *gin.RouterGroup) {
	feedback := router.Group("/api/feedback")
	{
		feedback.POST("/create", controllers.CreateFeedback)
		feedback.GET("/:interviewId", controllers.GetFeedback)
	}
}
