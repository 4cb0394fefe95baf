package routes

import (
	"github.com/gin-gonic/gin"

	"driver_dispatch/internal/controllers"
	"driver_dispatch/internal/middleware"
)

func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.POST("/drivers", controllers.OnboardDriver)
		admin.GET("/drivers", controllers.ListDrivers)
		admin.PUT("/drivers/:id/approve", controllers.ApproveDriver)
	}
}
