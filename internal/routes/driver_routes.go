package routes

import (
	"github.com/gin-gonic/gin"

	"driver_dispatch/internal/controllers"
	"driver_dispatch/internal/middleware"
)

func DriverRoutes(r *gin.Engine) {
	driver := r.Group("/driver")
	driver.Use(middleware.RequireAuthWithRole("driver"))
	{
		driver.GET("/me", controllers.GetMyDriverProfile)
		driver.POST("/location", controllers.UpdateDriverLocation)
		driver.POST("/availability", controllers.UpdateDriverAvailability)
	}
}
