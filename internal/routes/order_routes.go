package routes

import (
	"github.com/gin-gonic/gin"

	"driver_dispatch/internal/controllers"
)

func OrderRoutes(r *gin.Engine) {
	r.GET("/orders/:id", controllers.GetOrder)
}
