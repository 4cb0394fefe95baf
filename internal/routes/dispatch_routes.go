package routes

import (
	"github.com/gin-gonic/gin"

	"driver_dispatch/internal/controllers"
)

// DispatchRoutes exposes the single action-based dispatch endpoint. Vendor
// and admin dashboards call it directly; the deployment gateway decides who may.
func DispatchRoutes(r *gin.Engine) {
	r.POST("/dispatch", controllers.Dispatch)
}
