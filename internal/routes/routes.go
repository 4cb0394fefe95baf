package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"driver_dispatch/internal/controllers"
)

func SetupRouter() *gin.Engine {
	r := gin.New()

	// Middleware must be in place before any route is registered.
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	r.GET("/health", controllers.Health)

	DispatchRoutes(r)
	DriverRoutes(r)
	AdminRoutes(r)
	OrderRoutes(r)

	return r
}
