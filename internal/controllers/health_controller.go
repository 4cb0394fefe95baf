package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"driver_dispatch/internal/cache"
	"driver_dispatch/internal/config"
)

// Health pings both backing stores.
func Health(c *gin.Context) {
	ctx := c.Request.Context()

	sqlDB, err := config.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": "database unreachable: " + err.Error()})
		return
	}

	if err := cache.Rdb.Ping(ctx).Err(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": "redis unreachable: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
