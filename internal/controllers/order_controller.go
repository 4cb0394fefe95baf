package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"gorm.io/gorm"

	"driver_dispatch/internal/config"
	"driver_dispatch/internal/models"
)

// routePreview renders the pickup-to-drop leg as a GeoJSON LineString for
// map display. Returns nil when either endpoint is unknown.
func routePreview(order *models.Order) json.RawMessage {
	if !order.Restaurant.Located() || order.DropLatitude == nil || order.DropLongitude == nil {
		return nil
	}

	line := geom.NewLineStringFlat(geom.XY, []float64{
		*order.Restaurant.Longitude, *order.Restaurant.Latitude,
		*order.DropLongitude, *order.DropLatitude,
	})
	b, err := gjson.Marshal(line)
	if err != nil {
		logrus.WithError(err).Warn("routePreview: geojson marshal failed")
		return nil
	}
	return b
}

// GetOrder returns an order with its assignment (when one exists) and a
// GeoJSON route preview. Read-only tracking aid for vendor/customer UIs.
func GetOrder(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return
	}

	ctx := c.Request.Context()
	var order models.Order
	if err := config.DB.WithContext(ctx).Preload("Restaurant").First(&order, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			logrus.WithError(err).Error("GetOrder: lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	resp := gin.H{"order": order}
	if preview := routePreview(&order); preview != nil {
		resp["route_geojson"] = preview
	}

	var assignment models.DeliveryAssignment
	err = config.DB.WithContext(ctx).Where("order_id = ?", order.ID).First(&assignment).Error
	switch {
	case err == nil:
		resp["assignment"] = assignment
	case errors.Is(err, gorm.ErrRecordNotFound):
		// not dispatched yet
	default:
		logrus.WithError(err).Error("GetOrder: assignment lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
