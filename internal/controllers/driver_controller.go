package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"driver_dispatch/internal/cache"
	"driver_dispatch/internal/config"
	"driver_dispatch/internal/models"
)

// --- Helper structs for request bodies ---

type locationUpdateInput struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	Accuracy  float64  `json:"accuracy"`
	Speed     float64  `json:"speed"`
}

type availabilityInput struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

type onboardDriverInput struct {
	UserID      uint   `json:"user_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Phone       string `json:"phone"`
	CityID      uint   `json:"city_id" binding:"required"`
	VehicleType string `json:"vehicle_type"`
}

// driverForUser resolves the driver row behind the authenticated user.
func driverForUser(c *gin.Context) (*models.Driver, bool) {
	userID := uint(c.MustGet("user_id").(float64))

	var driver models.Driver
	if err := config.DB.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).First(&driver).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Driver profile not found"})
		} else {
			logrus.WithError(err).Error("driver lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return nil, false
	}
	return &driver, true
}

// UpdateDriverLocation records a position fix: row update, history append and
// a resync of the Redis supply mirror.
func UpdateDriverLocation(c *gin.Context) {
	driver, ok := driverForUser(c)
	if !ok {
		return
	}

	var input locationUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location payload: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	oldCell := driver.Geohash
	now := time.Now()

	driver.Latitude = input.Latitude
	driver.Longitude = input.Longitude
	driver.Geohash = cache.Cell(*input.Latitude, *input.Longitude)
	driver.LastFixAt = &now

	if err := config.DB.WithContext(ctx).Save(driver).Error; err != nil {
		logrus.WithError(err).Error("UpdateDriverLocation: save failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update location: " + err.Error()})
		return
	}

	history := models.DriverLocationHistory{
		DriverID:   driver.ID,
		Latitude:   *input.Latitude,
		Longitude:  *input.Longitude,
		Accuracy:   input.Accuracy,
		Speed:      input.Speed,
		RecordedAt: now,
	}
	if err := config.DB.WithContext(ctx).Create(&history).Error; err != nil {
		// History is analytics-only; the fix itself already landed.
		logrus.WithError(err).Warn("UpdateDriverLocation: history append failed")
	}

	if oldCell != driver.Geohash {
		cache.RemoveAvailableDriver(ctx, driver.ID, oldCell)
	}
	if driver.IsAvailable && driver.Status == "approved" {
		cache.AddAvailableDriver(ctx, driver)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Location updated", "driver": driver})
}

// UpdateDriverAvailability toggles the driver in or out of the dispatch pool.
func UpdateDriverAvailability(c *gin.Context) {
	driver, ok := driverForUser(c)
	if !ok {
		return
	}

	var input availabilityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid availability payload: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	driver.IsAvailable = *input.IsAvailable
	if err := config.DB.WithContext(ctx).Model(driver).
		Update("is_available", driver.IsAvailable).Error; err != nil {
		logrus.WithError(err).Error("UpdateDriverAvailability: update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update availability: " + err.Error()})
		return
	}

	if driver.IsAvailable && driver.Status == "approved" {
		cache.AddAvailableDriver(ctx, driver)
	} else {
		cache.RemoveAvailableDriver(ctx, driver.ID, driver.Geohash)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Availability updated", "driver": driver})
}

// GetMyDriverProfile returns the authenticated driver's own profile.
func GetMyDriverProfile(c *gin.Context) {
	driver, ok := driverForUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver": driver})
}

// --- Admin surface ---

// OnboardDriver registers a new driver in "pending" status.
func OnboardDriver(c *gin.Context) {
	var input onboardDriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid driver input: " + err.Error()})
		return
	}

	driver := models.Driver{
		UserID:      input.UserID,
		Name:        input.Name,
		Phone:       input.Phone,
		CityID:      input.CityID,
		VehicleType: input.VehicleType,
		Status:      "pending",
	}
	if err := config.DB.WithContext(c.Request.Context()).Create(&driver).Error; err != nil {
		logrus.WithError(err).Error("OnboardDriver: create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create driver: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"driver": driver})
}

// ApproveDriver flips a pending driver to approved, making them dispatchable
// once they go available with a location fix.
func ApproveDriver(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid driver ID format"})
		return
	}

	ctx := c.Request.Context()
	var driver models.Driver
	if err := config.DB.WithContext(ctx).First(&driver, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return
	}

	driver.Status = "approved"
	if err := config.DB.WithContext(ctx).Save(&driver).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve driver: " + err.Error()})
		return
	}

	if driver.IsAvailable {
		cache.AddAvailableDriver(ctx, &driver)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Driver approved", "driver": driver})
}

// ListDrivers returns all drivers, optionally filtered by city.
func ListDrivers(c *gin.Context) {
	q := config.DB.WithContext(c.Request.Context())
	if cityStr := c.Query("city_id"); cityStr != "" {
		cityID, err := strconv.ParseUint(cityStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid city_id"})
			return
		}
		q = q.Where("city_id = ?", uint(cityID))
	}

	var drivers []models.Driver
	if err := q.Order("id").Find(&drivers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing drivers: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": drivers})
}
