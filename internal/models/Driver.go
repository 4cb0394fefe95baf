// internal/models/driver.go
package models

import (
	"time"

	"gorm.io/gorm"
)

type Driver struct {
	gorm.Model
	UserID          uint     `json:"user_id" gorm:"unique"` // identity-service user id
	Name            string   `json:"name"`
	Phone           string   `json:"phone"`
	CityID          uint     `json:"city_id" gorm:"index"`
	Status          string   `json:"status" gorm:"index;default:pending"` // "pending", "approved", "suspended"
	IsAvailable     bool     `json:"is_available" gorm:"index"`
	Rating          *float64 `json:"rating"` // 0-5 average, nil until first rating
	TotalDeliveries int      `json:"total_deliveries"`
	VehicleType     string   `json:"vehicle_type"` // "motorcycle", "bicycle", "car"

	// Last known position. Nil latitude/longitude means offline or never located.
	Latitude  *float64   `json:"latitude"`
	Longitude *float64   `json:"longitude"`
	Geohash   string     `json:"geohash" gorm:"index"`
	LastFixAt *time.Time `json:"last_fix_at"`
}

// Located reports whether the driver has a usable position fix.
func (d *Driver) Located() bool {
	return d.Latitude != nil && d.Longitude != nil
}
