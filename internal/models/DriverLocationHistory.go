// internal/models/driver_location_history.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// DriverLocationHistory is an append-only trail of driver position fixes.
// Written on every location update, read only by ops/analytics.
type DriverLocationHistory struct {
	gorm.Model
	DriverID  uint    `json:"driver_id" gorm:"index"`
	Driver    Driver  `json:"-" gorm:"foreignKey:DriverID"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"` // GPS accuracy in meters
	Speed     float64 `json:"speed"`    // km/h as reported by the device

	RecordedAt time.Time `json:"recorded_at" gorm:"index"`
}
