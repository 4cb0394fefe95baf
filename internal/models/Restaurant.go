// internal/models/restaurant.go
package models

import "gorm.io/gorm"

type Restaurant struct {
	gorm.Model
	Name    string `json:"name"`
	CityID  uint   `json:"city_id" gorm:"index"`
	Address string `json:"address"`
	Phone   string `json:"phone"`

	// Pickup position. Nil means the restaurant has not set its location yet,
	// which blocks auto-assignment for its orders.
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (r *Restaurant) Located() bool {
	return r.Latitude != nil && r.Longitude != nil
}
