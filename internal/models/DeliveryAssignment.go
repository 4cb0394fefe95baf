// internal/models/delivery_assignment.go
package models

import "gorm.io/gorm"

// DeliveryAssignment carries everything the driver app needs for one delivery,
// denormalized so it never has to join back through orders/restaurants.
type DeliveryAssignment struct {
	gorm.Model
	OrderID  uint `json:"order_id" gorm:"uniqueIndex"`
	DriverID uint `json:"driver_id" gorm:"index"`

	PickupLatitude  float64 `json:"pickup_latitude"`
	PickupLongitude float64 `json:"pickup_longitude"`
	PickupAddress   string  `json:"pickup_address"`

	DropLatitude  float64 `json:"drop_latitude"`
	DropLongitude float64 `json:"drop_longitude"`
	DropAddress   string  `json:"drop_address"`
	CustomerPhone string  `json:"customer_phone"`

	DistanceKm float64 `json:"distance_km"`
	EtaMinutes int     `json:"eta_minutes"`
	Status     string  `json:"status" gorm:"default:assigned"` // "assigned", "completed", "cancelled"
}
