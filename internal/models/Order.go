// internal/models/order.go
package models

import "gorm.io/gorm"

// Order statuses relevant to dispatch. Later transitions (picked_up,
// delivered, cancelled) are written by the delivery-tracking service.
const (
	OrderStatusCreated   = "created"
	OrderStatusAssigned  = "assigned"
	OrderStatusPickedUp  = "picked_up"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	gorm.Model
	RestaurantID   uint       `json:"restaurant_id" gorm:"index"`
	Restaurant     Restaurant `json:"restaurant" gorm:"foreignKey:RestaurantID"`
	CustomerUserID uint       `json:"customer_user_id" gorm:"index"`
	CustomerPhone  string     `json:"customer_phone"`

	DropLatitude  *float64 `json:"drop_latitude"`
	DropLongitude *float64 `json:"drop_longitude"`
	DropAddress   string   `json:"drop_address"`

	Status   string `json:"status" gorm:"index;default:created"`
	DriverID *uint  `json:"driver_id" gorm:"index"` // nil until assigned

	DistanceKm  float64 `json:"distance_km"`
	EtaMinutes  int     `json:"eta_minutes"`
	DeliveryFee float64 `json:"delivery_fee"`
}
