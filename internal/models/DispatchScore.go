// internal/models/dispatch_score.go
package models

import "gorm.io/gorm"

// DispatchScore is an immutable audit row per (driver, order) scoring attempt.
// Only WasAssigned is ever flipped after insert.
type DispatchScore struct {
	gorm.Model
	OrderID  uint `json:"order_id" gorm:"index"`
	DriverID uint `json:"driver_id" gorm:"index"`

	DistanceScore   float64 `json:"distance_score"`
	IdleScore       float64 `json:"idle_score"`
	RatingScore     float64 `json:"rating_score"`
	AcceptanceScore float64 `json:"acceptance_score"`
	TotalScore      float64 `json:"total_score"`

	DistanceKm  float64 `json:"distance_km"`
	WasAssigned bool    `json:"was_assigned" gorm:"index"`
}
