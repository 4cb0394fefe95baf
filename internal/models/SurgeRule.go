// internal/models/surge_rule.go
package models

import "gorm.io/gorm"

// SurgeRule is a per-city time-of-day fee multiplier window. Several rules may
// be active for the same city at once; the fee calculator takes the maximum
// matching multiplier, surge windows never stack.
type SurgeRule struct {
	gorm.Model
	CityID     uint    `json:"city_id" gorm:"index"`
	IsActive   bool    `json:"is_active" gorm:"index"`
	StartTime  string  `json:"start_time"` // "HH:MM", 24h
	EndTime    string  `json:"end_time"`   // "HH:MM", 24h
	Multiplier float64 `json:"multiplier"`
	Reason     string  `json:"reason"` // e.g. "lunch rush"
}
