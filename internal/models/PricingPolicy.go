// internal/models/pricing_policy.go
package models

import "gorm.io/gorm"

// PricingPolicy is per-city delivery pricing, owned by the admin surface.
// The dispatch service only reads it.
type PricingPolicy struct {
	gorm.Model
	CityID   uint    `json:"city_id" gorm:"uniqueIndex"`
	BaseFee  float64 `json:"base_fee"`
	PerKmFee float64 `json:"per_km_fee"`
	MinFee   float64 `json:"min_fee"`
	MaxFee   float64 `json:"max_fee"`
}
