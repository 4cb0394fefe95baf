// Package pricing computes delivery-fee quotes from per-city policies and
// time-of-day surge rules.
package pricing

import (
	"math"
	"time"

	"driver_dispatch/internal/models"
)

// Fallback policy for cities the admin surface has not priced yet.
const (
	DefaultBaseFee  = 49.0
	DefaultPerKmFee = 10.0
	DefaultMinFee   = 29.0
	DefaultMaxFee   = 200.0
)

// Quote is one delivery-fee computation result.
type Quote struct {
	DeliveryFee     float64 `json:"delivery_fee"`
	SurgeMultiplier float64 `json:"surge_multiplier"`
	IsSurging       bool    `json:"is_surging"`
}

// DefaultPolicy returns the fallback pricing for a city without a stored policy.
func DefaultPolicy(cityID uint) models.PricingPolicy {
	return models.PricingPolicy{
		CityID:   cityID,
		BaseFee:  DefaultBaseFee,
		PerKmFee: DefaultPerKmFee,
		MinFee:   DefaultMinFee,
		MaxFee:   DefaultMaxFee,
	}
}

// Compute prices a delivery of distanceKm under the given policy and surge
// rules at the wall-clock instant now.
//
// The base fee is clamped to [MinFee, MaxFee] BEFORE the surge multiplier is
// applied, so a surging fee may exceed MaxFee. That matches the billing
// behavior customers have been seeing since launch; re-clamping after surge
// is an open product question, don't change the order here unilaterally.
func Compute(policy models.PricingPolicy, rules []models.SurgeRule, distanceKm float64, now time.Time) Quote {
	fee := policy.BaseFee + distanceKm*policy.PerKmFee
	fee = math.Min(math.Max(fee, policy.MinFee), policy.MaxFee)

	multiplier := SurgeMultiplier(rules, now)
	fee *= multiplier

	return Quote{
		DeliveryFee:     math.Round(fee*100) / 100,
		SurgeMultiplier: multiplier,
		IsSurging:       multiplier > 1.0,
	}
}

// SurgeMultiplier returns the effective multiplier at the instant now: the
// maximum among all active rules whose window covers now, 1.0 when none
// match. Overlapping windows never stack.
func SurgeMultiplier(rules []models.SurgeRule, now time.Time) float64 {
	nowMinutes := now.Hour()*60 + now.Minute()

	multiplier := 1.0
	for _, rule := range rules {
		if !rule.IsActive || rule.Multiplier <= 0 {
			continue
		}
		start, okStart := parseClock(rule.StartTime)
		end, okEnd := parseClock(rule.EndTime)
		if !okStart || !okEnd {
			continue
		}
		if inWindow(nowMinutes, start, end) && rule.Multiplier > multiplier {
			multiplier = rule.Multiplier
		}
	}
	return multiplier
}

// inWindow checks an inclusive [start, end] time-of-day window, wrapping
// midnight when start > end (e.g. 22:00-02:00).
func inWindow(now, start, end int) bool {
	if start <= end {
		return now >= start && now <= end
	}
	return now >= start || now <= end
}

// parseClock parses "HH:MM" into minutes since midnight.
func parseClock(s string) (int, bool) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
