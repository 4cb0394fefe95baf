// Package dispatch implements the driver scoring engine and candidate
// ranking used by both manual driver selection and auto-assignment.
package dispatch

import (
	"math"
	"sort"

	"driver_dispatch/internal/config"
	"driver_dispatch/internal/geo"
	"driver_dispatch/internal/models"
)

// Weight vector for the combined score. Weights sum to 1 so the total stays
// in [0,1].
const (
	WeightDistance   = 0.4
	WeightIdle       = 0.2
	WeightRating     = 0.2
	WeightAcceptance = 0.2
)

// AssignThreshold is the floor below which auto-assign refuses to pick a
// driver at all (e.g. every candidate far outside the scoring radius).
const AssignThreshold = 0.1

const (
	defaultMaxDistanceKm = 10.0
	defaultRating        = 4.0

	// Idle and acceptance are fixed placeholders until the driver history
	// pipeline backfills real idle-time and accept-rate figures.
	defaultIdleScore       = 0.5
	defaultAcceptanceScore = 0.7
)

// Config carries the tunable scoring inputs. Zero value is not usable; build
// one with DefaultConfig or ConfigFromEnv.
type Config struct {
	MaxDistanceKm   float64
	DefaultRating   float64
	IdleScore       float64
	AcceptanceScore float64
}

func DefaultConfig() Config {
	return Config{
		MaxDistanceKm:   defaultMaxDistanceKm,
		DefaultRating:   defaultRating,
		IdleScore:       defaultIdleScore,
		AcceptanceScore: defaultAcceptanceScore,
	}
}

// ConfigFromEnv returns DefaultConfig overridden by DISPATCH_* env vars.
func ConfigFromEnv() Config {
	return Config{
		MaxDistanceKm:   config.EnvFloat("DISPATCH_MAX_DISTANCE_KM", defaultMaxDistanceKm),
		DefaultRating:   config.EnvFloat("DISPATCH_DEFAULT_RATING", defaultRating),
		IdleScore:       config.EnvFloat("DISPATCH_IDLE_SCORE", defaultIdleScore),
		AcceptanceScore: config.EnvFloat("DISPATCH_ACCEPTANCE_SCORE", defaultAcceptanceScore),
	}
}

// Score is one scored candidate. Sub-scores and the total are rounded to two
// decimals for storage; ranking uses the unrounded total kept internally.
type Score struct {
	Driver *models.Driver

	DistanceKm      float64
	EtaMinutes      int
	DistanceScore   float64
	IdleScore       float64
	RatingScore     float64
	AcceptanceScore float64
	TotalScore      float64

	rawTotal float64
}

// ScoreDriver computes the weighted multi-factor score of one candidate
// against the pickup point. The caller guarantees the driver is located.
func ScoreDriver(cfg Config, driver *models.Driver, originLat, originLng float64) Score {
	distanceKm := geo.DistanceKm(*driver.Latitude, *driver.Longitude, originLat, originLng)

	distanceScore := clamp01(1 - distanceKm/cfg.MaxDistanceKm)

	rating := cfg.DefaultRating
	if driver.Rating != nil {
		rating = *driver.Rating
	}
	ratingScore := clamp01(rating / 5)

	idleScore := clamp01(cfg.IdleScore)
	acceptanceScore := clamp01(cfg.AcceptanceScore)

	// Combine on unrounded values; round only the stored copies.
	total := WeightDistance*distanceScore +
		WeightIdle*idleScore +
		WeightRating*ratingScore +
		WeightAcceptance*acceptanceScore

	return Score{
		Driver:          driver,
		DistanceKm:      distanceKm,
		EtaMinutes:      geo.ETAMinutes(distanceKm),
		DistanceScore:   round2(distanceScore),
		IdleScore:       round2(idleScore),
		RatingScore:     round2(ratingScore),
		AcceptanceScore: round2(acceptanceScore),
		TotalScore:      round2(total),
		rawTotal:        total,
	}
}

// Rank scores every candidate and orders them best-first. The sort is stable
// so candidates with equal scores keep their fetch order, which the caller
// pins with an ORDER BY; repeated calls over the same set always produce the
// same ranking.
func Rank(cfg Config, drivers []models.Driver, originLat, originLng float64) []Score {
	scores := make([]Score, 0, len(drivers))
	for i := range drivers {
		scores = append(scores, ScoreDriver(cfg, &drivers[i], originLat, originLng))
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].rawTotal > scores[j].rawTotal
	})

	return scores
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
