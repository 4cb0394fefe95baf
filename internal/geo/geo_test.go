package geo

import (
	"math"
	"testing"
)

func TestDistanceSymmetry(t *testing.T) {
	points := [][4]float64{
		{14.5995, 120.9842, 14.6091, 121.0223},
		{0, 0, 0, 180},
		{-33.8688, 151.2093, 51.5074, -0.1278},
		{14.5995, 120.9842, 14.5995, 120.9842},
	}

	for _, p := range points {
		ab := DistanceKm(p[0], p[1], p[2], p[3])
		ba := DistanceKm(p[2], p[3], p[0], p[1])
		if math.Abs(ab-ba) > 1e-9 {
			t.Fatalf("distance not symmetric: %f vs %f", ab, ba)
		}
	}
}

func TestDistanceZero(t *testing.T) {
	if d := DistanceKm(14.5995, 120.9842, 14.5995, 120.9842); d != 0 {
		t.Fatalf("distance to self should be 0, got %f", d)
	}
}

func TestDistanceManilaSample(t *testing.T) {
	// Ermita to Ortigas, roughly 4.2 km great-circle.
	d := DistanceKm(14.5995, 120.9842, 14.6091, 121.0223)
	if d < 3.5 || d > 4.6 {
		t.Fatalf("unexpected Manila sample distance: %f", d)
	}
}

func TestETAMinutes(t *testing.T) {
	cases := []struct {
		distanceKm float64
		want       int
	}{
		{0, 0},
		{25, 60},
		{5, 12},
		{4.1, 10},   // 9.84 rounds up
		{0.01, 1},   // any movement costs at least a minute
		{12.5, 30},
	}

	for _, tc := range cases {
		if got := ETAMinutes(tc.distanceKm); got != tc.want {
			t.Fatalf("ETAMinutes(%f) = %d, want %d", tc.distanceKm, got, tc.want)
		}
	}
}
