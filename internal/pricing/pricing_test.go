package pricing

import (
	"testing"
	"time"

	"driver_dispatch/internal/models"
)

var testPolicy = models.PricingPolicy{
	CityID:   1,
	BaseFee:  49,
	PerKmFee: 10,
	MinFee:   29,
	MaxFee:   200,
}

func at(hhmm string) time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		panic(err)
	}
	return t
}

func rule(start, end string, multiplier float64, active bool) models.SurgeRule {
	return models.SurgeRule{
		CityID:     1,
		IsActive:   active,
		StartTime:  start,
		EndTime:    end,
		Multiplier: multiplier,
	}
}

func TestComputeNoSurge(t *testing.T) {
	q := Compute(testPolicy, nil, 5, at("10:00"))

	if q.DeliveryFee != 99 {
		t.Fatalf("fee = %f, want 99", q.DeliveryFee)
	}
	if q.SurgeMultiplier != 1.0 || q.IsSurging {
		t.Fatalf("unexpected surge: %+v", q)
	}
}

func TestComputeClampsWithoutSurge(t *testing.T) {
	cases := []struct {
		distanceKm float64
		want       float64
	}{
		{0, 49},     // base only
		{5, 99},     // 49 + 50
		{30, 200},   // 349 clamped to max
		{1000, 200}, // stays at max
	}

	for _, tc := range cases {
		q := Compute(testPolicy, nil, tc.distanceKm, at("12:00"))
		if q.DeliveryFee != tc.want {
			t.Fatalf("distance %f: fee %f, want %f", tc.distanceKm, q.DeliveryFee, tc.want)
		}
		if q.DeliveryFee < testPolicy.MinFee || q.DeliveryFee > testPolicy.MaxFee {
			t.Fatalf("unsurged fee %f escaped [%f, %f]", q.DeliveryFee, testPolicy.MinFee, testPolicy.MaxFee)
		}
	}
}

func TestComputeMinFeeFloor(t *testing.T) {
	cheap := models.PricingPolicy{CityID: 1, BaseFee: 5, PerKmFee: 2, MinFee: 29, MaxFee: 200}

	q := Compute(cheap, nil, 1, at("12:00"))
	if q.DeliveryFee != 29 {
		t.Fatalf("fee %f, want min fee 29", q.DeliveryFee)
	}
}

func TestComputeSurgeDoubles(t *testing.T) {
	rules := []models.SurgeRule{rule("11:00", "14:00", 2.0, true)}

	q := Compute(testPolicy, rules, 5, at("12:30"))
	if q.DeliveryFee != 198 {
		t.Fatalf("fee %f, want 198", q.DeliveryFee)
	}
	if !q.IsSurging || q.SurgeMultiplier != 2.0 {
		t.Fatalf("surge not applied: %+v", q)
	}
}

func TestSurgeAppliedAfterClamp(t *testing.T) {
	// 30 km clamps to the 200 max first; surge then pushes the final fee past
	// the cap. Locked-in behavior, see Compute's doc comment.
	rules := []models.SurgeRule{rule("00:00", "23:59", 1.5, true)}

	q := Compute(testPolicy, rules, 30, at("18:00"))
	if q.DeliveryFee != 300 {
		t.Fatalf("fee %f, want 300 (clamp-then-surge)", q.DeliveryFee)
	}
}

func TestSurgeNonStacking(t *testing.T) {
	rules := []models.SurgeRule{
		rule("11:00", "14:00", 1.2, true),
		rule("12:00", "13:00", 1.5, true),
	}

	m := SurgeMultiplier(rules, at("12:30"))
	if m != 1.5 {
		t.Fatalf("multiplier %f, want max rule 1.5 (no stacking)", m)
	}
}

func TestSurgeIgnoresInactiveAndOutOfWindow(t *testing.T) {
	rules := []models.SurgeRule{
		rule("11:00", "14:00", 3.0, false), // disabled
		rule("18:00", "21:00", 2.0, true),  // evening window
		rule("bad", "14:00", 5.0, true),    // unparseable start
	}

	if m := SurgeMultiplier(rules, at("12:30")); m != 1.0 {
		t.Fatalf("multiplier %f, want 1.0", m)
	}
	if m := SurgeMultiplier(rules, at("19:00")); m != 2.0 {
		t.Fatalf("multiplier %f, want 2.0", m)
	}
}

func TestSurgeWindowInclusiveAndOvernight(t *testing.T) {
	day := []models.SurgeRule{rule("11:00", "14:00", 1.3, true)}
	if m := SurgeMultiplier(day, at("11:00")); m != 1.3 {
		t.Fatalf("window start should be inclusive, got %f", m)
	}
	if m := SurgeMultiplier(day, at("14:00")); m != 1.3 {
		t.Fatalf("window end should be inclusive, got %f", m)
	}

	night := []models.SurgeRule{rule("22:00", "02:00", 1.8, true)}
	if m := SurgeMultiplier(night, at("23:30")); m != 1.8 {
		t.Fatalf("overnight window before midnight, got %f", m)
	}
	if m := SurgeMultiplier(night, at("01:00")); m != 1.8 {
		t.Fatalf("overnight window after midnight, got %f", m)
	}
	if m := SurgeMultiplier(night, at("12:00")); m != 1.0 {
		t.Fatalf("outside overnight window, got %f", m)
	}
}
