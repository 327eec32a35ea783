package scoring

import (
	"math"
	"testing"
	"time"

	"carpool/internal/domain"
	"carpool/internal/geo"
)

var baseTime = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func ride(id string, pickup, dropoff geo.Point, departure time.Time, pref domain.Preference) *domain.RideRequest {
	return &domain.RideRequest{
		ID:            id,
		UserID:        "user-" + id,
		Pickup:        pickup,
		Dropoff:       dropoff,
		DepartureTime: departure,
		Preference:    pref,
		Status:        domain.RideStatusPending,
	}
}

func TestMinutesBetween(t *testing.T) {
	t.Parallel()

	if got := MinutesBetween(baseTime, baseTime.Add(5*time.Minute)); got != 5 {
		t.Errorf("expected 5, got %f", got)
	}
	if got := MinutesBetween(baseTime.Add(90*time.Second), baseTime); got != 1.5 {
		t.Errorf("expected 1.5, got %f", got)
	}
	if got := MinutesBetween(baseTime, baseTime.Add(999*time.Microsecond)); got != 0 {
		t.Errorf("expected sub-millisecond difference to vanish, got %f", got)
	}
}

func TestPreferencesCompatible(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		a, b domain.Preference
		want bool
	}{
		{domain.PreferenceAny, domain.PreferenceAny, true},
		{domain.PreferenceAny, "female", true},
		{"male", domain.PreferenceAny, true},
		{"female", "female", true},
		{"female", "male", false},
		{"Female", "female", false},
	}
	for _, tc := range testCases {
		if got := PreferencesCompatible(tc.a, tc.b); got != tc.want {
			t.Errorf("PreferencesCompatible(%q, %q): expected %v, got %v", tc.a, tc.b, tc.want, got)
		}
	}
}

func TestScore_IdenticalRidesScoreMax(t *testing.T) {
	t.Parallel()

	a := ride("a", geo.Point{Lat: 1.0, Lng: 103.0}, geo.Point{Lat: 1.05, Lng: 103.05}, baseTime, domain.PreferenceAny)
	b := ride("b", a.Pickup, a.Dropoff, baseTime, "female")

	s := Score(a, b)
	if s.TotalScore != 100 || s.Percentage != 100 {
		t.Errorf("expected 100/100, got total=%f percentage=%d", s.TotalScore, s.Percentage)
	}
	if s.MaxScore != 100 {
		t.Errorf("expected max score 100, got %d", s.MaxScore)
	}
	if !s.Details.PreferenceMatch {
		t.Error("expected preference match to be recorded")
	}
}

func TestScore_ExampleScenario(t *testing.T) {
	t.Parallel()

	a := ride("a", geo.Point{Lat: 1.0000, Lng: 103.0000}, geo.Point{Lat: 1.0500, Lng: 103.0500}, baseTime, domain.PreferenceAny)
	b := ride("b", geo.Point{Lat: 1.0010, Lng: 103.0010}, geo.Point{Lat: 1.0490, Lng: 103.0510}, baseTime.Add(5*time.Minute), domain.PreferenceAny)

	s := Score(a, b)
	if s.Percentage < 90 || s.Percentage > 94 {
		t.Errorf("expected percentage in [90,94], got %d (total %f)", s.Percentage, s.TotalScore)
	}
	if s.Details.RouteOverlap < 0.99 {
		t.Errorf("expected near-complete overlap, got %f", s.Details.RouteOverlap)
	}
	if s.Details.TimeDiffMinutes != 5 {
		t.Errorf("expected 5 minute difference, got %f", s.Details.TimeDiffMinutes)
	}
	if s.Details.PickupDistanceKm <= 0 || s.Details.PickupDistanceKm > 0.2 {
		t.Errorf("unexpected pickup distance %f", s.Details.PickupDistanceKm)
	}
}

func TestScore_FarPickupsContributeNothing(t *testing.T) {
	t.Parallel()

	a := ride("a", geo.Point{Lat: 1.0, Lng: 103.0}, geo.Point{Lat: 1.05, Lng: 103.05}, baseTime, domain.PreferenceAny)
	// ~2.2 km north; everything else identical
	b := ride("b", geo.Point{Lat: 1.02, Lng: 103.0}, a.Dropoff, baseTime, domain.PreferenceAny)

	s := Score(a, b)
	if s.Details.PickupDistanceKm < ProximityCapKm {
		t.Fatalf("test setup: pickup distance %f should exceed cap", s.Details.PickupDistanceKm)
	}
	maxWithoutPickup := DropoffWeight + TimeWeight + OverlapWeight + PreferenceWeight
	if s.TotalScore > maxWithoutPickup {
		t.Errorf("expected total <= %f without pickup points, got %f", maxWithoutPickup, s.TotalScore)
	}
}

func TestScore_TimeBeyondCapContributesNothing(t *testing.T) {
	t.Parallel()

	a := ride("a", geo.Point{Lat: 1.0, Lng: 103.0}, geo.Point{Lat: 1.05, Lng: 103.05}, baseTime, domain.PreferenceAny)
	b := ride("b", a.Pickup, a.Dropoff, baseTime.Add(45*time.Minute), domain.PreferenceAny)

	s := Score(a, b)
	if s.TotalScore != 70 {
		t.Errorf("expected 70 without time points, got %f", s.TotalScore)
	}
}

func TestScore_IncompatiblePreference(t *testing.T) {
	t.Parallel()

	a := ride("a", geo.Point{Lat: 1.0, Lng: 103.0}, geo.Point{Lat: 1.05, Lng: 103.05}, baseTime, "female")
	b := ride("b", a.Pickup, a.Dropoff, baseTime, "male")

	s := Score(a, b)
	if s.TotalScore != 90 || s.Details.PreferenceMatch {
		t.Errorf("expected 90 and no preference match, got %f / %v", s.TotalScore, s.Details.PreferenceMatch)
	}
}

func TestScore_DegenerateTripStillScores(t *testing.T) {
	t.Parallel()

	p := geo.Point{Lat: 1.0, Lng: 103.0}
	a := ride("a", p, p, baseTime, domain.PreferenceAny)
	b := ride("b", p, p, baseTime, domain.PreferenceAny)

	s := Score(a, b)
	if s.Details.RouteOverlap != 0 {
		t.Errorf("expected overlap 0 for zero-length trip, got %f", s.Details.RouteOverlap)
	}
	if s.TotalScore != 80 {
		t.Errorf("expected 80, got %f", s.TotalScore)
	}
}

func TestScore_BoundedAndRounded(t *testing.T) {
	t.Parallel()

	a := ride("a", geo.Point{Lat: 1.0, Lng: 103.0}, geo.Point{Lat: 1.05, Lng: 103.05}, baseTime, domain.PreferenceAny)
	offsets := []float64{0, 0.0013, 0.004, 0.011, 0.03, 0.2, 2}
	for i, off := range offsets {
		b := ride("b",
			geo.Point{Lat: 1.0 + off, Lng: 103.0 - off},
			geo.Point{Lat: 1.05 - off, Lng: 103.05 + off/2},
			baseTime.Add(time.Duration(i*7)*time.Minute+time.Duration(i)*time.Second),
			domain.PreferenceAny)

		s := Score(a, b)
		if s.TotalScore < 0 || s.TotalScore > 100 {
			t.Errorf("offset %f: total %f outside [0,100]", off, s.TotalScore)
		}
		if s.TotalScore != math.Round(s.TotalScore*100)/100 {
			t.Errorf("offset %f: total %f not rounded to 2 decimals", off, s.TotalScore)
		}
		if s.Percentage != int(math.Round(s.TotalScore)) {
			t.Errorf("offset %f: percentage %d != round(%f)", off, s.Percentage, s.TotalScore)
		}
	}
}

func TestScore_AntipodalPickupsStayFinite(t *testing.T) {
	t.Parallel()

	a := ride("a", geo.Point{Lat: -55.2477621758065, Lng: 101.63231285355147}, geo.Point{Lat: -55.2, Lng: 101.7}, baseTime, domain.PreferenceAny)
	b := ride("b", geo.Point{Lat: 55.2477621758065, Lng: -78.36768714644853}, geo.Point{Lat: 55.3, Lng: -78.3}, baseTime, domain.PreferenceAny)

	s := Score(a, b)
	if math.IsNaN(s.TotalScore) || s.TotalScore < 0 || s.TotalScore > 100 {
		t.Fatalf("total %f outside [0,100]", s.TotalScore)
	}
	if s.Percentage < 0 || s.Percentage > 100 {
		t.Errorf("percentage %d outside [0,100]", s.Percentage)
	}
	if math.IsNaN(s.Details.RouteOverlap) {
		t.Error("route overlap is NaN")
	}
}
