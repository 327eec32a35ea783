package geo

import (
	"math"
	"testing"
)

func TestDistanceKm_Zero(t *testing.T) {
	points := []Point{
		{Lat: 0, Lng: 0},
		{Lat: 1.3521, Lng: 103.8198},
		{Lat: -33.8688, Lng: 151.2093},
		{Lat: 90, Lng: 0},
	}
	for _, p := range points {
		if d := DistanceKm(p, p); d != 0 {
			t.Errorf("DistanceKm(%v, %v) = %f, want 0", p, p, d)
		}
	}
}

func TestDistanceKm_Symmetric(t *testing.T) {
	pairs := [][2]Point{
		{{Lat: 1.0, Lng: 103.0}, {Lat: 1.05, Lng: 103.05}},
		{{Lat: 51.5074, Lng: -0.1278}, {Lat: 48.8566, Lng: 2.3522}},
		{{Lat: -10, Lng: 170}, {Lat: 10, Lng: -170}},
	}
	for _, p := range pairs {
		ab := DistanceKm(p[0], p[1])
		ba := DistanceKm(p[1], p[0])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("distance not symmetric: %f vs %f", ab, ba)
		}
	}
}

func TestDistanceKm_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want float64
		tol  float64
	}{
		{"one degree of latitude", Point{Lat: 0, Lng: 0}, Point{Lat: 1, Lng: 0}, 111.19, 0.01},
		{"london to paris", Point{Lat: 51.5074, Lng: -0.1278}, Point{Lat: 48.8566, Lng: 2.3522}, 343.5, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.a, tt.b)
			if math.Abs(got-tt.want) > tt.tol {
				t.Errorf("got %f km, want %f±%f", got, tt.want, tt.tol)
			}
		})
	}
}

func TestDistanceKm_MonotonicWithSeparation(t *testing.T) {
	origin := Point{Lat: 0, Lng: 0}
	prev := 0.0
	for i := 1; i <= 10; i++ {
		d := DistanceKm(origin, Point{Lat: float64(i) * 0.5, Lng: 0})
		if d <= prev {
			t.Fatalf("distance at step %d (%f) not greater than previous (%f)", i, d, prev)
		}
		prev = d
	}
}

func TestPointValid(t *testing.T) {
	tests := []struct {
		p    Point
		want bool
	}{
		{Point{Lat: 0, Lng: 0}, true},
		{Point{Lat: 90, Lng: 180}, true},
		{Point{Lat: -90, Lng: -180}, true},
		{Point{Lat: 90.1, Lng: 0}, false},
		{Point{Lat: 0, Lng: -180.5}, false},
		{Point{Lat: math.NaN(), Lng: 0}, false},
		{Point{Lat: 0, Lng: math.Inf(1)}, false},
	}
	for _, tt := range tests {
		if got := tt.p.Valid(); got != tt.want {
			t.Errorf("%v.Valid() = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestRouteOverlap_IdenticalTrips(t *testing.T) {
	trip := Trip{Pickup: Point{Lat: 1.0, Lng: 103.0}, Dropoff: Point{Lat: 1.05, Lng: 103.05}}
	if got := RouteOverlap(trip, trip); math.Abs(got-1) > 1e-9 {
		t.Errorf("identical trips overlap = %f, want 1", got)
	}
}

func TestRouteOverlap_DegenerateTrip(t *testing.T) {
	p := Point{Lat: 1.0, Lng: 103.0}
	a := Trip{Pickup: p, Dropoff: p}
	b := Trip{Pickup: Point{Lat: 1.01, Lng: 103.01}, Dropoff: Point{Lat: 1.05, Lng: 103.05}}
	if got := RouteOverlap(a, b); got != 0 {
		t.Errorf("zero-length trip overlap = %f, want 0", got)
	}
}

func TestRouteOverlap_Bounds(t *testing.T) {
	a := Trip{Pickup: Point{Lat: 1.0, Lng: 103.0}, Dropoff: Point{Lat: 1.05, Lng: 103.05}}
	others := []Trip{
		a,
		{Pickup: Point{Lat: 1.001, Lng: 103.001}, Dropoff: Point{Lat: 1.049, Lng: 103.051}},
		{Pickup: Point{Lat: 1.05, Lng: 103.05}, Dropoff: Point{Lat: 1.0, Lng: 103.0}},
		{Pickup: Point{Lat: 2.0, Lng: 104.0}, Dropoff: Point{Lat: 2.5, Lng: 104.5}},
		{Pickup: Point{Lat: -1.0, Lng: 100.0}, Dropoff: Point{Lat: 1.0, Lng: 103.0}},
	}
	for _, b := range others {
		got := RouteOverlap(a, b)
		if got < 0 || got > 1 {
			t.Errorf("RouteOverlap(%v, %v) = %f, outside [0,1]", a, b, got)
		}
	}
}

func TestRouteOverlap_FarAwayTripIsZero(t *testing.T) {
	a := Trip{Pickup: Point{Lat: 1.0, Lng: 103.0}, Dropoff: Point{Lat: 1.05, Lng: 103.05}}
	b := Trip{Pickup: Point{Lat: 3.0, Lng: 106.0}, Dropoff: Point{Lat: 3.1, Lng: 106.1}}
	if got := RouteOverlap(a, b); got != 0 {
		t.Errorf("far-away trip overlap = %f, want 0", got)
	}
}

func TestRouteOverlap_PickupOnTheWay(t *testing.T) {
	a := Trip{Pickup: Point{Lat: 0, Lng: 0}, Dropoff: Point{Lat: 0, Lng: 1}}
	onPath := Trip{Pickup: Point{Lat: 0, Lng: 0.5}, Dropoff: Point{Lat: 0, Lng: 1.5}}
	offPath := Trip{Pickup: Point{Lat: 0.3, Lng: 0.5}, Dropoff: Point{Lat: 0, Lng: 1.5}}

	on := RouteOverlap(a, onPath)
	off := RouteOverlap(a, offPath)
	if on < 0.999 {
		t.Errorf("pickup on the direct path overlap = %f, want ~1", on)
	}
	if off >= on {
		t.Errorf("off-path overlap %f should be lower than on-path %f", off, on)
	}
}

func TestDistanceKm_Antipodes(t *testing.T) {
	pairs := [][2]Point{
		{{Lat: -55.2477621758065, Lng: 101.63231285355147}, {Lat: 55.2477621758065, Lng: -78.36768714644853}},
		{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 180}},
		{{Lat: 90, Lng: 0}, {Lat: -90, Lng: 0}},
	}
	want := math.Pi * EarthRadiusKm
	for _, p := range pairs {
		got := DistanceKm(p[0], p[1])
		if math.IsNaN(got) || math.Abs(got-want) > 1e-6 {
			t.Errorf("DistanceKm(%v, %v) = %f, want %f", p[0], p[1], got, want)
		}
	}
}

func TestRouteOverlap_AntipodalPickups(t *testing.T) {
	a := Trip{
		Pickup:  Point{Lat: -55.2477621758065, Lng: 101.63231285355147},
		Dropoff: Point{Lat: -55.2, Lng: 101.7},
	}
	b := Trip{
		Pickup:  Point{Lat: 55.2477621758065, Lng: -78.36768714644853},
		Dropoff: Point{Lat: 55.3, Lng: -78.3},
	}
	for _, got := range []float64{RouteOverlap(a, b), RouteOverlap(b, a)} {
		if math.IsNaN(got) || got < 0 || got > 1 {
			t.Errorf("antipodal overlap = %f, outside [0,1]", got)
		}
	}
}
