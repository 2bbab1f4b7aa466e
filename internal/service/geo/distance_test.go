package geo

import (
	"math"
	"testing"
)

func TestDistanceSamePoint(t *testing.T) {
	d, err := DistanceMeters(35.7031509, 139.7745439, 35.7031509, 139.7745439)
	if err != nil {
		t.Fatal(err)
	}
	if d != 0 {
		t.Errorf("distance between identical points = %f, want 0", d)
	}
}

func TestDistanceOneDegreeLongitudeAtEquator(t *testing.T) {
	// One degree of longitude on the equator is about 111.195 km.
	d, err := DistanceMeters(0, 0, 0, 1)
	if err != nil {
		t.Fatal(err)
	}

	want := 111195.0
	if math.Abs(d-want)/want > 0.01 {
		t.Errorf("distance (0,0)-(0,1) = %f m, want %f m within 1%%", d, want)
	}
}

func TestDistanceSymmetry(t *testing.T) {
	a, err := DistanceMeters(1.0, 1.0, 1.00001, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	b, err := DistanceMeters(1.00001, 1.0, 1.0, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("distance is not symmetric: %f != %f", a, b)
	}

	// ~1.1 meters for a 0.00001 degree latitude offset.
	if a < 1.0 || a > 1.3 {
		t.Errorf("distance for 0.00001 degree offset = %f m, want ~1.1 m", a)
	}
}

func TestDistanceRejectsNonFiniteInput(t *testing.T) {
	cases := [][4]float64{
		{math.NaN(), 0, 0, 0},
		{0, math.Inf(1), 0, 0},
		{0, 0, math.NaN(), 0},
		{0, 0, 0, math.Inf(-1)},
	}

	for _, c := range cases {
		if _, err := DistanceMeters(c[0], c[1], c[2], c[3]); err == nil {
			t.Errorf("DistanceMeters(%v) accepted non-finite input", c)
		}
	}
}
