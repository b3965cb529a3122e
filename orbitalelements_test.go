package breakup

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func relEqual(a, b, rel float64) bool {
	return scalar.EqualWithinAbs(a, b, rel*math.Max(math.Abs(a), math.Abs(b)))
}

func TestElementsRVRoundTrip(t *testing.T) {
	cases := []struct {
		name             string
		a, e, i, Ω, ω, E float64
	}{
		{"iss-like", 6.796e6, 0.0006703, Deg2rad(51.6416), Deg2rad(247.4627), Deg2rad(130.5360), Deg2rad(324.9),
		},
		{"molniya-like", 2.6554e7, 0.72, Deg2rad(63.4), Deg2rad(90), Deg2rad(270), Deg2rad(10)},
		{"leo", 7.2e6, 0.05, Deg2rad(98.7), Deg2rad(12.3), Deg2rad(45.6), Deg2rad(200)},
	}
	for _, tc := range cases {
		el := NewOrbitalElements(tc.a, tc.e, tc.i, tc.Ω, tc.ω, tc.E)
		R, V := el.RV()
		back := NewElementsFromRV(R, V)
		want, got := el.AsArray(), back.AsArray()
		for j := range want {
			if !relEqual(want[j], got[j], 1e-4) {
				t.Fatalf("%s: element %d round tripped %.10f -> %.10f", tc.name, j, want[j], got[j])
			}
		}
	}
}

func TestElementsFromDegrees(t *testing.T) {
	el, err := NewElementsFromDegrees([6]float64{6.796e6, 0.001, 51.6, 247.5, 130.5, 30}, AnomalyEccentric, invalidEpoch)
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinAbs(el.Inclination(), Deg2rad(51.6), 1e-12) {
		t.Fatalf("inclination not converted: %f", el.Inclination())
	}
	if !scalar.EqualWithinAbs(el.EccentricAnomaly(), Deg2rad(30), 1e-12) {
		t.Fatalf("anomaly not converted: %f", el.EccentricAnomaly())
	}
}

func TestElementsFromTLEFields(t *testing.T) {
	raw := [6]float64{15.72125391, 0.0006703, 51.6416, 247.4627, 130.5360, 325.0288}
	el, err := NewElementsFromTLE(raw, Epoch{Year: 2008, Fraction: 264.51782528})
	if err != nil {
		t.Fatal(err)
	}
	if !relEqual(el.SemiMajorAxisM(), MeanMotionToSemiMajorAxis(15.72125391), 1e-12) {
		t.Fatalf("semi-major axis: %f", el.SemiMajorAxisM())
	}
	// The stored anomaly must invert back to the TLE's mean anomaly.
	if !scalar.EqualWithinAbs(el.MeanAnomaly(), Deg2rad(325.0288), 1e-10) {
		t.Fatalf("mean anomaly: %f", Rad2deg(el.MeanAnomaly()))
	}
	if !el.Epoch().IsValid() {
		t.Fatal("epoch should be valid")
	}
}

func TestAnomalyAccessors(t *testing.T) {
	e := 0.3
	ea := 1.2
	el := NewOrbitalElements(7e6, e, 0.5, 1.0, 2.0, ea)
	if got := el.MeanAnomaly(); !scalar.EqualWithinAbs(got, ea-e*math.Sin(ea), 1e-14) {
		t.Fatalf("mean anomaly = %f", got)
	}
	want := 2 * math.Atan(math.Sqrt((1+e)/(1-e))*math.Tan(ea/2))
	if got := el.TrueAnomaly(); !scalar.EqualWithinAbs(got, want, 1e-14) {
		t.Fatalf("true anomaly = %f", got)
	}
}

func TestEpochValidity(t *testing.T) {
	if invalidEpoch.IsValid() {
		t.Fatal("the invalid epoch must not be valid")
	}
	ep := Epoch{Year: 2008, Fraction: 264.51782528}
	if !ep.IsValid() {
		t.Fatal("a set epoch must be valid")
	}
	ts := ep.Time()
	if ts.Year() != 2008 || ts.Month() != 9 {
		t.Fatalf("epoch resolved to %s", ts)
	}
}
