package breakup

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestMeanAnomalyRoundTrip(t *testing.T) {
	for _, e := range []float64{0.0006703, 0.1, 0.3, 0.7} {
		for ma := 0.1; ma < 2*math.Pi; ma += 0.5 {
			ea, err := MeanToEccentricAnomaly(ma, e)
			if err != nil {
				t.Fatalf("MA=%f e=%f did not converge: %s", ma, e, err)
			}
			back := EccentricToMeanAnomaly(ea, e)
			if !scalar.EqualWithinAbs(back, ma, 1e-14) {
				t.Fatalf("MA=%f e=%f round tripped to %.16f", ma, e, back)
			}
		}
	}
}

func TestTrueAnomalyRoundTrip(t *testing.T) {
	for _, e := range []float64{0.01, 0.2, 0.6} {
		for ta := 0.1; ta < 2*math.Pi; ta += 0.5 {
			ea := TrueToEccentricAnomaly(ta, e)
			back := EccentricToTrueAnomaly(ea, e)
			diff := math.Mod(back-ta+2*math.Pi, 2*math.Pi)
			if diff > math.Pi {
				diff -= 2 * math.Pi
			}
			if !scalar.EqualWithinAbs(diff, 0, 1e-14) {
				t.Fatalf("TA=%f e=%f round tripped to %.16f", ta, e, back)
			}
		}
	}
}

func TestMeanToEccentricAnomalyExhaustsIterations(t *testing.T) {
	// e = 1 makes the first Newton step 0/0, which never converges.
	_, err := MeanToEccentricAnomaly(0, 1)
	if !errors.Is(err, ErrConvergenceExhausted) {
		t.Fatalf("expected a convergence error, got %v", err)
	}
}

func TestMeanMotionToSemiMajorAxis(t *testing.T) {
	// 16 rev/day corresponds to a period of 90 min.
	a := MeanMotionToSemiMajorAxis(16)
	n := 2 * math.Pi * 16 / 86400
	if !scalar.EqualWithinAbs(n*n*a*a*a, EarthμM3S2, EarthμM3S2*1e-9) {
		t.Fatalf("a=%f does not satisfy n^2 a^3 = μ", a)
	}
	// The ISS mean motion lands just above 6700 km.
	iss := MeanMotionToSemiMajorAxis(15.72125391)
	if iss < 6.7e6 || iss > 6.8e6 {
		t.Fatalf("ISS semi-major axis out of range: %f m", iss)
	}
}
