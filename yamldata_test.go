package breakup

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestYAMLDataCartesianEntry(t *testing.T) {
	path := writeTempFile(t, "sats.yaml", `satellites:
  - id: 1
    name: Iridium 33
    satType: SPACECRAFT
    mass: 560
    velocity: [100, 0, 0]
    position: [6800000, 0, 0]
`)
	sats, err := NewYAMLDataReader(nil, path).Satellites()
	if err != nil {
		t.Fatal(err)
	}
	if len(sats) != 1 {
		t.Fatalf("read %d satellites", len(sats))
	}
	sat := sats[0]
	if sat.ID() != 1 || sat.Name() != "Iridium 33" || sat.Type() != Spacecraft {
		t.Fatalf("entry parsed to %s", sat.String())
	}
	if sat.Mass() != 560 {
		t.Fatalf("mass = %f", sat.Mass())
	}
	if !vectorsEqual(sat.Velocity(), []float64{100, 0, 0}) {
		t.Fatalf("velocity = %+v", sat.Velocity())
	}
	if !vectorsEqual(sat.Position(), []float64{6.8e6, 0, 0}) {
		t.Fatalf("position = %+v", sat.Position())
	}
}

func TestYAMLDataKeplerMap(t *testing.T) {
	path := writeTempFile(t, "sats.yaml", `satellites:
  - id: 2
    name: Kosmos 2251
    satType: SPACECRAFT
    mass: 950
    kepler:
      semi-major-axis: 7170000.0
      eccentricity: 0.0016
      inclination: 1.2540
      longitude-of-the-ascending-node: 0.3421
      argument-of-periapsis: 1.5470
      eccentric-anomaly: 0.0
      true-anomaly: 1.0
`)
	sats, err := NewYAMLDataReader(nil, path).Satellites()
	if err != nil {
		t.Fatal(err)
	}
	sat := sats[0]
	el := sat.OrbitalElements()
	if !relEqual(el.SemiMajorAxisM(), 7.17e6, 1e-9) {
		t.Fatalf("semi-major axis = %f", el.SemiMajorAxisM())
	}
	// The eccentric anomaly outranks the also present true anomaly.
	if !scalar.EqualWithinAbs(el.EccentricAnomaly(), 0, 1e-9) {
		t.Fatalf("eccentric anomaly = %f", el.EccentricAnomaly())
	}
	if norm(sat.Velocity()) == 0 || norm(sat.Position()) == 0 {
		t.Fatal("kepler entry must derive a cartesian state")
	}
}

func TestYAMLDataKeplerMapIncomplete(t *testing.T) {
	missing := writeTempFile(t, "missing.yaml", `satellites:
  - id: 3
    mass: 100
    kepler:
      semi-major-axis: 7170000.0
      eccentricity: 0.0016
      inclination: 1.2540
      argument-of-periapsis: 1.5470
      mean-anomaly: 0.5
`)
	if _, err := NewYAMLDataReader(nil, missing).Satellites(); !errors.Is(err, ErrParse) {
		t.Fatalf("a kepler block without the ascending node must fail, got %v", err)
	}

	noAnomaly := writeTempFile(t, "noanomaly.yaml", `satellites:
  - id: 3
    mass: 100
    kepler:
      semi-major-axis: 7170000.0
      eccentricity: 0.0016
      inclination: 1.2540
      longitude-of-the-ascending-node: 0.3421
      argument-of-periapsis: 1.5470
`)
	if _, err := NewYAMLDataReader(nil, noAnomaly).Satellites(); !errors.Is(err, ErrParse) {
		t.Fatalf("a kepler block without an anomaly must fail, got %v", err)
	}
}

func TestYAMLDataKeplerTLEPath(t *testing.T) {
	tle := writeTempFile(t, "iss.tle", issTLE)
	path := writeTempFile(t, "sats.yaml", `satellites:
  - id: 25544
    name: ISS
    satType: SPACECRAFT
    mass: 420000
    kepler: `+tle+`
`)
	sats, err := NewYAMLDataReader(nil, path).Satellites()
	if err != nil {
		t.Fatal(err)
	}
	el := sats[0].OrbitalElements()
	if !relEqual(el.SemiMajorAxisM(), MeanMotionToSemiMajorAxis(15.72125391), 1e-9) {
		t.Fatalf("semi-major axis = %f", el.SemiMajorAxisM())
	}

	wrongID := writeTempFile(t, "wrong.yaml", `satellites:
  - id: 99999
    mass: 100
    kepler: `+tle+`
`)
	if _, err := NewYAMLDataReader(nil, wrongID).Satellites(); !errors.Is(err, ErrParse) {
		t.Fatalf("an id missing from the TLE file must fail, got %v", err)
	}
}

func TestYAMLDataIncompleteEntry(t *testing.T) {
	path := writeTempFile(t, "sats.yaml", `satellites:
  - id: 4
    name: Adrift
    mass: 100
`)
	if _, err := NewYAMLDataReader(nil, path).Satellites(); !errors.Is(err, ErrIncompleteSatellite) {
		t.Fatalf("an entry without velocity must fail, got %v", err)
	}
}

func TestYAMLDataNoSequence(t *testing.T) {
	path := writeTempFile(t, "sats.yaml", "simulation:\n  foo: 1\n")
	if _, err := NewYAMLDataReader(nil, path).Satellites(); !errors.Is(err, ErrParse) {
		t.Fatalf("a file without satellites must fail, got %v", err)
	}
}
