package breakup

import (
	"errors"
	"testing"
)

func TestSimulationTypeFromString(t *testing.T) {
	cases := map[string]SimulationType{
		"EXPLOSION": SimulationExplosion,
		"EX":        SimulationExplosion,
		"COLLISION": SimulationCollision,
		"CO":        SimulationCollision,
	}
	for token, want := range cases {
		got, err := SimulationTypeFromString(token)
		if err != nil {
			t.Fatalf("%q: %s", token, err)
		}
		if got != want {
			t.Fatalf("%q parsed to %s", token, got)
		}
	}
	if _, err := SimulationTypeFromString("DETONATION"); !errors.Is(err, ErrParse) {
		t.Fatalf("bad token must yield a parse error, got %v", err)
	}
}

func TestBuildRejectsWrongCardinality(t *testing.T) {
	one := []Satellite{testParent(t, 1, RocketBody, 100, []float64{0, 7500, 0})}
	two := append(one, testParent(t, 2, Spacecraft, 50, []float64{100, 0, 0}))

	_, err := NewBreakupBuilder(nil).
		MinimalCharacteristicLength(0.05).
		SimulationType(SimulationExplosion).
		Satellites(two).
		Build()
	if !errors.Is(err, ErrInputCardinality) {
		t.Fatalf("an explosion with two satellites must fail, got %v", err)
	}

	_, err = NewBreakupBuilder(nil).
		MinimalCharacteristicLength(0.05).
		SimulationType(SimulationCollision).
		Satellites(one).
		Build()
	if !errors.Is(err, ErrInputCardinality) {
		t.Fatalf("a collision with one satellite must fail, got %v", err)
	}

	_, err = NewBreakupBuilder(nil).
		MinimalCharacteristicLength(0.05).
		Satellites([]Satellite{}).
		Build()
	if !errors.Is(err, ErrInputCardinality) {
		t.Fatalf("nothing can be inferred from zero satellites, got %v", err)
	}
}

func TestBuildInfersTheKind(t *testing.T) {
	one := []Satellite{testParent(t, 1, RocketBody, 100, []float64{0, 7500, 0})}
	two := append(one, testParent(t, 2, Spacecraft, 50, []float64{100, 0, 0}))

	breakup, err := NewBreakupBuilder(nil).MinimalCharacteristicLength(0.05).Satellites(one).Build()
	if err != nil {
		t.Fatal(err)
	}
	if got := len(breakup.Input()); got != 1 {
		t.Fatalf("inferred explosion carries %d parents", got)
	}

	breakup, err = NewBreakupBuilder(nil).MinimalCharacteristicLength(0.05).Satellites(two).Build()
	if err != nil {
		t.Fatal(err)
	}
	if got := len(breakup.Input()); got != 2 {
		t.Fatalf("inferred collision carries %d parents", got)
	}
}

func TestBuildAppliesTheIDFilter(t *testing.T) {
	sats := []Satellite{
		testParent(t, 10, Spacecraft, 100, []float64{0, 7500, 0}),
		testParent(t, 11, Spacecraft, 50, []float64{100, 0, 0}),
		testParent(t, 12, RocketBody, 839, []float64{0, 0, 7500}),
	}
	breakup, err := NewBreakupBuilder(nil).
		MinimalCharacteristicLength(0.05).
		SimulationType(SimulationExplosion).
		IDFilter([]int64{12}).
		Satellites(sats).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	if got := breakup.Input()[0].ID(); got != 12 {
		t.Fatalf("filter kept id %d", got)
	}
	// The max id still derives from the unfiltered list.
	if got := breakup.CurrentMaxID(); got != 12 {
		t.Fatalf("derived max id = %d", got)
	}
}

func TestBuildHonorsExplicitMaxID(t *testing.T) {
	sats := []Satellite{testParent(t, 10, RocketBody, 100, []float64{0, 7500, 0})}
	breakup, err := NewBreakupBuilder(nil).
		MinimalCharacteristicLength(0.05).
		SimulationType(SimulationExplosion).
		CurrentMaxID(48000).
		Satellites(sats).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	if got := breakup.CurrentMaxID(); got != 48000 {
		t.Fatalf("pinned max id = %d", got)
	}
}
