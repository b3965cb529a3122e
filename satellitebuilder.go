package breakup

import (
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// SatelliteBuilder accumulates facts about one satellite and validates them
// on finalization. Required are an id, either mass or area, and either a
// cartesian velocity or a full element set. Position is optional since
// fragments inherit it.
type SatelliteBuilder struct {
	logger log.Logger
	sat    Satellite

	hasID, hasMass, hasVelocity, hasPosition bool
	err                                      error
}

// NewSatelliteBuilder returns a builder logging through the given logger.
func NewSatelliteBuilder(logger log.Logger) *SatelliteBuilder {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	b := &SatelliteBuilder{logger: logger}
	return b.Reset()
}

// Reset clears all accumulated facts.
func (b *SatelliteBuilder) Reset() *SatelliteBuilder {
	b.sat = Satellite{satType: Spacecraft}
	b.hasID = false
	b.hasMass = false
	b.hasVelocity = false
	b.hasPosition = false
	b.err = nil
	return b
}

// ID sets the catalog number.
func (b *SatelliteBuilder) ID(id int64) *SatelliteBuilder {
	b.sat.SetID(id)
	b.hasID = true
	return b
}

// Name sets the satellite name.
func (b *SatelliteBuilder) Name(name string) *SatelliteBuilder {
	b.sat.SetName(&name)
	return b
}

// Type sets the classification.
func (b *SatelliteBuilder) Type(t SatType) *SatelliteBuilder {
	b.sat.SetType(t)
	return b
}

// TypeFromString parses and sets the classification from a catalog token.
func (b *SatelliteBuilder) TypeFromString(s string) *SatelliteBuilder {
	t, err := SatTypeFromString(s)
	if err != nil && b.err == nil {
		b.err = err
	}
	b.sat.SetType(t)
	return b
}

// Mass sets the mass and derives L_c, area and A/M from the density relation.
func (b *SatelliteBuilder) Mass(mass float64) *SatelliteBuilder {
	lc := characteristicLengthFromMass(mass)
	area := circleArea(lc)
	b.sat.SetMass(mass)
	b.sat.SetCharacteristicLength(lc)
	b.sat.SetArea(area)
	b.sat.SetAreaToMassRatio(area / mass)
	b.hasMass = true
	return b
}

// MassByArea sets the area and derives L_c, mass and A/M from the density
// relation.
func (b *SatelliteBuilder) MassByArea(area float64) *SatelliteBuilder {
	lc := characteristicLengthFromArea(area)
	mass := sphereMass(lc)
	b.sat.SetArea(area)
	b.sat.SetCharacteristicLength(lc)
	b.sat.SetMass(mass)
	b.sat.SetAreaToMassRatio(area / mass)
	b.hasMass = true
	return b
}

// Velocity sets the cartesian velocity in m/s.
func (b *SatelliteBuilder) Velocity(v []float64) *SatelliteBuilder {
	b.sat.SetVelocity(v)
	b.hasVelocity = true
	return b
}

// Position sets the cartesian position in meters.
func (b *SatelliteBuilder) Position(p []float64) *SatelliteBuilder {
	b.sat.SetPosition(p)
	b.hasPosition = true
	return b
}

// OrbitalElements derives position and velocity from an element set.
func (b *SatelliteBuilder) OrbitalElements(el OrbitalElements) *SatelliteBuilder {
	b.sat.SetStateFromOrbitalElements(el)
	b.hasVelocity = true
	b.hasPosition = true
	return b
}

// Result validates the accumulated facts and returns the satellite.
func (b *SatelliteBuilder) Result() (Satellite, error) {
	if b.err != nil {
		return Satellite{}, b.err
	}
	if !b.hasID {
		return Satellite{}, fmt.Errorf("satellite %q has no ID: %w", b.sat.Name(), ErrIncompleteSatellite)
	}
	if !b.hasMass {
		return Satellite{}, fmt.Errorf("satellite %d has no mass or way to derive the mass: %w", b.sat.ID(), ErrIncompleteSatellite)
	}
	if !b.hasVelocity {
		return Satellite{}, fmt.Errorf("satellite %d has no velocity or way to derive the velocity: %w", b.sat.ID(), ErrIncompleteSatellite)
	}
	if !b.hasPosition {
		level.Info(b.logger).Log("msg", "satellite has no position, fine for breakup input", "id", b.sat.ID())
	}
	return b.sat, nil
}
