package breakup

import (
	"fmt"
)

// SatType classifies a simulation participant.
type SatType uint8

const (
	// Spacecraft is an active or passive payload.
	Spacecraft SatType = iota
	// RocketBody is an upper stage or similar launcher hardware.
	RocketBody
	// Debris is a fragment.
	Debris
	// UnknownType is anything the catalogs cannot classify.
	UnknownType
)

// String implements the stringer interface.
func (t SatType) String() string {
	switch t {
	case Spacecraft:
		return "SPACECRAFT"
	case RocketBody:
		return "ROCKET_BODY"
	case Debris:
		return "DEBRIS"
	default:
		return "UNKNOWN"
	}
}

var stringToSatType = map[string]SatType{
	"SPACECRAFT":  Spacecraft,
	"SC":          Spacecraft,
	"PAY":         Spacecraft,
	"ROCKET_BODY": RocketBody,
	"RB":          RocketBody,
	"R/B":         RocketBody,
	"DEBRIS":      Debris,
	"DEB":         Debris,
	"UNKNOWN":     UnknownType,
	"UNK":         UnknownType,
}

// SatTypeFromString parses the catalog tokens, long and short forms alike.
func SatTypeFromString(s string) (SatType, error) {
	if t, found := stringToSatType[s]; found {
		return t, nil
	}
	return UnknownType, fmt.Errorf("satellite type could not be parsed from %q: %w", s, ErrParse)
}

// Satellite is one parent or fragment with identity, geometry and kinematics.
// The orbital elements view is cached and invalidated whenever position or
// velocity change. The entity is sole-owner: the cache carries no lock.
type Satellite struct {
	id               int64
	name             *string
	satType          SatType
	characteristicLength float64
	areaToMassRatio  float64
	mass             float64
	area             float64
	position         []float64
	velocity         []float64
	ejectionVelocity []float64

	elements      OrbitalElements
	elementsValid bool
}

// ID returns the NORAD-like catalog number.
func (s *Satellite) ID() int64 { return s.id }

// Name returns the satellite name, or the empty string.
func (s *Satellite) Name() string {
	if s.name == nil {
		return ""
	}
	return *s.name
}

// NameRef returns the shared name pointer.
func (s *Satellite) NameRef() *string { return s.name }

// Type returns the satellite classification.
func (s *Satellite) Type() SatType { return s.satType }

// CharacteristicLength returns L_c in meters.
func (s *Satellite) CharacteristicLength() float64 { return s.characteristicLength }

// AreaToMassRatio returns A/M in m^2/kg.
func (s *Satellite) AreaToMassRatio() float64 { return s.areaToMassRatio }

// Mass returns the mass in kg.
func (s *Satellite) Mass() float64 { return s.mass }

// Area returns the radar cross section in m^2.
func (s *Satellite) Area() float64 { return s.area }

// Position returns the cartesian position in meters.
func (s *Satellite) Position() []float64 { return s.position }

// Velocity returns the cartesian velocity in m/s.
func (s *Satellite) Velocity() []float64 { return s.velocity }

// EjectionVelocity returns the sampled ejection velocity of a fragment in m/s.
func (s *Satellite) EjectionVelocity() []float64 { return s.ejectionVelocity }

// SetID sets the catalog number.
func (s *Satellite) SetID(id int64) { s.id = id }

// SetName sets the shared name pointer.
func (s *Satellite) SetName(name *string) { s.name = name }

// SetType sets the classification.
func (s *Satellite) SetType(t SatType) { s.satType = t }

// SetCharacteristicLength sets L_c in meters.
func (s *Satellite) SetCharacteristicLength(lc float64) { s.characteristicLength = lc }

// SetAreaToMassRatio sets A/M in m^2/kg.
func (s *Satellite) SetAreaToMassRatio(aom float64) { s.areaToMassRatio = aom }

// SetMass sets the mass in kg.
func (s *Satellite) SetMass(m float64) { s.mass = m }

// SetArea sets the area in m^2.
func (s *Satellite) SetArea(a float64) { s.area = a }

// SetPosition sets the cartesian position and drops the elements cache.
func (s *Satellite) SetPosition(p []float64) {
	s.position = p
	s.elementsValid = false
}

// SetVelocity sets the cartesian velocity and drops the elements cache.
func (s *Satellite) SetVelocity(v []float64) {
	s.velocity = v
	s.elementsValid = false
}

// SetEjectionVelocity sets the ejection velocity. The elements cache stays
// valid since the base velocity is untouched.
func (s *Satellite) SetEjectionVelocity(v []float64) { s.ejectionVelocity = v }

// SetStateFromOrbitalElements recomputes position and velocity from the
// given element set and primes the cache with it.
func (s *Satellite) SetStateFromOrbitalElements(el OrbitalElements) {
	s.position, s.velocity = el.RV()
	s.elements = el
	s.elementsValid = true
}

// OrbitalElements returns the element view of the current state, from the
// cache when it is still valid.
func (s *Satellite) OrbitalElements() OrbitalElements {
	if s.elementsValid {
		return s.elements
	}
	s.elements = NewElementsFromRV(s.position, s.velocity)
	s.elementsValid = true
	return s.elements
}

// String implements the stringer interface.
func (s *Satellite) String() string {
	return fmt.Sprintf("Satellite{id: %d name: %s type: %s Lc: %f velocity: %v position: %v}",
		s.id, s.Name(), s.satType, s.characteristicLength, s.velocity, s.position)
}
