package breakup

import (
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// SimulationType is the breakup kind declared by the configuration.
type SimulationType uint8

const (
	// SimulationUnknown lets the builder infer the kind from the parent count.
	SimulationUnknown SimulationType = iota
	// SimulationExplosion expects exactly one parent.
	SimulationExplosion
	// SimulationCollision expects exactly two parents.
	SimulationCollision
)

// String implements the stringer interface.
func (t SimulationType) String() string {
	switch t {
	case SimulationExplosion:
		return "EXPLOSION"
	case SimulationCollision:
		return "COLLISION"
	default:
		return "UNKNOWN"
	}
}

// SimulationTypeFromString parses the configuration tokens, long and short
// forms alike.
func SimulationTypeFromString(s string) (SimulationType, error) {
	switch s {
	case "EXPLOSION", "EX":
		return SimulationExplosion, nil
	case "COLLISION", "CO":
		return SimulationCollision, nil
	}
	return SimulationUnknown, fmt.Errorf("simulation type could not be parsed from %q: %w", s, ErrParse)
}

// BreakupBuilder assembles a runnable Breakup from the configuration and
// the loaded satellites.
type BreakupBuilder struct {
	logger log.Logger

	minimalCharacteristicLength float64
	simulationType              SimulationType
	currentMaxID                *int64
	idFilter                    map[int64]struct{}
	enforceMassConservation     bool
	satellites                  []Satellite
}

// NewBreakupBuilder returns a builder logging through the given logger.
func NewBreakupBuilder(logger log.Logger) *BreakupBuilder {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &BreakupBuilder{logger: logger}
}

// MinimalCharacteristicLength sets the sampling lower bound in meters.
func (b *BreakupBuilder) MinimalCharacteristicLength(lc float64) *BreakupBuilder {
	b.minimalCharacteristicLength = lc
	return b
}

// SimulationType declares the breakup kind.
func (b *BreakupBuilder) SimulationType(t SimulationType) *BreakupBuilder {
	b.simulationType = t
	return b
}

// CurrentMaxID pins the largest id in use. When unset the builder derives
// it from the full, unfiltered satellite list.
func (b *BreakupBuilder) CurrentMaxID(id int64) *BreakupBuilder {
	b.currentMaxID = &id
	return b
}

// IDFilter keeps only the satellites with the given ids.
func (b *BreakupBuilder) IDFilter(ids []int64) *BreakupBuilder {
	b.idFilter = make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		b.idFilter[id] = struct{}{}
	}
	return b
}

// EnforceMassConservation turns on the growth branch of the mass
// conservation step.
func (b *BreakupBuilder) EnforceMassConservation(enabled bool) *BreakupBuilder {
	b.enforceMassConservation = enabled
	return b
}

// Satellites sets the loaded input list.
func (b *BreakupBuilder) Satellites(sats []Satellite) *BreakupBuilder {
	b.satellites = sats
	return b
}

// Build validates the input cardinality against the declared kind and
// constructs the matching specialization.
func (b *BreakupBuilder) Build() (*Breakup, error) {
	maxID := b.deriveMaxID()
	filtered := b.applyFilter()

	var breakup *Breakup
	switch b.simulationType {
	case SimulationExplosion:
		if len(filtered) != 1 {
			return nil, fmt.Errorf("an explosion needs exactly 1 satellite, got %d: %w", len(filtered), ErrInputCardinality)
		}
		breakup = NewExplosion(filtered[0], b.minimalCharacteristicLength, maxID)
	case SimulationCollision:
		if len(filtered) != 2 {
			return nil, fmt.Errorf("a collision needs exactly 2 satellites, got %d: %w", len(filtered), ErrInputCardinality)
		}
		breakup = NewCollision(filtered[0], filtered[1], b.minimalCharacteristicLength, maxID)
	default:
		switch len(filtered) {
		case 1:
			level.Warn(b.logger).Log("msg", "simulation type unknown, inferring an explosion from one satellite")
			breakup = NewExplosion(filtered[0], b.minimalCharacteristicLength, maxID)
		case 2:
			level.Warn(b.logger).Log("msg", "simulation type unknown, inferring a collision from two satellites")
			breakup = NewCollision(filtered[0], filtered[1], b.minimalCharacteristicLength, maxID)
		default:
			return nil, fmt.Errorf("cannot infer a simulation type from %d satellites: %w", len(filtered), ErrInputCardinality)
		}
	}

	breakup.SetLogger(b.logger)
	breakup.SetEnforceMassConservation(b.enforceMassConservation)
	return breakup, nil
}

// deriveMaxID prefers the explicit configuration value and falls back to
// the largest id across the full input list.
func (b *BreakupBuilder) deriveMaxID() int64 {
	if b.currentMaxID != nil {
		return *b.currentMaxID
	}
	var maxID int64
	for i := range b.satellites {
		if id := b.satellites[i].ID(); id > maxID {
			maxID = id
		}
	}
	return maxID
}

// applyFilter keeps the satellites named by the id filter, order preserving.
func (b *BreakupBuilder) applyFilter() []Satellite {
	if b.idFilter == nil {
		return b.satellites
	}
	filtered := make([]Satellite, 0, len(b.satellites))
	for _, sat := range b.satellites {
		if _, keep := b.idFilter[sat.ID()]; keep {
			filtered = append(filtered, sat)
		}
	}
	return filtered
}
