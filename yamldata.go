package breakup

import (
	"fmt"
	"strings"

	"github.com/go-kit/log"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// YAMLDataReader extracts satellites from a YAML file with a top level
// `satellites` sequence. Each entry may carry id, name, satType, mass,
// area, velocity, position and a kepler block, where the kepler block is
// either a nested map of orbital elements in radians or a path to a TLE
// file resolved over the entry id.
type YAMLDataReader struct {
	logger   log.Logger
	filepath string
}

// NewYAMLDataReader returns a reader for the given file.
func NewYAMLDataReader(logger log.Logger, filepath string) *YAMLDataReader {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &YAMLDataReader{logger: logger, filepath: filepath}
}

// Satellites parses the file and returns the satellites in file order.
func (r *YAMLDataReader) Satellites() ([]Satellite, error) {
	v := viper.New()
	v.SetConfigFile(r.filepath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading YAML file %s: %w", r.filepath, ErrInputIO)
	}

	entries, ok := v.Get("satellites").([]interface{})
	if !ok {
		return nil, fmt.Errorf("YAML file %s has no satellites sequence: %w", r.filepath, ErrParse)
	}

	builder := NewSatelliteBuilder(r.logger)
	satellites := make([]Satellite, 0, len(entries))
	for _, raw := range entries {
		sat, err := r.parseSatellite(builder, lowercaseKeys(cast.ToStringMap(raw)))
		if err != nil {
			return nil, err
		}
		satellites = append(satellites, sat)
	}
	return satellites, nil
}

func (r *YAMLDataReader) parseSatellite(builder *SatelliteBuilder, entry map[string]interface{}) (Satellite, error) {
	builder.Reset()
	var id int64
	if raw, present := entry["id"]; present {
		id = cast.ToInt64(raw)
		builder.ID(id)
	}
	if raw, present := entry["name"]; present {
		builder.Name(cast.ToString(raw))
	}
	if raw, present := entry["sattype"]; present {
		builder.TypeFromString(cast.ToString(raw))
	}
	if raw, present := entry["mass"]; present {
		builder.Mass(cast.ToFloat64(raw))
	}
	if raw, present := entry["area"]; present {
		builder.MassByArea(cast.ToFloat64(raw))
	}
	if raw, present := entry["velocity"]; present {
		builder.Velocity(toVector3(raw))
	}
	if raw, present := entry["position"]; present {
		builder.Position(toVector3(raw))
	}
	if raw, present := entry["kepler"]; present {
		if tleFilepath, scalar := raw.(string); scalar {
			if err := r.parseKeplerTLE(builder, id, tleFilepath); err != nil {
				return Satellite{}, err
			}
		} else if kepler := cast.ToStringMap(raw); len(kepler) > 0 {
			if err := r.parseKeplerMap(builder, lowercaseKeys(kepler)); err != nil {
				return Satellite{}, err
			}
		}
	}
	return builder.Result()
}

// parseKeplerMap reads the nested element map. All angles are radians.
// When several anomalies are present the eccentric one wins over the mean
// one, which wins over the true one.
func (r *YAMLDataReader) parseKeplerMap(builder *SatelliteBuilder, kepler map[string]interface{}) error {
	required := [5]string{
		"semi-major-axis",
		"eccentricity",
		"inclination",
		"longitude-of-the-ascending-node",
		"argument-of-periapsis",
	}
	var raw [6]float64
	for i, tag := range required {
		value, present := kepler[tag]
		if !present {
			return fmt.Errorf("YAML file %s: kepler block misses %s: %w", r.filepath, tag, ErrParse)
		}
		raw[i] = cast.ToFloat64(value)
	}

	var anomalyType AnomalyType
	switch {
	case kepler["eccentric-anomaly"] != nil:
		raw[5] = cast.ToFloat64(kepler["eccentric-anomaly"])
		anomalyType = AnomalyEccentric
	case kepler["mean-anomaly"] != nil:
		raw[5] = cast.ToFloat64(kepler["mean-anomaly"])
		anomalyType = AnomalyMean
	case kepler["true-anomaly"] != nil:
		raw[5] = cast.ToFloat64(kepler["true-anomaly"])
		anomalyType = AnomalyTrue
	default:
		return fmt.Errorf("YAML file %s: kepler block carries no anomaly: %w", r.filepath, ErrParse)
	}

	elements, err := NewElementsFromRadians(raw, anomalyType, invalidEpoch)
	if err != nil {
		return err
	}
	builder.OrbitalElements(elements)
	return nil
}

// parseKeplerTLE resolves the entry's elements out of the referenced TLE
// file by catalog number.
func (r *YAMLDataReader) parseKeplerTLE(builder *SatelliteBuilder, id int64, tleFilepath string) error {
	mapping, err := NewTLEReader(tleFilepath).ReadElements()
	if err != nil {
		return err
	}
	elements, present := mapping[id]
	if !present {
		return fmt.Errorf("TLE file %s has no elements for id %d: %w", tleFilepath, id, ErrParse)
	}
	builder.OrbitalElements(elements)
	return nil
}

// lowercaseKeys normalizes one map level so tag lookups do not depend on
// the casing of the input file.
func lowercaseKeys(entry map[string]interface{}) map[string]interface{} {
	normalized := make(map[string]interface{}, len(entry))
	for key, value := range entry {
		normalized[strings.ToLower(key)] = value
	}
	return normalized
}

// toVector3 reads a YAML sequence as a cartesian three vector. Short
// sequences zero-fill.
func toVector3(raw interface{}) []float64 {
	values := cast.ToSlice(raw)
	vector := make([]float64, 3)
	for i := 0; i < len(values) && i < 3; i++ {
		vector[i] = cast.ToFloat64(values[i])
	}
	return vector
}
