package breakup

import (
	"fmt"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/viper"
)

// OutputSpec describes one output block of the configuration. When a CSV
// pattern is given it takes precedence over the kepler flag for CSV
// targets.
type OutputSpec struct {
	Targets    []string
	CSVPattern string
	Kepler     bool
}

// Configuration is the parsed YAML configuration of a simulation run.
type Configuration struct {
	MinimalCharacteristicLength float64
	SimulationType              SimulationType
	CurrentMaxID                *int64
	InputSources                []string
	IDFilter                    []int64
	HasIDFilter                 bool
	EnforceMassConservation     bool
	ResultOutput                *OutputSpec
	InputOutput                 *OutputSpec

	logger log.Logger
}

// LoadConfiguration reads the configuration file. The minimal
// characteristic length is the only required tag; a missing or
// unparseable simulation type degrades to Unknown with a warning.
func LoadConfiguration(logger log.Logger, filepath string) (*Configuration, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	v := viper.New()
	v.SetConfigFile(filepath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading configuration file %s: %w", filepath, ErrInputIO)
	}

	cfg := &Configuration{logger: logger, SimulationType: SimulationUnknown}

	if !v.IsSet("simulation.minimalCharacteristicLength") {
		return nil, fmt.Errorf("configuration file %s misses the minimal characteristic length: %w", filepath, ErrConfiguration)
	}
	cfg.MinimalCharacteristicLength = v.GetFloat64("simulation.minimalCharacteristicLength")

	if v.IsSet("simulation.simulationType") {
		simType, err := SimulationTypeFromString(v.GetString("simulation.simulationType"))
		if err != nil {
			level.Warn(logger).Log("msg", "simulation type could not be parsed, falling back to unknown",
				"value", v.GetString("simulation.simulationType"))
			simType = SimulationUnknown
		}
		cfg.SimulationType = simType
	} else {
		level.Warn(logger).Log("msg", "simulation type not given, falling back to unknown")
	}

	if v.IsSet("simulation.currentMaxID") {
		id := v.GetInt64("simulation.currentMaxID")
		cfg.CurrentMaxID = &id
	}

	cfg.InputSources = v.GetStringSlice("simulation.inputSource")

	if v.IsSet("simulation.idFilter") {
		cfg.HasIDFilter = true
		for _, id := range v.GetIntSlice("simulation.idFilter") {
			cfg.IDFilter = append(cfg.IDFilter, int64(id))
		}
	}

	cfg.EnforceMassConservation = v.GetBool("simulation.enforceMassConservation")

	var err error
	if cfg.ResultOutput, err = parseOutputSpec(v, filepath, "resultOutput"); err != nil {
		return nil, err
	}
	if cfg.ResultOutput == nil {
		level.Info(logger).Log("msg", "no output defined for the simulation result")
	}
	if cfg.InputOutput, err = parseOutputSpec(v, filepath, "inputOutput"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseOutputSpec(v *viper.Viper, filepath, tag string) (*OutputSpec, error) {
	if !v.IsSet(tag) {
		return nil, nil
	}
	if !v.IsSet(tag + ".target") {
		return nil, fmt.Errorf("configuration file %s defines %s without targets: %w", filepath, tag, ErrConfiguration)
	}
	return &OutputSpec{
		Targets:    v.GetStringSlice(tag + ".target"),
		CSVPattern: v.GetString(tag + ".csvPattern"),
		Kepler:     v.GetBool(tag + ".kepler"),
	}, nil
}

// LoadSatellites dispatches over the input source extensions: a single
// YAML file, or a satcat CSV paired with a TLE file in either order.
func (c *Configuration) LoadSatellites() ([]Satellite, error) {
	files := c.InputSources
	switch {
	case len(files) == 1 && strings.HasSuffix(files[0], ".yaml"):
		return NewYAMLDataReader(c.logger, files[0]).Satellites()
	case len(files) == 2 && strings.HasSuffix(files[0], ".csv") && isTLEFile(files[1]):
		return NewTLESatcatDataReader(c.logger, files[0], files[1]).Satellites()
	case len(files) == 2 && isTLEFile(files[0]) && strings.HasSuffix(files[1], ".csv"):
		return NewTLESatcatDataReader(c.logger, files[1], files[0]).Satellites()
	}
	return nil, fmt.Errorf("input sources %v form no valid data source: %w", files, ErrConfiguration)
}

func isTLEFile(filepath string) bool {
	return strings.HasSuffix(filepath, ".txt") || strings.HasSuffix(filepath, ".tle")
}
