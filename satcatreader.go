package breakup

import (
	"fmt"
	"sort"

	"github.com/go-kit/log"
)

// satcat column layout: name, identifier, id, type, statusCode, owner,
// launchDate, launchSite, decayDate, period, inclination, apogee, perigee,
// rcs, dataStatusCode, orbitCenter, orbitType.
const (
	satcatColName = 0
	satcatColID   = 2
	satcatColType = 3
	satcatColRCS  = 13
)

// satcatEntry is the satcat data the simulation needs per catalog number.
type satcatEntry struct {
	name    string
	satType SatType
	rcs     float64
}

// TLESatcatDataReader joins a satellite catalog CSV with a TLE file.
// Neither file alone carries all attributes the simulation needs, so a
// satellite is produced only for ids present in both.
type TLESatcatDataReader struct {
	logger    log.Logger
	satcat    *CSVReader
	tleReader *TLEReader
}

// NewTLESatcatDataReader returns a reader over the given satcat CSV (with
// header) and TLE file.
func NewTLESatcatDataReader(logger log.Logger, satcatFilepath, tleFilepath string) *TLESatcatDataReader {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &TLESatcatDataReader{
		logger:    logger,
		satcat:    NewCSVReader(satcatFilepath, true),
		tleReader: NewTLEReader(tleFilepath),
	}
}

// Satellites merges both sources over the catalog number and returns the
// satellites in ascending id order.
func (r *TLESatcatDataReader) Satellites() ([]Satellite, error) {
	mapping, err := r.satcatMapping()
	if err != nil {
		return nil, err
	}
	elements, err := r.tleReader.ReadElements()
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(elements))
	for id := range elements {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	builder := NewSatelliteBuilder(r.logger)
	satellites := make([]Satellite, 0, len(ids))
	for _, id := range ids {
		entry, known := mapping[id]
		if !known {
			continue
		}
		sat, err := builder.Reset().
			ID(id).
			Name(entry.name).
			Type(entry.satType).
			MassByArea(entry.rcs).
			OrbitalElements(elements[id]).
			Result()
		if err != nil {
			return nil, err
		}
		satellites = append(satellites, sat)
	}
	return satellites, nil
}

// satcatMapping reads the catalog rows into a per-id entry of name, type
// and radar cross section [m^2].
func (r *TLESatcatDataReader) satcatMapping() (map[int64]satcatEntry, error) {
	rows, err := r.satcat.ReadLines()
	if err != nil {
		return nil, err
	}
	mapping := make(map[int64]satcatEntry, len(rows))
	for _, row := range rows {
		satType, err := SatTypeFromString(cellString(row, satcatColType))
		if err != nil {
			return nil, fmt.Errorf("satcat row for %q: %w", cellString(row, satcatColName), err)
		}
		mapping[cellInt(row, satcatColID)] = satcatEntry{
			name:    cellString(row, satcatColName),
			satType: satType,
			rcs:     cellFloat(row, satcatColRCS),
		}
	}
	return mapping, nil
}
