package breakup

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// OutputWriter serializes a satellite collection to a sink.
type OutputWriter interface {
	Write(satellites []Satellite) error
}

// NewWritersFromSpec resolves one output block of the configuration into
// writers, dispatching on the target extension. CSV targets honor the
// pattern when one is given and the kepler flag otherwise; unsupported
// extensions are skipped with a warning.
func NewWritersFromSpec(logger log.Logger, spec *OutputSpec) []OutputWriter {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if spec == nil {
		return nil
	}
	writers := make([]OutputWriter, 0, len(spec.Targets))
	for _, target := range spec.Targets {
		switch {
		case strings.HasSuffix(target, ".csv") && spec.CSVPattern != "":
			writers = append(writers, NewCSVPatternWriter(target, spec.CSVPattern))
		case strings.HasSuffix(target, ".csv"):
			writers = append(writers, NewCSVWriter(target, spec.Kepler))
		case strings.HasSuffix(target, ".vtu"):
			writers = append(writers, NewVTKWriter(target))
		default:
			level.Warn(logger).Log("msg", "output target has an unsupported extension, only csv and vtu are written",
				"target", target)
		}
	}
	if len(writers) == 0 {
		level.Warn(logger).Log("msg", "output block resolved to no valid writer")
	}
	return writers
}

// ftoa renders a float the shortest way that round-trips.
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// vtoa renders a cartesian vector as a bracketed triple.
func vtoa(v []float64) string {
	return fmt.Sprintf("[%s %s %s]", ftoa(v[0]), ftoa(v[1]), ftoa(v[2]))
}

const csvStandardHeader = "ID,Name,Satellite Type,Characteristic Length [m],A/M [m^2/kg],Area [m^2],Mass [kg]," +
	"Ejection Velocity [m/s],Velocity [m/s],Position [m]"

const csvKeplerHeader = csvStandardHeader + "," +
	"Semi-Major-Axis [m],Eccentricity,Inclination [rad],Longitude of the ascending node [rad]," +
	"Argument of periapsis [rad],Mean Anomaly [rad]"

// CSVWriter writes the satellite collection as CSV rows, optionally
// extended by the orbital elements.
type CSVWriter struct {
	filepath   string
	withKepler bool
}

// NewCSVWriter returns a writer creating (or truncating) the given file.
func NewCSVWriter(filepath string, withKepler bool) *CSVWriter {
	return &CSVWriter{filepath: filepath, withKepler: withKepler}
}

// Write renders one row per satellite.
func (w *CSVWriter) Write(satellites []Satellite) error {
	file, err := os.Create(w.filepath)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", w.filepath, err)
	}
	defer file.Close()
	buf := bufio.NewWriter(file)

	header := csvStandardHeader
	if w.withKepler {
		header = csvKeplerHeader
	}
	fmt.Fprintln(buf, header)

	for i := range satellites {
		sat := &satellites[i]
		fmt.Fprintf(buf, "%d,%s,%s,%s,%s,%s,%s,%s,%s,%s",
			sat.ID(), sat.Name(), sat.Type(),
			ftoa(sat.CharacteristicLength()), ftoa(sat.AreaToMassRatio()), ftoa(sat.Area()), ftoa(sat.Mass()),
			vtoa(sat.EjectionVelocity()), vtoa(sat.Velocity()), vtoa(sat.Position()))
		if w.withKepler {
			el := sat.OrbitalElements()
			fmt.Fprintf(buf, ",%s,%s,%s,%s,%s,%s",
				ftoa(el.SemiMajorAxisM()), ftoa(el.Eccentricity()), ftoa(el.Inclination()),
				ftoa(el.RAAN()), ftoa(el.ArgOfPeriapsis()), ftoa(el.MeanAnomaly()))
		}
		fmt.Fprintln(buf)
	}
	return buf.Flush()
}

// patternColumn is one selectable CSV column.
type patternColumn struct {
	header string
	cell   func(sat *Satellite) string
}

// patternColumns maps the single character mnemonics of the patterned
// writer to their header label and cell renderer.
var patternColumns = map[byte]patternColumn{
	'I': {"ID", func(s *Satellite) string { return strconv.FormatInt(s.ID(), 10) }},
	'n': {"Name", func(s *Satellite) string { return s.Name() }},
	't': {"Satellite Type", func(s *Satellite) string { return s.Type().String() }},
	'L': {"Characteristic Length [m]", func(s *Satellite) string { return ftoa(s.CharacteristicLength()) }},
	'R': {"A/M [m^2/kg]", func(s *Satellite) string { return ftoa(s.AreaToMassRatio()) }},
	'A': {"Area [m^2]", func(s *Satellite) string { return ftoa(s.Area()) }},
	'm': {"Mass [kg]", func(s *Satellite) string { return ftoa(s.Mass()) }},
	'v': {"Velocity [m/s]", func(s *Satellite) string { return vtoa(s.Velocity()) }},
	'j': {"Ejection Velocity [m/s]", func(s *Satellite) string { return vtoa(s.EjectionVelocity()) }},
	'p': {"Position [m]", func(s *Satellite) string { return vtoa(s.Position()) }},
	'a': {"Semi-Major-Axis [m]", func(s *Satellite) string { return ftoa(s.OrbitalElements().SemiMajorAxisM()) }},
	'e': {"Eccentricity", func(s *Satellite) string { return ftoa(s.OrbitalElements().Eccentricity()) }},
	'i': {"Inclination [rad]", func(s *Satellite) string { return ftoa(s.OrbitalElements().Inclination()) }},
	'W': {"Longitude of the ascending node [rad]", func(s *Satellite) string { return ftoa(s.OrbitalElements().RAAN()) }},
	'w': {"Argument of periapsis [rad]", func(s *Satellite) string { return ftoa(s.OrbitalElements().ArgOfPeriapsis()) }},
	'M': {"Mean Anomaly [rad]", func(s *Satellite) string { return ftoa(s.OrbitalElements().MeanAnomaly()) }},
	'E': {"Eccentric Anomaly [rad]", func(s *Satellite) string { return ftoa(s.OrbitalElements().EccentricAnomaly()) }},
	'T': {"True Anomaly [rad]", func(s *Satellite) string { return ftoa(s.OrbitalElements().TrueAnomaly()) }},
}

// CSVPatternWriter writes a custom CSV where each pattern character
// selects one column. "IntLRAmjvp" reproduces the standard writer
// without orbital elements.
type CSVPatternWriter struct {
	filepath string
	pattern  string
}

// NewCSVPatternWriter returns a writer for the given file and pattern.
func NewCSVPatternWriter(filepath, pattern string) *CSVPatternWriter {
	return &CSVPatternWriter{filepath: filepath, pattern: pattern}
}

// Write renders the selected columns per satellite. Unknown pattern
// characters are a configuration error.
func (w *CSVPatternWriter) Write(satellites []Satellite) error {
	columns := make([]patternColumn, 0, len(w.pattern))
	for i := 0; i < len(w.pattern); i++ {
		column, known := patternColumns[w.pattern[i]]
		if !known {
			return fmt.Errorf("CSV pattern %q contains the unknown column %q: %w", w.pattern, w.pattern[i], ErrConfiguration)
		}
		columns = append(columns, column)
	}

	file, err := os.Create(w.filepath)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", w.filepath, err)
	}
	defer file.Close()
	buf := bufio.NewWriter(file)

	headers := make([]string, len(columns))
	for i, column := range columns {
		headers[i] = column.header
	}
	fmt.Fprintln(buf, strings.Join(headers, ","))

	cells := make([]string, len(columns))
	for i := range satellites {
		for j, column := range columns {
			cells[j] = column.cell(&satellites[i])
		}
		fmt.Fprintln(buf, strings.Join(cells, ","))
	}
	return buf.Flush()
}

// VTKWriter writes the collection as an unstructured grid of points, one
// per satellite, for visualization tools like ParaView.
type VTKWriter struct {
	filepath string
}

// NewVTKWriter returns a writer for the given file.
func NewVTKWriter(filepath string) *VTKWriter {
	return &VTKWriter{filepath: filepath}
}

// Write renders the scalar and vector fields as point data and the
// positions as the points themselves. The grid has no cells.
func (w *VTKWriter) Write(satellites []Satellite) error {
	file, err := os.Create(w.filepath)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", w.filepath, err)
	}
	defer file.Close()
	buf := bufio.NewWriter(file)

	fmt.Fprintln(buf, `<?xml version="1.0" encoding="UTF-8" standalone="no" ?>`)
	fmt.Fprintln(buf, `<VTKFile byte_order="LittleEndian" type="UnstructuredGrid" version="0.1">`)
	fmt.Fprintln(buf, `  <UnstructuredGrid>`)
	fmt.Fprintf(buf, "    <Piece NumberOfCells=\"0\" NumberOfPoints=\"%d\">\n", len(satellites))
	fmt.Fprintln(buf, `      <PointData>`)

	writeScalarArray(buf, "characteristic-length", satellites, (*Satellite).CharacteristicLength)
	writeScalarArray(buf, "mass", satellites, (*Satellite).Mass)
	writeScalarArray(buf, "area", satellites, (*Satellite).Area)
	writeScalarArray(buf, "area-to-mass", satellites, (*Satellite).AreaToMassRatio)
	writeVectorArray(buf, "velocity", satellites, (*Satellite).Velocity)
	writeVectorArray(buf, "ejection-velocity", satellites, (*Satellite).EjectionVelocity)

	fmt.Fprintln(buf, `      </PointData>`)
	fmt.Fprintln(buf, `      <CellData/>`)
	fmt.Fprintln(buf, `      <Points>`)

	writeVectorArray(buf, "position", satellites, (*Satellite).Position)

	fmt.Fprintln(buf, `      </Points>`)
	fmt.Fprintln(buf, `      <Cells>`)
	fmt.Fprintln(buf, `        <DataArray Name="types" NumberOfComponents="0" format="ascii" type="Float32"/>`)
	fmt.Fprintln(buf, `      </Cells>`)
	fmt.Fprintln(buf, `    </Piece>`)
	fmt.Fprintln(buf, `  </UnstructuredGrid>`)
	fmt.Fprintln(buf, `</VTKFile>`)
	return buf.Flush()
}

func writeScalarArray(buf *bufio.Writer, name string, satellites []Satellite, field func(*Satellite) float64) {
	fmt.Fprintf(buf, "        <DataArray Name=%q NumberOfComponents=\"1\" format=\"ascii\" type=\"Float32\">\n", name)
	for i := range satellites {
		fmt.Fprintf(buf, "          %s\n", ftoa(field(&satellites[i])))
	}
	fmt.Fprintln(buf, `        </DataArray>`)
}

func writeVectorArray(buf *bufio.Writer, name string, satellites []Satellite, field func(*Satellite) []float64) {
	fmt.Fprintf(buf, "        <DataArray Name=%q NumberOfComponents=\"3\" format=\"ascii\" type=\"Float32\">\n", name)
	for i := range satellites {
		v := field(&satellites[i])
		fmt.Fprintf(buf, "          %s %s %s\n", ftoa(v[0]), ftoa(v[1]), ftoa(v[2]))
	}
	fmt.Fprintln(buf, `        </DataArray>`)
}
