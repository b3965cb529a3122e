package breakup

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// alpha5Offsets maps the leading character of an Alpha-5 catalog number to
// its numeric offset. The letters I and O are not assigned.
var alpha5Offsets = map[byte]int64{
	' ': 0, '0': 0,
	'1': 10000, '2': 20000, '3': 30000, '4': 40000, '5': 50000,
	'6': 60000, '7': 70000, '8': 80000, '9': 90000,
	'A': 100000, 'B': 110000, 'C': 120000, 'D': 130000, 'E': 140000,
	'F': 150000, 'G': 160000, 'H': 170000, 'J': 180000, 'K': 190000,
	'L': 200000, 'M': 210000, 'N': 220000, 'P': 230000, 'Q': 240000,
	'R': 250000, 'S': 260000, 'T': 270000, 'U': 280000, 'V': 290000,
	'W': 300000, 'X': 310000, 'Y': 320000, 'Z': 330000,
}

// TLEReader extracts orbital elements from a Two Line Element file,
// including ids in the Alpha-5 extension.
type TLEReader struct {
	filepath string
}

// NewTLEReader returns a reader for the given file.
func NewTLEReader(filepath string) *TLEReader {
	return &TLEReader{filepath: filepath}
}

// ReadElements scans the file for line 1 / line 2 pairs and returns the
// element set per catalog number.
func (r *TLEReader) ReadElements() (map[int64]OrbitalElements, error) {
	file, err := os.Open(r.filepath)
	if err != nil {
		return nil, fmt.Errorf("opening TLE file %s: %w", r.filepath, ErrInputIO)
	}
	defer file.Close()

	elements := make(map[int64]OrbitalElements)
	scanner := bufio.NewScanner(file)
	var line1 string
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "1"):
			line1 = line
		case strings.HasPrefix(line, "2"):
			if line1 == "" {
				return nil, fmt.Errorf("TLE file %s has a line 2 without a line 1 %q: %w", r.filepath, line, ErrParse)
			}
			id, el, err := r.parsePair(line1, line)
			if err != nil {
				return nil, err
			}
			elements[id] = el
			line1 = ""
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading TLE file %s: %w", r.filepath, ErrInputIO)
	}
	return elements, nil
}

func (r *TLEReader) parsePair(line1, line2 string) (int64, OrbitalElements, error) {
	if len(line1) < 28 || len(line2) < 63 {
		return 0, OrbitalElements{}, fmt.Errorf("TLE file %s contains a short line %q: %w", r.filepath, line2, ErrParse)
	}

	id, err := ParseAlpha5ID(line2[2:7])
	if err != nil {
		return 0, OrbitalElements{}, fmt.Errorf("TLE file %s line %q: %w", r.filepath, line2, err)
	}

	fields := [6]string{
		line2[52:63],          // mean motion [rev/day]
		"0." + line2[26:33],   // eccentricity, implied decimal point
		line2[8:16],           // inclination [deg]
		line2[17:25],          // RAAN [deg]
		line2[34:42],          // argument of perigee [deg]
		line2[43:51],          // mean anomaly [deg]
	}
	var raw [6]float64
	for i, field := range fields {
		raw[i], err = strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return 0, OrbitalElements{}, fmt.Errorf("TLE file %s line %q field %q: %w", r.filepath, line2, field, ErrParse)
		}
	}

	epoch, err := parseTLEEpoch(line1)
	if err != nil {
		return 0, OrbitalElements{}, fmt.Errorf("TLE file %s line %q: %w", r.filepath, line1, err)
	}

	el, err := NewElementsFromTLE(raw, epoch)
	if err != nil {
		return 0, OrbitalElements{}, err
	}
	return id, el, nil
}

// ParseAlpha5ID decodes the five character catalog number of a TLE,
// one Alpha-5 leading character plus four digits.
func ParseAlpha5ID(token string) (int64, error) {
	if len(token) != 5 {
		return 0, fmt.Errorf("catalog number %q is not five characters: %w", token, ErrParse)
	}
	offset, assigned := alpha5Offsets[token[0]]
	if !assigned {
		return 0, fmt.Errorf("catalog number %q has an unassigned leading character: %w", token, ErrParse)
	}
	digits, err := strconv.ParseInt(strings.TrimSpace(token[1:]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("catalog number %q: %w", token, ErrParse)
	}
	return offset + digits, nil
}

func parseTLEEpoch(line1 string) (Epoch, error) {
	year, err := strconv.Atoi(strings.TrimSpace(line1[18:20]))
	if err != nil {
		return Epoch{}, fmt.Errorf("epoch year %q: %w", line1[18:20], ErrParse)
	}
	if year < 57 {
		year += 2000
	} else {
		year += 1900
	}
	fraction, err := strconv.ParseFloat(strings.TrimSpace(line1[20:28]), 64)
	if err != nil {
		return Epoch{}, fmt.Errorf("epoch day %q: %w", line1[20:28], ErrParse)
	}
	return Epoch{Year: year, Fraction: fraction}, nil
}
