package breakup

// SatelliteSoA is the columnar fragment batch built during a breakup. All
// rows share the parent derived start id, type and position; every per-row
// column has the same length at all times.
type SatelliteSoA struct {
	startID  int64
	satType  SatType
	position []float64

	names                []*string
	characteristicLength []float64
	areaToMassRatio      []float64
	mass                 []float64
	area                 []float64
	ejectionVelocity     [][]float64
	velocity             [][]float64
}

// NewSatelliteSoA allocates a batch of the given size. Geometric columns are
// zero and velocity rows are zero vectors until the pipeline fills them.
func NewSatelliteSoA(startID int64, satType SatType, position []float64, size int) *SatelliteSoA {
	s := &SatelliteSoA{startID: startID, satType: satType, position: position}
	s.Resize(size)
	return s
}

// StartID returns the largest id in use before this batch.
func (s *SatelliteSoA) StartID() int64 { return s.startID }

// Type returns the shared satellite type of the batch.
func (s *SatelliteSoA) Type() SatType { return s.satType }

// Position returns the shared position inherited from the parent.
func (s *SatelliteSoA) Position() []float64 { return s.position }

// Size returns the current row count.
func (s *SatelliteSoA) Size() int { return len(s.characteristicLength) }

// CharacteristicLengths returns the L_c column.
func (s *SatelliteSoA) CharacteristicLengths() []float64 { return s.characteristicLength }

// AreaToMassRatios returns the A/M column.
func (s *SatelliteSoA) AreaToMassRatios() []float64 { return s.areaToMassRatio }

// Masses returns the mass column.
func (s *SatelliteSoA) Masses() []float64 { return s.mass }

// Areas returns the area column.
func (s *SatelliteSoA) Areas() []float64 { return s.area }

// Resize adjusts every column jointly, zero filling any new tail.
func (s *SatelliteSoA) Resize(n int) {
	old := s.Size()
	s.names = resizeRows(s.names, n)
	s.characteristicLength = resizeColumn(s.characteristicLength, n)
	s.areaToMassRatio = resizeColumn(s.areaToMassRatio, n)
	s.mass = resizeColumn(s.mass, n)
	s.area = resizeColumn(s.area, n)
	s.ejectionVelocity = resizeVectors(s.ejectionVelocity, n, old)
	s.velocity = resizeVectors(s.velocity, n, old)
}

// AppendElement grows the batch by one row and returns writable pointers to
// the geometric columns of that row. The pointers stay valid until the next
// size change.
func (s *SatelliteSoA) AppendElement() (lc, aom, area, mass *float64) {
	s.names = append(s.names, nil)
	s.characteristicLength = append(s.characteristicLength, 0)
	s.areaToMassRatio = append(s.areaToMassRatio, 0)
	s.mass = append(s.mass, 0)
	s.area = append(s.area, 0)
	s.ejectionVelocity = append(s.ejectionVelocity, make([]float64, 3))
	s.velocity = append(s.velocity, make([]float64, 3))
	row := s.Size() - 1
	return &s.characteristicLength[row], &s.areaToMassRatio[row], &s.area[row], &s.mass[row]
}

// PopBack drops the last row of every column.
func (s *SatelliteSoA) PopBack() {
	n := s.Size() - 1
	s.names = s.names[:n]
	s.characteristicLength = s.characteristicLength[:n]
	s.areaToMassRatio = s.areaToMassRatio[:n]
	s.mass = s.mass[:n]
	s.area = s.area[:n]
	s.ejectionVelocity = s.ejectionVelocity[:n]
	s.velocity = s.velocity[:n]
}

// PrependElement inserts one row at index 0, shifting all existing rows, and
// returns writable pointers to the geometric columns of the new front row.
func (s *SatelliteSoA) PrependElement() (lc, aom, area, mass *float64) {
	s.names = append([]*string{nil}, s.names...)
	s.characteristicLength = append([]float64{0}, s.characteristicLength...)
	s.areaToMassRatio = append([]float64{0}, s.areaToMassRatio...)
	s.mass = append([]float64{0}, s.mass...)
	s.area = append([]float64{0}, s.area...)
	s.ejectionVelocity = append([][]float64{make([]float64, 3)}, s.ejectionVelocity...)
	s.velocity = append([][]float64{make([]float64, 3)}, s.velocity...)
	return &s.characteristicLength[0], &s.areaToMassRatio[0], &s.area[0], &s.mass[0]
}

// AoS converts the batch to row form. Row k receives id startID + k + 1 and
// a copy of the shared position.
func (s *SatelliteSoA) AoS() []Satellite {
	out := make([]Satellite, s.Size())
	for row := range out {
		out[row] = Satellite{
			id:                   s.startID + int64(row) + 1,
			name:                 s.names[row],
			satType:              s.satType,
			characteristicLength: s.characteristicLength[row],
			areaToMassRatio:      s.areaToMassRatio[row],
			mass:                 s.mass[row],
			area:                 s.area[row],
			position:             append([]float64(nil), s.position...),
			velocity:             s.velocity[row],
			ejectionVelocity:     s.ejectionVelocity[row],
		}
	}
	return out
}

// NewSoAFromAoS rebuilds a batch from row form, keeping the per-row fields.
func NewSoAFromAoS(startID int64, satType SatType, position []float64, sats []Satellite) *SatelliteSoA {
	s := NewSatelliteSoA(startID, satType, position, len(sats))
	for row, sat := range sats {
		s.names[row] = sat.name
		s.characteristicLength[row] = sat.characteristicLength
		s.areaToMassRatio[row] = sat.areaToMassRatio
		s.mass[row] = sat.mass
		s.area[row] = sat.area
		s.ejectionVelocity[row] = sat.ejectionVelocity
		s.velocity[row] = sat.velocity
	}
	return s
}

func resizeColumn(v []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, v)
	return out
}

func resizeRows(v []*string, n int) []*string {
	out := make([]*string, n)
	copy(out, v)
	return out
}

func resizeVectors(v [][]float64, n, old int) [][]float64 {
	out := make([][]float64, n)
	copy(out, v)
	for i := old; i < n; i++ {
		if out[i] == nil {
			out[i] = make([]float64, 3)
		}
	}
	return out
}
