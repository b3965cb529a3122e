package breakup

import (
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// AnomalyType designates which anomaly a raw element set carries.
type AnomalyType uint8

const (
	// AnomalyEccentric is the canonical stored anomaly.
	AnomalyEccentric AnomalyType = iota
	// AnomalyMean as extracted from TLEs.
	AnomalyMean
	// AnomalyTrue as used in most textbook element sets.
	AnomalyTrue
)

func (t AnomalyType) String() string {
	switch t {
	case AnomalyEccentric:
		return "eccentric"
	case AnomalyMean:
		return "mean"
	default:
		return "true"
	}
}

// Epoch pins an element set in time as a full year and a fractional day of
// the year (TLE convention, day 1.0 is January 1st midnight).
type Epoch struct {
	Year     int
	Fraction float64
}

// IsValid returns whether this epoch was actually set.
func (ep Epoch) IsValid() bool {
	return ep.Year >= 0 && ep.Fraction >= 0
}

// Time converts the epoch to UTC.
func (ep Epoch) Time() time.Time {
	jd := julian.CalendarGregorianToJD(ep.Year, 1, 0) + ep.Fraction
	y, m, d := julian.JDToCalendar(jd)
	day, dayFraction := math.Modf(d)
	hours := dayFraction * 24
	minutes := (hours - math.Floor(hours)) * 60
	seconds := (minutes - math.Floor(minutes)) * 60
	return time.Date(y, time.Month(m), int(day), int(hours), int(minutes), int(seconds), 0, time.UTC)
}

// invalidEpoch marks element sets without a timestamp.
var invalidEpoch = Epoch{Year: -1, Fraction: -1}

// OrbitalElements is an immutable six element set with an optional epoch.
// The stored anomaly is always the eccentric anomaly (or the Gudermannian
// for hyperbolic sets).
type OrbitalElements struct {
	a, e, i, Ω, ω, E float64
	epoch            Epoch
}

// NewOrbitalElements expects all angles in radians and the eccentric anomaly.
func NewOrbitalElements(a, e, i, Ω, ω, E float64) OrbitalElements {
	return OrbitalElements{a, e, i, Ω, ω, E, invalidEpoch}
}

// NewOrbitalElementsEpoch is NewOrbitalElements with a timestamp.
func NewOrbitalElementsEpoch(a, e, i, Ω, ω, E float64, epoch Epoch) OrbitalElements {
	return OrbitalElements{a, e, i, Ω, ω, E, epoch}
}

// NewElementsFromRadians builds an element set from [a, e, i, Ω, ω, anomaly]
// with all angles in radians, converting the given anomaly to eccentric.
func NewElementsFromRadians(el [6]float64, anomaly AnomalyType, epoch Epoch) (OrbitalElements, error) {
	ea := el[5]
	var err error
	switch anomaly {
	case AnomalyMean:
		ea, err = MeanToEccentricAnomaly(el[5], el[1])
		if err != nil {
			return OrbitalElements{}, err
		}
	case AnomalyTrue:
		ea = TrueToEccentricAnomaly(el[5], el[1])
	}
	return OrbitalElements{el[0], el[1], el[2], el[3], el[4], ea, epoch}, nil
}

// NewElementsFromDegrees is NewElementsFromRadians for angles in degrees
// (indices 2 to 5).
func NewElementsFromDegrees(el [6]float64, anomaly AnomalyType, epoch Epoch) (OrbitalElements, error) {
	rad := el
	for i := 2; i < 6; i++ {
		rad[i] = Deg2rad(rad[i])
	}
	return NewElementsFromRadians(rad, anomaly, epoch)
}

// NewElementsFromTLE builds an element set from the raw TLE fields
// [meanMotion rev/day, e, i°, Ω°, ω°, MA°].
func NewElementsFromTLE(el [6]float64, epoch Epoch) (OrbitalElements, error) {
	deg := el
	deg[0] = MeanMotionToSemiMajorAxis(deg[0])
	return NewElementsFromDegrees(deg, AnomalyMean, epoch)
}

// SemiMajorAxisM returns a in meters.
func (el OrbitalElements) SemiMajorAxisM() float64 { return el.a }

// Eccentricity returns e.
func (el OrbitalElements) Eccentricity() float64 { return el.e }

// Inclination returns i in radians.
func (el OrbitalElements) Inclination() float64 { return el.i }

// RAAN returns the longitude of the ascending node in radians.
func (el OrbitalElements) RAAN() float64 { return el.Ω }

// ArgOfPeriapsis returns ω in radians.
func (el OrbitalElements) ArgOfPeriapsis() float64 { return el.ω }

// EccentricAnomaly returns E in radians.
func (el OrbitalElements) EccentricAnomaly() float64 { return el.E }

// MeanAnomaly derives MA from the stored eccentric anomaly.
func (el OrbitalElements) MeanAnomaly() float64 {
	return EccentricToMeanAnomaly(el.E, el.e)
}

// TrueAnomaly derives ν from the stored eccentric anomaly.
func (el OrbitalElements) TrueAnomaly() float64 {
	return EccentricToTrueAnomaly(el.E, el.e)
}

// Epoch returns the (possibly invalid) epoch of this element set.
func (el OrbitalElements) Epoch() Epoch { return el.epoch }

// AsArray returns [a, e, i, Ω, ω, E].
func (el OrbitalElements) AsArray() [6]float64 {
	return [6]float64{el.a, el.e, el.i, el.Ω, el.ω, el.E}
}

// RV returns the inertial position and velocity vectors in meters and m/s.
// Both elliptic and hyperbolic sets are supported; for e > 1 the stored
// anomaly is read as the Gudermannian.
func (el OrbitalElements) RV() (R []float64, V []float64) {
	a, e := el.a, el.e
	// Negative semi-major axis convention for the hyperbolic expressions.
	if e > 1 {
		a = -a
	}

	var xper, yper, xdotper, ydotper float64
	cosEA := math.Cos(el.E)
	if e < 1 {
		sinEA := math.Sin(el.E)
		b := a * math.Sqrt(1-e*e)
		n := math.Sqrt(EarthμM3S2 / (a * a * a))
		xper = a * (cosEA - e)
		yper = b * sinEA
		xdotper = -(a * n * sinEA) / (1 - e*cosEA)
		ydotper = (b * n * cosEA) / (1 - e*cosEA)
	} else {
		tanEA := math.Tan(el.E)
		tanEAPI4 := math.Tan(0.5*el.E + math.Pi/4)
		b := -a * math.Sqrt(e*e-1)
		n := math.Sqrt(-EarthμM3S2 / (a * a * a))
		dNdζ := e*(1+tanEA*tanEA) - (0.5+0.5*tanEAPI4*tanEAPI4)/tanEAPI4
		xper = a/cosEA - a*e
		yper = b * tanEA
		xdotper = a * tanEA / cosEA * n / dNdζ
		ydotper = b / cosEA * cosEA * n / dNdζ
	}

	R = PQW2ECI(el.i, el.ω, el.Ω, []float64{xper, yper, 0})
	V = PQW2ECI(el.i, el.ω, el.Ω, []float64{xdotper, ydotper, 0})
	return R, V
}

// NewElementsFromRV returns the element set matching the given inertial
// position and velocity. Singular for equatorial orbits where the node line
// vanishes.
func NewElementsFromRV(R, V []float64) OrbitalElements {
	h := cross(R, V)
	p := dot(h, h) / EarthμM3S2
	n := unit(cross([]float64{0, 0, 1}, h))
	r := norm(R)
	eVec := make([]float64, 3)
	vxh := cross(V, h)
	for j := 0; j < 3; j++ {
		eVec[j] = vxh[j]/EarthμM3S2 - R[j]/r
	}
	e := norm(eVec)
	a := math.Abs(p / (1 - e*e))
	i := math.Acos(h[2] / norm(h))

	ω := math.Acos(dot(n, eVec) / e)
	if eVec[2] < 0 {
		ω = 2*math.Pi - ω
	}
	Ω := math.Acos(n[0])
	if n[1] < 0 {
		Ω = 2*math.Pi - Ω
	}
	ν := math.Acos(dot(eVec, R) / (e * r))
	if dot(R, V) < 0 {
		ν = 2*math.Pi - ν
	}

	// Algebraic Kepler equivalent; for e > 1 in terms of the Gudermannian.
	var root float64
	if e < 1 {
		root = (1 - e) / (1 + e)
	} else {
		root = (e - 1) / (e + 1)
	}
	E := normAngle(2 * math.Atan(math.Sqrt(root)*math.Tan(ν/2)))

	return OrbitalElements{a, e, i, Ω, ω, E, invalidEpoch}
}

// String implements the stringer interface.
func (el OrbitalElements) String() string {
	return fmt.Sprintf("a=%.1f e=%.4f i=%.3f Ω=%.3f ω=%.3f E=%.3f",
		el.a, el.e, Rad2deg(el.i), Rad2deg(el.Ω), Rad2deg(el.ω), Rad2deg(el.E))
}
