package breakup

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// R1 is the direction cosine matrix of a rotation about the first axis.
func R1(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, c, s,
		0, -s, c,
	})
}

// R3 is the direction cosine matrix of a rotation about the third axis.
func R3(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{
		c, s, 0,
		-s, c, 0,
		0, 0, 1,
	})
}

// R3R1R3 chains a 3-1-3 Euler angle sequence, R3(θ3) R1(θ2) R3(θ1).
func R3R1R3(θ1, θ2, θ3 float64) *mat.Dense {
	var inner, dcm mat.Dense
	inner.Mul(R1(θ2), R3(θ1))
	dcm.Mul(R3(θ3), &inner)
	return &dcm
}

// MxV33 applies a 3x3 matrix to a 3-vector. The caller guarantees the
// dimensions.
func MxV33(m *mat.Dense, v []float64) []float64 {
	var r mat.VecDense
	r.MulVec(m, mat.NewVecDense(3, v))
	return []float64{r.AtVec(0), r.AtVec(1), r.AtVec(2)}
}

// PQW2ECI maps a perifocal frame vector into the inertial frame, undoing
// the 3-1-3 sequence of RAAN, inclination and argument of periapsis.
func PQW2ECI(i, ω, Ω float64, v []float64) []float64 {
	return MxV33(R3R1R3(-ω, -i, -Ω), v)
}
