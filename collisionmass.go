//go:build !preerratum

package breakup

// nonCatastrophicMass is the reference mass of a non catastrophic collision,
// the kinetic energy equivalent m2 * dv^2 / 10^6 of the 2020 erratum.
func nonCatastrophicMass(m2, dv float64) float64 {
	return m2 * dv * dv / 1e6
}
