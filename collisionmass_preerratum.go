//go:build preerratum

package breakup

// nonCatastrophicMass replicates the original 2001 publication, m2 * dv / 1000,
// for strict comparison against pre erratum result sets.
func nonCatastrophicMass(m2, dv float64) float64 {
	return m2 * dv / 1000
}
