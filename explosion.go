package breakup

import "math"

// explosionFragmentCount implements Eq. 2, N = 6 * L_min^-1.6, and allocates
// the batch at the single parent's position.
func (b *Breakup) explosionFragmentCount() {
	parent := b.parents[0]
	b.maximalCharacteristicLength = parent.CharacteristicLength()
	b.inputMass = parent.Mass()
	b.satType = parent.Type()
	count := int(6 * math.Pow(b.minimalCharacteristicLength, -1.6))
	position := append([]float64(nil), parent.Position()...)
	b.output = NewSatelliteSoA(b.currentMaxID, Debris, position, count)
}

// explosionAssignParentProperties labels every fragment as a child of the
// exploding parent and copies its base velocity.
func (b *Breakup) explosionAssignParentProperties() {
	parent := b.parents[0]
	name := parent.Name() + "-Explosion-Fragment"
	for row := 0; row < b.output.Size(); row++ {
		b.output.names[row] = &name
		copy(b.output.velocity[row], parent.Velocity())
	}
}
