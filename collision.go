package breakup

import "math"

// catastrophicThreshold is the specific energy bound in J/g above which
// both parents fully fragment.
const catastrophicThreshold = 40.0

// collisionFragmentCount implements Eq. 4, N = 0.1 * M^0.75 * L_min^-1.71.
// The parents are ordered so that the bigger one donates position and the
// larger share of the fragments.
func (b *Breakup) collisionFragmentCount() {
	sat1, sat2 := b.parents[0], b.parents[1]
	if sat1.CharacteristicLength() < sat2.CharacteristicLength() {
		sat1, sat2 = sat2, sat1
	}
	b.bigSat, b.smallSat = sat1, sat2
	b.maximalCharacteristicLength = sat1.CharacteristicLength()

	b.satType = Spacecraft
	if sat1.Type() == RocketBody || sat2.Type() == RocketBody {
		b.satType = RocketBody
	}

	b.inputMass = sat1.Mass() + sat2.Mass()

	dv := norm(sub(sat1.Velocity(), sat2.Velocity()))
	catastrophicRatio := sat2.Mass() * dv * dv / (2 * sat1.Mass() * 1000)
	var mass float64
	if catastrophicRatio < catastrophicThreshold {
		b.isCatastrophic = false
		mass = nonCatastrophicMass(sat2.Mass(), dv)
	} else {
		b.isCatastrophic = true
		mass = sat1.Mass() + sat2.Mass()
	}

	count := int(0.1 * math.Pow(mass, 0.75) * math.Pow(b.minimalCharacteristicLength, -1.71))
	position := append([]float64(nil), sat1.Position()...)
	b.output = NewSatelliteSoA(b.currentMaxID, Debris, position, count)
}

// addCollisionRemnant prepends the single remnant row of a non catastrophic
// collision carrying the unfragmented mass of the bigger parent.
func (b *Breakup) addCollisionRemnant() {
	lc, aom, area, mass := b.output.PrependElement()
	*mass = b.inputMass - b.outputMass
	*lc = characteristicLengthFromMass(*mass)
	*aom = areaToMassRatioSample(b.rng.source(), b.satType, *lc)
	*area = areaFromLc(*lc)
	b.outputMass = b.inputMass
}

// collisionAssignParentProperties distributes the fragments over both
// parents. Fragments bigger than the small parent can only stem from the
// big one; the rest follows the big parent's share of the realized output
// mass. Both passes carry an accumulator and stay sequential.
func (b *Breakup) collisionAssignParentProperties() {
	bigName := b.bigSat.Name() + "-Collision-Fragment"
	smallName := b.smallSat.Name() + "-Collision-Fragment"

	out := b.output
	assignedToLarge := 0.0
	fromBig := make([]bool, out.Size())
	for row := 0; row < out.Size(); row++ {
		if out.characteristicLength[row] > b.smallSat.CharacteristicLength() {
			out.names[row] = &bigName
			copy(out.velocity[row], b.bigSat.Velocity())
			assignedToLarge += out.mass[row]
			fromBig[row] = true
		}
	}

	targetLarge := b.bigSat.Mass() * b.outputMass / b.inputMass
	for row := 0; row < out.Size(); row++ {
		if fromBig[row] {
			continue
		}
		if assignedToLarge < targetLarge {
			out.names[row] = &bigName
			copy(out.velocity[row], b.bigSat.Velocity())
			assignedToLarge += out.mass[row]
		} else {
			out.names[row] = &smallName
			copy(out.velocity[row], b.smallSat.Velocity())
		}
	}
}
