package breakup

import "math"

// Eq. 1 density relation, rho(L_c) = 92.937 * L_c^-0.74 kg/m^3, treating a
// fragment as a sphere of diameter L_c.
const (
	densityFactor   = 92.937
	densityExponent = -0.74
	sphereMassExponent = 3 + densityExponent
)

// sphereMass returns the mass of a fragment of the given characteristic length.
func sphereMass(lc float64) float64 {
	return densityFactor * (math.Pi / 6) * math.Pow(lc, sphereMassExponent)
}

// characteristicLengthFromMass inverts the Eq. 1 sphere mass.
func characteristicLengthFromMass(mass float64) float64 {
	return math.Pow(mass/(densityFactor*math.Pi/6), 1/sphereMassExponent)
}

// circleArea returns the cross section of a sphere of diameter L_c.
func circleArea(lc float64) float64 {
	return math.Pi * (lc / 2) * (lc / 2)
}

// characteristicLengthFromArea inverts circleArea.
func characteristicLengthFromArea(area float64) float64 {
	return 2 * math.Sqrt(area/math.Pi)
}

// areaFromLc implements Eq. 8/9.
func areaFromLc(lc float64) float64 {
	if lc < 0.00167 {
		return 0.540424 * lc * lc
	}
	return 0.556945 * math.Pow(lc, 2.0047077)
}

// powerLawSample transforms a uniform draw y in [0,1) into a bounded Pareto
// sample on [min, max] with the given exponent.
func powerLawSample(y, min, max, exponent float64) float64 {
	e1 := exponent + 1
	return math.Pow((math.Pow(max, e1)-math.Pow(min, e1))*y+math.Pow(min, e1), 1/e1)
}

// distributionConstant is the shared shape of the Eq. 5, 6, 7 piecewise
// linear coefficient functions.
func distributionConstant(logLc, lowerBound, upperBound, lowerReturn, upperReturn float64, mid func(float64) float64) float64 {
	if logLc <= lowerBound {
		return lowerReturn
	} else if logLc >= upperBound {
		return upperReturn
	}
	return mid(logLc)
}

// alpha weighs the two normals of the bimodal regime for L_c > 11cm.
func alpha(satType SatType, logLc float64) float64 {
	if satType == RocketBody {
		return distributionConstant(logLc, -1.4, 0.0, 1.0, 0.5,
			func(x float64) float64 { return 1.0 - 0.3571*(x+1.4) })
	}
	return distributionConstant(logLc, -1.95, 0.55, 0.0, 1.0,
		func(x float64) float64 { return 0.3 + 0.4*(x+1.2) })
}

func μ1(satType SatType, logLc float64) float64 {
	if satType == RocketBody {
		return distributionConstant(logLc, -0.5, 0.0, -0.45, -0.9,
			func(x float64) float64 { return -0.45 - 0.9*(x+0.5) })
	}
	return distributionConstant(logLc, -1.1, 0.0, -0.6, -0.95,
		func(x float64) float64 { return -0.6 - 0.318*(x+1.1) })
}

func σ1(satType SatType, logLc float64) float64 {
	if satType == RocketBody {
		return 0.55
	}
	return distributionConstant(logLc, -1.3, -0.3, 0.1, 0.3,
		func(x float64) float64 { return 0.1 + 0.2*(x+1.3) })
}

func μ2(satType SatType, logLc float64) float64 {
	if satType == RocketBody {
		return -0.9
	}
	return distributionConstant(logLc, -0.7, -0.1, -1.2, -2.0,
		func(x float64) float64 { return -1.2 - 1.333*(x+0.7) })
}

func σ2(satType SatType, logLc float64) float64 {
	if satType == RocketBody {
		return distributionConstant(logLc, -1.0, 0.1, 0.28, 0.1,
			func(x float64) float64 { return -0.28 - 0.1636*(x+1.0) })
	}
	return distributionConstant(logLc, -0.5, -0.3, 0.5, 0.3,
		func(x float64) float64 { return 0.5 - (x + 0.5) })
}

// μsoc is the mean of the single normal regime for L_c < 8cm.
func μsoc(logLc float64) float64 {
	return distributionConstant(logLc, -1.75, -1.25, -0.3, -1.0,
		func(x float64) float64 { return -0.3 - 1.4*(x+1.75) })
}

// σsoc is the deviation of the single normal regime for L_c < 8cm.
func σsoc(logLc float64) float64 {
	if logLc <= -3.5 {
		return 0.2
	}
	return 0.2 + 0.1333*(logLc+3.5)
}
