package breakup

import (
	"math"
	"runtime"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// breakupKind selects the specialized steps of the pipeline.
type breakupKind uint8

const (
	explosionKind breakupKind = iota
	collisionKind
)

// Breakup is the seven step fragment generator of the NASA standard breakup
// model. Construct one with NewExplosion or NewCollision, then call Run once.
// The sampling steps run data parallel over rows; parent assignment and the
// mass conservation fix up are sequential.
type Breakup struct {
	logger  log.Logger
	rng     *rngProvider
	workers int

	kind                        breakupKind
	parents                     []Satellite
	minimalCharacteristicLength float64
	currentMaxID                int64
	conserveMass                bool

	// Distribution parameters, selected by init.
	lcPowerLawExponent  float64
	deltaVelocityFactor float64
	deltaVelocityOffset float64

	// State of the current run.
	maximalCharacteristicLength float64
	inputMass                   float64
	outputMass                  float64
	satType                     SatType
	isCatastrophic              bool
	bigSat, smallSat            Satellite

	output *SatelliteSoA
}

func newBreakup(kind breakupKind, parents []Satellite, minimalLc float64, currentMaxID int64) *Breakup {
	return &Breakup{
		logger:                      log.NewNopLogger(),
		rng:                         newRNGProvider(),
		kind:                        kind,
		parents:                     parents,
		minimalCharacteristicLength: minimalLc,
		currentMaxID:                currentMaxID,
	}
}

// NewExplosion prepares a breakup of a single parent.
func NewExplosion(parent Satellite, minimalLc float64, currentMaxID int64) *Breakup {
	return newBreakup(explosionKind, []Satellite{parent}, minimalLc, currentMaxID)
}

// NewCollision prepares a breakup of two colliding parents.
func NewCollision(parent1, parent2 Satellite, minimalLc float64, currentMaxID int64) *Breakup {
	return newBreakup(collisionKind, []Satellite{parent1, parent2}, minimalLc, currentMaxID)
}

// SetLogger routes diagnostics of this run.
func (b *Breakup) SetLogger(logger log.Logger) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	b.logger = logger
}

// SetSeed switches to a single mutex guarded PRNG stream with the given
// seed. Byte identical reruns additionally require SetWorkers(1).
func (b *Breakup) SetSeed(seed uint64) {
	b.rng = newFixedRNGProvider(seed)
}

// SetWorkers caps the data parallel sampling steps. Zero or negative picks
// one worker per CPU.
func (b *Breakup) SetWorkers(n int) {
	b.workers = n
}

// SetEnforceMassConservation turns on the growth branch of the mass
// conservation step.
func (b *Breakup) SetEnforceMassConservation(enabled bool) {
	b.conserveMass = enabled
}

// Input returns the parent satellites.
func (b *Breakup) Input() []Satellite {
	return b.parents
}

// Result returns the fragment batch of the last run in columnar form.
func (b *Breakup) Result() *SatelliteSoA {
	return b.output
}

// ResultAoS returns the fragment batch of the last run in row form.
func (b *Breakup) ResultAoS() []Satellite {
	return b.output.AoS()
}

// IsCatastrophic reports whether a collision run took the catastrophic
// branch. Explosions always report false.
func (b *Breakup) IsCatastrophic() bool {
	return b.isCatastrophic
}

// CurrentMaxID returns the largest fragment id in use after a run.
func (b *Breakup) CurrentMaxID() int64 {
	if b.output == nil {
		return b.currentMaxID
	}
	return b.output.StartID() + int64(b.output.Size())
}

// Run executes the pipeline.
func (b *Breakup) Run() {
	b.init()
	b.calculateFragmentCount()
	b.characteristicLengthDistribution()
	b.areaToMassRatioDistribution()
	b.enforceMassConservation()
	b.assignParentProperties()
	b.deltaVelocityDistribution()
}

func (b *Breakup) init() {
	b.inputMass = 0
	b.outputMass = 0
	b.isCatastrophic = false
	switch b.kind {
	case explosionKind:
		b.lcPowerLawExponent = -2.6
		b.deltaVelocityFactor = 0.2
		b.deltaVelocityOffset = 1.85
	case collisionKind:
		b.lcPowerLawExponent = -2.71
		b.deltaVelocityFactor = 0.9
		b.deltaVelocityOffset = 2.9
	}
}

func (b *Breakup) calculateFragmentCount() {
	switch b.kind {
	case explosionKind:
		b.explosionFragmentCount()
	case collisionKind:
		b.collisionFragmentCount()
	}
}

// characteristicLengthDistribution samples L_c for every row from the
// bounded power law on [L_min, L_max].
func (b *Breakup) characteristicLengthDistribution() {
	lcs := b.output.characteristicLength
	b.parallelRows(len(lcs), func(src rand.Source, from, to int) {
		uni := distuv.Uniform{Min: 0, Max: 1, Src: src}
		for i := from; i < to; i++ {
			lcs[i] = powerLawSample(uni.Rand(), b.minimalCharacteristicLength, b.maximalCharacteristicLength, b.lcPowerLawExponent)
		}
	})
}

// areaToMassRatioDistribution samples A/M for every row, then derives the
// area from L_c and the mass from both.
func (b *Breakup) areaToMassRatioDistribution() {
	out := b.output
	b.parallelRows(out.Size(), func(src rand.Source, from, to int) {
		for i := from; i < to; i++ {
			out.areaToMassRatio[i] = areaToMassRatioSample(src, b.satType, out.characteristicLength[i])
			out.area[i] = areaFromLc(out.characteristicLength[i])
			out.mass[i] = out.area[i] / out.areaToMassRatio[i]
		}
	})
}

// areaToMassRatioSample draws from the Eq. 5-7 piecewise log normal.
func areaToMassRatioSample(src rand.Source, satType SatType, lc float64) float64 {
	if lc > 0.11 {
		return bigAreaToMassRatioSample(src, satType, lc)
	}
	if lc < 0.08 {
		return smallAreaToMassRatioSample(src, lc)
	}
	// Bridge regime, linear interpolation in L_c between both samples.
	y0 := smallAreaToMassRatioSample(src, lc)
	y1 := bigAreaToMassRatioSample(src, satType, lc)
	return y0 + (lc-0.08)*(y1-y0)/0.03
}

func bigAreaToMassRatioSample(src rand.Source, satType SatType, lc float64) float64 {
	logLc := math.Log10(lc)
	n1 := distuv.Normal{Mu: μ1(satType, logLc), Sigma: σ1(satType, logLc), Src: src}.Rand()
	n2 := distuv.Normal{Mu: μ2(satType, logLc), Sigma: σ2(satType, logLc), Src: src}.Rand()
	α := alpha(satType, logLc)
	return math.Pow(10, α*n1+(1-α)*n2)
}

func smallAreaToMassRatioSample(src rand.Source, lc float64) float64 {
	logLc := math.Log10(lc)
	n := distuv.Normal{Mu: μsoc(logLc), Sigma: σsoc(logLc), Src: src}.Rand()
	return math.Pow(10, n)
}

// enforceMassConservation sums the realized masses and truncates the tail
// while the output exceeds the input budget. When there is no excess and
// the conservation flag is set, the batch grows toward the budget instead.
func (b *Breakup) enforceMassConservation() {
	b.outputMass = 0
	for _, m := range b.output.mass {
		b.outputMass += m
	}
	before := b.output.Size()
	if b.outputMass > b.inputMass {
		for b.outputMass > b.inputMass {
			row := b.output.Size() - 1
			b.outputMass -= b.output.mass[row]
			b.output.PopBack()
		}
		level.Warn(b.logger).Log("msg", "fragment mass exceeded the input mass, dropped the tail",
			"before", before, "after", b.output.Size())
	} else if b.conserveMass {
		b.addFurtherFragments()
		level.Info(b.logger).Log("msg", "mass conservation grew the fragment batch",
			"before", before, "after", b.output.Size())
	}
}

func (b *Breakup) addFurtherFragments() {
	if b.kind == collisionKind && !b.isCatastrophic {
		b.addCollisionRemnant()
		return
	}
	// Append sampled rows until just over the budget, then drop the
	// overshoot row.
	src := b.rng.source()
	uni := distuv.Uniform{Min: 0, Max: 1, Src: src}
	for b.outputMass < b.inputMass {
		lc, aom, area, mass := b.output.AppendElement()
		*lc = powerLawSample(uni.Rand(), b.minimalCharacteristicLength, b.maximalCharacteristicLength, b.lcPowerLawExponent)
		*aom = areaToMassRatioSample(src, b.satType, *lc)
		*area = areaFromLc(*lc)
		*mass = *area / *aom
		b.outputMass += *mass
	}
	row := b.output.Size() - 1
	b.outputMass -= b.output.mass[row]
	b.output.PopBack()
}

func (b *Breakup) assignParentProperties() {
	switch b.kind {
	case explosionKind:
		b.explosionAssignParentProperties()
	case collisionKind:
		b.collisionAssignParentProperties()
	}
}

// deltaVelocityDistribution samples an ejection velocity magnitude from the
// log normal of Eq. 12 and an isotropic direction, storing the ejection
// velocity and the summed velocity per row.
func (b *Breakup) deltaVelocityDistribution() {
	out := b.output
	b.parallelRows(out.Size(), func(src rand.Source, from, to int) {
		uniU := distuv.Uniform{Min: -1, Max: 1, Src: src}
		uniθ := distuv.Uniform{Min: 0, Max: 2 * math.Pi, Src: src}
		for i := from; i < to; i++ {
			χ := math.Log10(out.areaToMassRatio[i])
			sample := distuv.Normal{Mu: b.deltaVelocityFactor*χ + b.deltaVelocityOffset, Sigma: 0.4, Src: src}.Rand()
			velocity := math.Pow(10, sample)
			u := uniU.Rand()
			θ := uniθ.Rand()
			sinφ := math.Sqrt(1 - u*u)
			ejection := []float64{
				velocity * sinφ * math.Cos(θ),
				velocity * sinφ * math.Sin(θ),
				velocity * u,
			}
			out.ejectionVelocity[i] = ejection
			out.velocity[i] = add(out.velocity[i], ejection)
		}
	})
}

// parallelRows splits [0, n) into contiguous chunks, one goroutine each,
// every worker sampling from its own source.
func (b *Breakup) parallelRows(n int, fn func(src rand.Source, from, to int)) {
	workers := b.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(b.rng.source(), 0, n)
		return
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for from := 0; from < n; from += chunk {
		to := from + chunk
		if to > n {
			to = n
		}
		wg.Add(1)
		go func(src rand.Source, from, to int) {
			defer wg.Done()
			fn(src, from, to)
		}(b.rng.source(), from, to)
	}
	wg.Wait()
}
