package breakup

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"sync"

	"golang.org/x/exp/rand"
)

// entropySeed draws a 64 bit seed from the system entropy source.
func entropySeed() uint64 {
	var b [8]byte
	if _, err := cryptorand.Read(b[:]); err != nil {
		panic(err)
	}
	return binary.LittleEndian.Uint64(b[:])
}

// lockedSource guards a single PRNG stream with a mutex so that every
// sample acquires the lock.
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	v := s.src.Uint64()
	s.mu.Unlock()
	return v
}

func (s *lockedSource) Seed(seed uint64) {
	s.mu.Lock()
	s.src.Seed(seed)
	s.mu.Unlock()
}

// rngProvider hands one source to every sampling worker. By default each
// worker receives its own entropy seeded stream and samples without any
// synchronization. In fixed seed mode all workers share a single locked
// stream; reproducibility additionally requires a single worker.
type rngProvider struct {
	fixed rand.Source
}

func newRNGProvider() *rngProvider {
	return &rngProvider{}
}

func newFixedRNGProvider(seed uint64) *rngProvider {
	return &rngProvider{fixed: &lockedSource{src: rand.NewSource(seed)}}
}

func (p *rngProvider) source() rand.Source {
	if p.fixed != nil {
		return p.fixed
	}
	return rand.NewSource(entropySeed())
}
