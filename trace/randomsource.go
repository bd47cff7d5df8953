package trace

import (
	"io"
	"math"
	"math/rand"
)

// A RandomSource generates a bounded number of uniformly distributed
// accesses. The same seed always produces the same trace.
type RandomSource struct {
	rand *rand.Rand

	left          int
	maxAddress    uint64
	writeFraction float64
}

// NewRandomSource creates a generator of count accesses with addresses
// in [0, maxAddress) and the given fraction of writes.
func NewRandomSource(
	count int,
	maxAddress uint64,
	writeFraction float64,
	seed int64,
) *RandomSource {
	if maxAddress == 0 {
		maxAddress = 1
	}

	return &RandomSource{
		rand:          rand.New(rand.NewSource(seed)),
		left:          count,
		maxAddress:    maxAddress,
		writeFraction: writeFraction,
	}
}

// Next returns the next generated access, or io.EOF once count accesses
// have been produced.
func (s *RandomSource) Next() (Access, error) {
	if s.left <= 0 {
		return Access{}, io.EOF
	}
	s.left--

	a := Access{
		IsWrite:      s.rand.Float64() < s.writeFraction,
		Address:      s.address(),
		Instructions: uint32(s.rand.Intn(16) + 1),
	}

	return a, nil
}

// address draws uniformly from [0, maxAddress) without modulo bias.
func (s *RandomSource) address() uint64 {
	if s.maxAddress <= math.MaxInt64 {
		return uint64(s.rand.Int63n(int64(s.maxAddress)))
	}

	for {
		v := s.rand.Uint64()
		if v < s.maxAddress {
			return v
		}
	}
}
