package cache

import (
	"fmt"
)

// A Builder can build cache models.
type Builder struct {
	blockSize        int
	wayAssociativity int
	byteSize         uint64
	replaceStrategy  string
}

// MakeBuilder creates a builder with the default cache configuration.
func MakeBuilder() Builder {
	return Builder{
		blockSize:        16,
		wayAssociativity: 1,
		byteSize:         16 * 1024,
		replaceStrategy:  "rank-lru",
	}
}

// WithBlockSize sets the number of bytes per cache block.
func (b Builder) WithBlockSize(blockSize int) Builder {
	b.blockSize = blockSize
	return b
}

// WithWayAssociativity sets the number of ways per set.
func (b Builder) WithWayAssociativity(ways int) Builder {
	b.wayAssociativity = ways
	return b
}

// WithByteSize sets the total capacity of the cache in bytes.
func (b Builder) WithByteSize(byteSize uint64) Builder {
	b.byteSize = byteSize
	return b
}

// WithReplaceStrategy sets the replacement strategy by name. "rank-lru"
// is the only strategy currently known.
func (b Builder) WithReplaceStrategy(strategy string) Builder {
	b.replaceStrategy = strategy
	return b
}

// Build builds a cache model. It fails, producing no model, when the
// geometry is invalid or the replacement strategy is unknown.
func (b Builder) Build() (*Model, error) {
	geometry, err := MakeGeometry(b.blockSize, b.wayAssociativity, b.byteSize)
	if err != nil {
		return nil, err
	}

	policy, err := b.createPolicy()
	if err != nil {
		return nil, err
	}

	m := &Model{
		geometry: geometry,
		policy:   policy,
	}
	m.Reset()

	return m, nil
}

func (b Builder) createPolicy() (ReplacementPolicy, error) {
	switch b.replaceStrategy {
	case "rank-lru":
		return NewRankPolicy(), nil
	default:
		return nil, fmt.Errorf("unknown replace strategy: %s", b.replaceStrategy)
	}
}
