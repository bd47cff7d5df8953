// Package cache models a set-associative cache. It provides the address
// decomposition, the per-set associative lookup, and a priority-rank
// approximation of LRU replacement with dirty-bit write-back bookkeeping.
package cache

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrBadGeometry is returned when the requested cache shape cannot be
// realized with bit-field address decomposition.
var ErrBadGeometry = errors.New("invalid cache geometry")

// A Geometry describes the shape of a cache. Addresses split as
//
//	|****** TAG ******|**** SET ****|** OFFSET **|
//
// so BlockSize and the derived NumSets must both be powers of two.
type Geometry struct {
	BlockSize        int
	WayAssociativity int
	ByteSize         uint64

	NumSets int

	offsetBits uint
	setBits    uint
	tagShift   uint
}

// MakeGeometry validates the cache shape and derives the field widths used
// for address decomposition. No partial geometry is produced on failure.
func MakeGeometry(blockSize, ways int, byteSize uint64) (Geometry, error) {
	if blockSize <= 0 || !isPowerOfTwo(uint64(blockSize)) {
		return Geometry{}, fmt.Errorf(
			"%w: block size %d is not a power of two",
			ErrBadGeometry, blockSize)
	}

	if ways < 1 {
		return Geometry{}, fmt.Errorf(
			"%w: way associativity %d is less than 1",
			ErrBadGeometry, ways)
	}

	setSize := uint64(blockSize) * uint64(ways)
	if byteSize == 0 || byteSize%setSize != 0 {
		return Geometry{}, fmt.Errorf(
			"%w: capacity %d is not a multiple of %d-byte sets",
			ErrBadGeometry, byteSize, setSize)
	}

	numSets := byteSize / setSize
	if !isPowerOfTwo(numSets) {
		return Geometry{}, fmt.Errorf(
			"%w: derived set count %d is not a power of two",
			ErrBadGeometry, numSets)
	}

	offsetBits := uint(bits.OnesCount64(uint64(blockSize) - 1))
	setBits := uint(bits.OnesCount64(numSets - 1))

	g := Geometry{
		BlockSize:        blockSize,
		WayAssociativity: ways,
		ByteSize:         byteSize,
		NumSets:          int(numSets),
		offsetBits:       offsetBits,
		setBits:          setBits,
		tagShift:         offsetBits + setBits,
	}

	return g, nil
}

// Decode splits an address into the tag and the index of the set that may
// hold it. It is total over all 64-bit addresses.
func (g Geometry) Decode(addr uint64) (tag uint64, setID int) {
	setID = int((addr >> g.offsetBits) & uint64(g.NumSets-1))
	tag = addr >> g.tagShift

	return
}

func isPowerOfTwo(v uint64) bool {
	return v != 0 && v&(v-1) == 0
}
