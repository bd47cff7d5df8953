package cache_test

import (
	"errors"
	"io"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/trace"
)

func read(addr uint64) trace.Access {
	return trace.Access{Address: addr}
}

func write(addr uint64) trace.Access {
	return trace.Access{IsWrite: true, Address: addr}
}

// expectUniqueValidTags asserts that no tag is resident twice in a set.
func expectUniqueValidTags(m *cache.Model, setID int) {
	seen := make(map[uint64]bool)
	for _, line := range m.Set(setID) {
		if !line.Valid {
			continue
		}
		Expect(seen[line.Tag]).To(BeFalse())
		seen[line.Tag] = true
	}
}

var _ = Describe("Model", func() {
	Context("direct-mapped, 16 B blocks, 16 KB", func() {
		var m *cache.Model

		BeforeEach(func() {
			var err error
			m, err = cache.MakeBuilder().
				WithBlockSize(16).
				WithWayAssociativity(1).
				WithByteSize(16 * 1024).
				Build()
			Expect(err).ToNot(HaveOccurred())
		})

		It("should evict on a conflicting clean read", func() {
			first := m.Probe(read(0x0))
			second := m.Probe(read(0x4000))

			Expect(first).To(Equal(cache.Outcome{Hit: false}))
			Expect(second).To(Equal(cache.Outcome{Hit: false}))
		})

		It("should hit a read after a write to the same address", func() {
			first := m.Probe(write(0x100))
			second := m.Probe(read(0x100))

			Expect(first.Hit).To(BeFalse())
			Expect(second.Hit).To(BeTrue())
			Expect(second.DirtyWriteback).To(BeFalse())
		})

		It("should write back a dirty line on eviction", func() {
			m.Probe(write(0x100))
			outcome := m.Probe(read(0x4100))

			Expect(outcome.Hit).To(BeFalse())
			Expect(outcome.DirtyWriteback).To(BeTrue())
		})

		It("should not write back a clean line on eviction", func() {
			m.Probe(read(0x100))
			outcome := m.Probe(read(0x4100))

			Expect(outcome.DirtyWriteback).To(BeFalse())
		})

		It("should keep a line dirty across later reads", func() {
			m.Probe(write(0x100))
			m.Probe(read(0x100))
			m.Probe(read(0x100))

			outcome := m.Probe(read(0x4100))
			Expect(outcome.DirtyWriteback).To(BeTrue())
		})

		It("should keep hitting the same address", func() {
			m.Probe(read(0x200))

			for i := 0; i < 20; i++ {
				Expect(m.Probe(read(0x200)).Hit).To(BeTrue())
			}
		})

		It("should not touch other sets", func() {
			m.Probe(write(0x10))
			before := m.Set(1)

			for i := 0; i < 10; i++ {
				m.Probe(write(uint64(i) * 0x4000))
			}

			Expect(m.Set(1)).To(Equal(before))
		})
	})

	Context("4-way, 16 B blocks, 16 sets", func() {
		var m *cache.Model

		// Addresses 0x0, 0x100, 0x200, ... all map to set 0.
		BeforeEach(func() {
			var err error
			m, err = cache.MakeBuilder().
				WithBlockSize(16).
				WithWayAssociativity(4).
				WithByteSize(1024).
				Build()
			Expect(err).ToNot(HaveOccurred())
		})

		It("should fill all ways without write-backs", func() {
			for i := 0; i < 4; i++ {
				outcome := m.Probe(read(uint64(i) * 0x100))

				Expect(outcome.Hit).To(BeFalse())
				Expect(outcome.DirtyWriteback).To(BeFalse())
			}

			for i := 0; i < 4; i++ {
				Expect(m.Probe(read(uint64(i) * 0x100)).Hit).To(BeTrue())
			}
		})

		It("should evict the least-recently-touched tag when full", func() {
			for i := 0; i < 4; i++ {
				m.Probe(read(uint64(i) * 0x100))
			}

			outcome := m.Probe(read(0x400))
			Expect(outcome.Hit).To(BeFalse())

			// The oldest tag (address 0x0) is gone; the others survive.
			Expect(m.Probe(read(0x100)).Hit).To(BeTrue())
			Expect(m.Probe(read(0x200)).Hit).To(BeTrue())
			Expect(m.Probe(read(0x300)).Hit).To(BeTrue())
			Expect(m.Probe(read(0x0)).Hit).To(BeFalse())
		})

		It("should account recency by access order, not fill order", func() {
			for i := 0; i < 4; i++ {
				m.Probe(read(uint64(i) * 0x100))
			}
			m.Probe(read(0x0)) // refresh the oldest tag

			m.Probe(read(0x400))

			// 0x100 became the oldest and was evicted.
			Expect(m.Probe(read(0x0)).Hit).To(BeTrue())
			Expect(m.Probe(read(0x100)).Hit).To(BeFalse())
		})

		It("should write back the evicted way only if it was dirty", func() {
			m.Probe(write(0x0))
			for i := 1; i < 4; i++ {
				m.Probe(read(uint64(i) * 0x100))
			}

			outcome := m.Probe(read(0x400))

			Expect(outcome.Hit).To(BeFalse())
			Expect(outcome.DirtyWriteback).To(BeTrue())
		})

		It("should never hold the same tag twice in a set", func() {
			src := trace.NewRandomSource(2000, 0x800, 0.5, 42)

			for {
				access, err := src.Next()
				if errors.Is(err, io.EOF) {
					break
				}

				m.Probe(access)
				_, setID := m.Geometry().Decode(access.Address)
				expectUniqueValidTags(m, setID)
			}
		})
	})

	Context("builder", func() {
		It("should reject invalid geometry", func() {
			_, err := cache.MakeBuilder().
				WithBlockSize(24).
				Build()

			Expect(err).To(MatchError(cache.ErrBadGeometry))
		})

		It("should reject an unknown replace strategy", func() {
			_, err := cache.MakeBuilder().
				WithReplaceStrategy("clock").
				Build()

			Expect(err).To(HaveOccurred())
		})
	})
})
