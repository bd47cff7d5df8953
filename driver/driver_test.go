package driver_test

import (
	"errors"
	"io"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/driver"
	"github.com/sarchlab/cachesim/stats"
	"github.com/sarchlab/cachesim/trace"
)

var _ = Describe("Driver", func() {
	var (
		mockCtrl    *gomock.Controller
		model       *cache.Model
		accumulator *stats.Accumulator
		d           *driver.Driver
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())

		var err error
		model, err = cache.MakeBuilder().
			WithBlockSize(16).
			WithWayAssociativity(1).
			WithByteSize(16 * 1024).
			Build()
		Expect(err).ToNot(HaveOccurred())

		accumulator = stats.NewAccumulator(model.Geometry(), stats.Penalties{
			MissPenalty:    30,
			DirtyWBPenalty: 2,
		})
		d = driver.NewDriver(model, accumulator)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should drain the source in order", func() {
		src := NewMockSource(mockCtrl)
		first := src.EXPECT().Next().
			Return(trace.Access{Address: 0x0, Instructions: 4}, nil)
		second := src.EXPECT().Next().
			Return(trace.Access{Address: 0x0, Instructions: 6}, nil).
			After(first)
		src.EXPECT().Next().
			Return(trace.Access{}, io.EOF).
			After(second)

		err := d.Run(src)

		Expect(err).ToNot(HaveOccurred())
		summary := d.Summary()
		Expect(summary.TotalAccesses).To(Equal(int64(2)))
		Expect(summary.Misses).To(Equal(int64(1)))
		Expect(summary.Hits).To(Equal(int64(1)))
		Expect(summary.Instructions).To(Equal(int64(10)))
	})

	It("should abort on a source error", func() {
		srcErr := errors.New("disk gone")
		src := NewMockSource(mockCtrl)
		src.EXPECT().Next().Return(trace.Access{}, srcErr)

		err := d.Run(src)

		Expect(err).To(MatchError(srcErr))
		Expect(d.Summary().TotalAccesses).To(Equal(int64(0)))
	})

	It("should notify observers once per access", func() {
		var seen []cache.Outcome
		d.AddObserver(observerFunc(func(_ trace.Access, o cache.Outcome) {
			seen = append(seen, o)
		}))

		src := trace.NewSliceSource([]trace.Access{
			{Address: 0x0},
			{Address: 0x0},
			{Address: 0x4000},
		})

		Expect(d.Run(src)).To(Succeed())
		Expect(seen).To(Equal([]cache.Outcome{
			{Hit: false},
			{Hit: true},
			{Hit: false},
		}))
	})

	It("should replay a conflict trace end to end", func() {
		src := trace.NewSliceSource([]trace.Access{
			{Address: 0x0, Instructions: 10},
			{Address: 0x4000, Instructions: 10},
		})

		Expect(d.Run(src)).To(Succeed())

		summary := d.Summary()
		Expect(summary.TotalAccesses).To(Equal(int64(2)))
		Expect(summary.Misses).To(Equal(int64(2)))
		Expect(summary.DirtyWritebacks).To(Equal(int64(0)))
		Expect(summary.MissRate).To(Equal(100.0))
		Expect(summary.Cycles).To(Equal(int64(20 + 2*30)))
		Expect(summary.IPC).To(Equal(20.0 / 80.0))
	})

	It("should report NaN rates for an empty trace", func() {
		src := trace.NewSliceSource(nil)

		Expect(d.Run(src)).To(Succeed())

		summary := d.Summary()
		Expect(summary.TotalAccesses).To(Equal(int64(0)))
		Expect(math.IsNaN(summary.MissRate)).To(BeTrue())
		Expect(math.IsNaN(summary.IPC)).To(BeTrue())
	})
})

// observerFunc adapts a function to the Observer interface.
type observerFunc func(trace.Access, cache.Outcome)

func (f observerFunc) ObserveAccess(a trace.Access, o cache.Outcome) {
	f(a, o)
}
