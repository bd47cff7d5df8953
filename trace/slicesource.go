package trace

import (
	"io"
)

// A SliceSource replays accesses from an in-memory slice. It is mainly
// used by tests and by programs that synthesize traces themselves.
type SliceSource struct {
	accesses []Access
	next     int
}

// NewSliceSource creates a source over the given accesses. The slice is
// not copied; the caller must not mutate it while the source is in use.
func NewSliceSource(accesses []Access) *SliceSource {
	return &SliceSource{accesses: accesses}
}

// Next returns the next access, or io.EOF after the last one.
func (s *SliceSource) Next() (Access, error) {
	if s.next >= len(s.accesses) {
		return Access{}, io.EOF
	}

	a := s.accesses[s.next]
	s.next++

	return a, nil
}
