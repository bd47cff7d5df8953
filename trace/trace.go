// Package trace defines memory access records and the sources that
// produce them. Sources are external producers: they read or generate a
// finite, forward-only stream of well-formed accesses for the cache
// model to replay.
package trace

// An Access is one record of a memory trace: the access kind, the
// 64-bit address touched, and the number of instructions the traced
// program retired since the previous memory access.
type Access struct {
	IsWrite      bool
	Address      uint64
	Instructions uint32
}

// A Source produces a lazy, finite sequence of accesses. Next returns
// io.EOF once the trace is exhausted. Sources never hand malformed
// records to the caller; a parse failure surfaces as a non-EOF error.
type Source interface {
	Next() (Access, error)
}
