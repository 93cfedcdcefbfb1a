package tracer

import (
	omniscioctx "github.com/omniscio/omniscio-go/context"
	"github.com/omniscio/omniscio-go/typetable"
)

// Handle identifies the open file an operation acts on. It stands in for
// the original implementation's per-API file handle union (a POSIX fd,
// an MPI-IO file handle, or a libc FILE*): callers pass whatever integer
// their own API already uses to identify the file.
type Handle int64

// ApiType names the I/O API an operation was made through.
type ApiType int

const (
	POSIX ApiType = iota
	MPIIO
	LIBC
)

func (a ApiType) String() string {
	switch a {
	case POSIX:
		return "POSIX"
	case MPIIO:
		return "MPIIO"
	case LIBC:
		return "LIBC"
	default:
		return "UNKNOWN"
	}
}

// bracketState is the tracer's Idle/InOp state machine: every *Start call
// must be followed by its matching *End before another *Start begins.
type bracketState int

const (
	idle bracketState = iota
	inOp
)

// Prediction is one forecast returned by Next: the symbol predicted to
// occur, how confident the model is, and the best guess at that
// operation's size, offset, inter-arrival time and kind, where the
// corresponding tracker has enough information to offer one.
type Prediction struct {
	Symbol      omniscioctx.Symbol
	Probability float64

	Size    int64
	HasSize bool

	Offset    int64
	HasOffset bool

	Time    float64
	HasTime bool

	Type    typetable.Op
	HasType bool
}
