// Package context associates ordered sequences of call-stack return
// addresses ("calling contexts") with small dense integer symbols.
package context

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// MaxDepth is the maximum number of frames kept in a Context; deeper
// call stacks are truncated, not rejected.
const MaxDepth = 256

// Symbol identifies a unique calling context. Zero is reserved to mean
// "no previous symbol".
type Symbol int64

// NoSymbol is the sentinel value meaning "no previous symbol".
const NoSymbol Symbol = 0

// Frame is one return address in a calling context.
type Frame uintptr

// Context is an ordered sequence of caller return addresses captured at
// the time an I/O call was made.
type Context []Frame

// Truncate caps a context at MaxDepth frames, keeping the innermost ones.
func (c Context) Truncate() Context {
	if len(c) <= MaxDepth {
		return c
	}
	return c[:MaxDepth]
}

// String renders the context the way the dictionary's append-only log
// file does: a comma-separated list of hex addresses.
func (c Context) String() string {
	parts := make([]string, len(c))
	for i, f := range c {
		parts[i] = fmt.Sprintf("0x%x", uintptr(f))
	}
	return strings.Join(parts, ",")
}

// ErrEmptyContext is returned when Dictionary.Insert is called with a
// zero-length context; a symbol cannot be formed from no frames.
var ErrEmptyContext = errors.New("context: empty calling context")
