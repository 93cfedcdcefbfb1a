// Package typetable records which I/O operation kind each calling-context
// symbol denotes, and enforces that the association never changes: a
// given context always means the same operation.
package typetable

import (
	"fmt"

	"github.com/omniscio/omniscio-go/context"
)

// Op is the kind of I/O operation a calling context was captured at.
type Op int

const (
	Open Op = iota
	Close
	Read
	Write
)

func (o Op) String() string {
	switch o {
	case Open:
		return "open"
	case Close:
		return "close"
	case Read:
		return "read"
	case Write:
		return "write"
	default:
		return "unknown"
	}
}

// Table maps context symbols to the operation kind they were first
// observed with.
type Table struct {
	kinds map[context.Symbol]Op
}

// New returns an empty Table.
func New() *Table {
	return &Table{kinds: make(map[context.Symbol]Op)}
}

// Record associates sym with op. If sym was already associated with a
// different op, Record returns an error: the same calling context
// appearing at two different operation kinds would mean the context
// dictionary failed to distinguish them.
func (t *Table) Record(sym context.Symbol, op Op) error {
	if existing, ok := t.kinds[sym]; ok {
		if existing != op {
			return fmt.Errorf("typetable: symbol %d already recorded as %s, got %s", sym, existing, op)
		}
		return nil
	}
	t.kinds[sym] = op
	return nil
}

// Lookup returns the operation kind recorded for sym, if any.
func (t *Table) Lookup(sym context.Symbol) (Op, bool) {
	op, ok := t.kinds[sym]
	return op, ok
}

// Len is the number of distinct symbols recorded.
func (t *Table) Len() int { return len(t.kinds) }
