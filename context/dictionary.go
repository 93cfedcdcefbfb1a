package context

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// node is one trie cell, keyed by the sequence of frames walked to reach
// it. A node carries an assigned Symbol once some context terminates there.
type node struct {
	children map[Frame]*node
	symbol   Symbol
}

func newNode() *node {
	return &node{children: make(map[Frame]*node)}
}

// Dictionary is a bijection between calling contexts and dense integer
// symbols, backed by a trie. Insertion is monotonic: once a context is
// assigned a symbol, that symbol never changes or is reused.
//
// Dictionary is not safe for concurrent use; the tracer that owns it runs
// single-threaded per spec.
type Dictionary struct {
	root *node
	next Symbol

	file     *os.File
	lastSeen Symbol
}

// NewDictionary creates an empty, unpersisted dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{
		root: newNode(),
		next: NoSymbol + 1,
	}
}

// Open associates an append-only log file with the dictionary. Every time
// a previously unseen symbol is minted, one line is appended:
// "[id]:<rendered context>".
func (d *Dictionary) Open(path string) error {
	if d.file != nil {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return errors.Wrapf(err, "context: open dictionary file %q", path)
	}
	d.file = f
	return nil
}

// Close closes the persisted dictionary file, if any. Idempotent.
func (d *Dictionary) Close() error {
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	if err != nil {
		return errors.Wrap(err, "context: close dictionary file")
	}
	return nil
}

// Insert walks the trie for seq, returning the symbol assigned to that
// exact sequence, minting a new one at the terminating node if this is the
// first time the sequence has been seen. If a file is open and a new
// symbol was minted, the mapping is appended to it.
//
// Insert fails only if seq is empty.
func (d *Dictionary) Insert(seq Context) (Symbol, error) {
	if len(seq) == 0 {
		return NoSymbol, ErrEmptyContext
	}
	seq = seq.Truncate()

	n := d.root
	for _, f := range seq {
		child, ok := n.children[f]
		if !ok {
			child = newNode()
			n.children[f] = child
		}
		n = child
	}

	isNew := n.symbol == NoSymbol
	if isNew {
		n.symbol = d.next
		d.next++
	}

	if isNew && d.file != nil {
		line := fmt.Sprintf("[%d]:%s\n", n.symbol, seq.String())
		if _, err := d.file.WriteString(line); err != nil {
			// Output-file I/O failures degrade silently: the model must
			// not be perturbed by a logging error.
			return n.symbol, nil
		}
		d.lastSeen = n.symbol
	}

	return n.symbol, nil
}

// Len returns the number of distinct symbols minted so far.
func (d *Dictionary) Len() int {
	return int(d.next - 1)
}
