// Package grammar implements an online Sequitur grammar inference engine
// over a stream of integer symbols, augmented with "predictor marks": an
// auxiliary index of grammar positions consistent with the most recently
// consumed input, used to answer "what symbol comes next?" in O(1).
//
// Grammar nodes and rules live in two arenas (nodeArena, ruleArena) and are
// referenced by plain indices (NodeID, RuleID) rather than raw pointers,
// avoiding the pointer hazards of the original pointer-heavy C++
// implementation. Slots are never reused, so an index never needs a
// generation to tell a live object from a dead one.
package grammar

// Symbol is a terminal value from the input stream.
type Symbol int64

// NodeID indexes into an Oracle's node arena. The zero value is never a
// valid node.
type NodeID int32

// RuleID indexes into an Oracle's rule arena. The zero value is never a
// valid rule.
type RuleID int32

const (
	noNode NodeID = 0
	noRule RuleID = 0
)

type nodeKind uint8

const (
	kindTerminal nodeKind = iota
	kindNonterminal
	kindGuard
)

// node is one cell of a rule's doubly linked body.
type node struct {
	kind  nodeKind
	value Symbol // valid when kind == kindTerminal
	rule  RuleID // valid when kind != kindTerminal: the rule instantiated (nonterminal) or represented (guard)
	owner RuleID // the rule whose body contains this occurrence

	prev, next NodeID

	isPredictor bool
	// predictors is never populated: the oracle keeps no per-occurrence
	// set of child predictor positions and instead recomputes its flat
	// prediction set on every Input (see advancePredictions). It stays nil.
	predictors map[NodeID]bool

	dead bool
}

// rule is a production: a circular doubly linked body of nodes bracketed
// by a guard cell, plus the set of nonterminal occurrences that reference
// it ("users").
type rule struct {
	guard NodeID
	users map[NodeID]bool
	index int // stable numbering used when printing the grammar
	dead  bool
}
