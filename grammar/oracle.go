package grammar

import "fmt"

// Oracle is an online Sequitur grammar inferred incrementally over a
// stream of Symbols, together with a predictor-mark index that tracks
// every grammar position consistent with the symbols consumed so far.
//
// An Oracle is not safe for concurrent use.
type Oracle struct {
	nodes []node
	rules []rule

	digramIndex map[digramKey]NodeID

	startRule     RuleID
	nextRuleIndex int

	// predictions is the set of terminal occurrences whose value is a
	// candidate for the next Input call, derived from every grammar
	// position reachable from the symbols consumed so far.
	predictions map[NodeID]bool

	// version increments on every Input, and additionally on every
	// structural change (rule creation, deletion, substitution). Exposed so
	// callers can detect whether a previously observed prediction set is
	// still current.
	version int64
}

// NewOracle returns an Oracle with an empty start rule and no predictions.
func NewOracle() *Oracle {
	o := &Oracle{
		digramIndex: make(map[digramKey]NodeID),
		predictions: make(map[NodeID]bool),
	}
	// slot 0 is reserved in both arenas so the zero NodeID/RuleID never
	// aliases a live object.
	o.nodes = append(o.nodes, node{dead: true})
	o.rules = append(o.rules, rule{dead: true})
	o.startRule = o.newRule()
	return o
}

// Version reports the oracle's change counter. It increases monotonically,
// by at least one on every Input.
func (o *Oracle) Version() int64 { return o.version }

// Input folds one more symbol into the grammar and advances the
// predictor-mark index accordingly.
func (o *Oracle) Input(v Symbol) {
	before := o.version
	o.observe(v)
	if o.version == before {
		o.version++
	}
	o.advancePredictions(v)
}

// PredictNext returns the distinct symbol values predicted to follow the
// symbols consumed so far, in ascending order. An empty slice means the
// oracle currently has no prediction (e.g. immediately after the very
// first Input call).
func (o *Oracle) PredictNext() []Symbol {
	seen := make(map[Symbol]bool, len(o.predictions))
	out := make([]Symbol, 0, len(o.predictions))
	for id := range o.predictions {
		v := o.n(id).value
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	// insertion sort: prediction sets are small in practice.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// observe appends v to the start rule's body and runs the Sequitur
// digram-uniqueness and rule-utility maintenance this appension may
// trigger.
func (o *Oracle) observe(v Symbol) {
	t := o.newTerminal(v)
	o.linkOwner(t, o.startRule)
	o.insertAfter(o.last(o.startRule), t)
	n := o.prev(t)
	if n != o.guard(o.startRule) {
		o.check(n)
	}
}

func (o *Oracle) linkOwner(id NodeID, owner RuleID) {
	o.n(id).owner = owner
}

// check looks for an existing digram equal to the one anchored at n. If
// none exists, it records this one as the canonical occurrence. If one
// does, it folds the two occurrences into a rule (possibly a brand new
// one, possibly an existing single-use one) and reports that a structural
// change happened.
func (o *Oracle) check(n NodeID) bool {
	if o.isGuard(n) || o.isGuard(o.next(n)) {
		return false
	}
	x, ok := o.findDigram(n)
	if !ok {
		o.setDigram(n)
		return false
	}
	if x == n || o.next(x) == n {
		// No existing distinct digram, or the two overlap (as in a run
		// like 1,1,1): defer until more input disambiguates it.
		return false
	}
	o.match(n, x)
	o.version++
	return true
}

// match folds the digram at s into the digram at the earlier occurrence
// x: reusing x's rule if that rule's entire body is exactly this digram,
// otherwise minting a new rule from it.
func (o *Oracle) match(s, x NodeID) {
	var r RuleID
	px := o.prev(x)
	nnx := o.next(o.next(x))
	if o.isGuard(px) && o.isGuard(nnx) {
		r = o.n(px).rule
		o.substitute(s, r)
	} else {
		r = o.newRule()
		o.appendClone(r, x)
		o.appendClone(r, o.next(x))
		o.substitute(x, r)
		o.substitute(s, r)
	}
	first := o.first(r)
	if !o.check(first) {
		o.check(o.next(first))
	}
}

// appendClone appends to r's body a fresh occurrence equivalent to src
// (same terminal value, or a new reference to the same rule).
func (o *Oracle) appendClone(r RuleID, src NodeID) NodeID {
	snd := o.n(src)
	var id NodeID
	if snd.kind == kindTerminal {
		id = o.newTerminal(snd.value)
	} else {
		id = o.newNonterminal(snd.rule)
	}
	o.linkOwner(id, r)
	o.insertAfter(o.last(r), id)
	return id
}

// substitute replaces the two-node digram starting at s with a single
// occurrence of r, and recursively checks whether doing so created or
// exposed another digram match.
func (o *Oracle) substitute(s NodeID, r RuleID) {
	q := o.prev(s)
	owner := o.n(q).owner
	second := o.next(s)
	o.deleteNode(second)
	o.deleteNode(s)
	nt := o.newNonterminal(r)
	o.linkOwner(nt, owner)
	o.insertAfter(q, nt)
	if !o.check(q) {
		o.check(o.next(q))
	}
}

// enforceUtility inlines r's sole remaining occurrence if r has dropped
// to a single user; every rule but the start rule must always be used at
// least twice.
func (o *Oracle) enforceUtility(r RuleID) {
	if r == o.startRule || o.r(r).dead {
		return
	}
	if o.freq(r) == 1 {
		o.expand(o.soleUser(r))
	}
}

// expand inlines occ's referenced rule body in place of occ and
// dissolves that rule.
func (o *Oracle) expand(occ NodeID) {
	rid := o.n(occ).rule
	owner := o.n(occ).owner
	q := o.prev(occ)
	after := o.next(occ)
	guard := o.guard(rid)
	first := o.first(rid)
	o.deleteDigram(occ)
	delete(o.r(rid).users, occ)

	if first == guard {
		o.join(q, after)
	} else {
		last := o.last(rid)
		for c := first; c != guard; c = o.n(c).next {
			o.n(c).owner = owner
		}
		o.join(q, first)
		o.join(last, after)
	}
	o.n(occ).dead = true
	o.n(guard).dead = true
	o.r(rid).dead = true
	o.version++

	if !o.check(q) {
		o.check(o.next(q))
	}
}

// InvariantError reports a violated grammar invariant: a digram that
// occurs more than once, or a non-start rule used fewer than twice. It
// indicates a bug in the oracle, not a property of the input stream.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string { return "grammar: invariant violated: " + e.Msg }

// CheckInvariants walks the live grammar and returns an *InvariantError
// if digram uniqueness or rule utility has been violated. Two occurrences
// of a digram that overlap (a run like 1,1,1) do not count as a
// duplicate, matching check. It is O(size
// of the grammar) and intended for tests, not production hot paths.
func (o *Oracle) CheckInvariants() error {
	seen := make(map[digramKey]NodeID)
	for rid := 1; rid < len(o.rules); rid++ {
		r := &o.rules[rid]
		if r.dead {
			continue
		}
		if RuleID(rid) != o.startRule && len(r.users) < 2 {
			return &InvariantError{Msg: fmt.Sprintf("rule %d used by only %d occurrence(s)", rid, len(r.users))}
		}
		guard := r.guard
		for c := o.n(guard).next; c != guard; c = o.n(c).next {
			if o.isGuard(o.n(c).next) {
				continue
			}
			key := o.digramOf(c)
			if prior, ok := seen[key]; ok {
				if o.n(prior).next == c {
					// overlapping occurrences, as in a run like 1,1,1
					continue
				}
				return &InvariantError{Msg: fmt.Sprintf("digram at node %d duplicates node %d", c, prior)}
			}
			seen[key] = c
		}
	}
	return nil
}
