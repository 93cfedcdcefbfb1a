package grammar

// rawValue gives terminal and nonterminal occurrences disjoint key spaces
// so a (left, right) pair of them can be hashed into the digram index
// without a terminal value ever colliding with a rule reference. The high
// bit tags terminals; rule IDs are small enough to never set it.
func rawValue(nd *node) uint64 {
	if nd.kind == kindTerminal {
		return uint64(1)<<63 | uint64(uint64(nd.value))
	}
	return uint64(nd.rule)
}

func (o *Oracle) isNonterminal(id NodeID) bool {
	k := o.n(id).kind
	return k == kindNonterminal || k == kindGuard
}

func (o *Oracle) isGuard(id NodeID) bool {
	return o.n(id).kind == kindGuard
}

func (o *Oracle) next(id NodeID) NodeID { return o.n(id).next }
func (o *Oracle) prev(id NodeID) NodeID { return o.n(id).prev }

// join links left.next = right and right.prev = left, dropping left's old
// digram from the index and registering the new pair when neither side is
// a guard (a guard's neighbour is an end-of-rule, not a real digram) and
// no other occurrence of that digram is registered yet; an existing entry
// is left for check to find.
func (o *Oracle) join(left, right NodeID) {
	if left != noNode {
		if old := o.next(left); old != noNode && !o.isGuard(left) && !o.isGuard(old) {
			o.deleteDigram(left)
			// Unlinking the middle of a run of three equal symbols leaves
			// the run's surviving outer digram unindexed: register it again.
			for _, mid := range []NodeID{right, left} {
				if mid == noNode || o.isGuard(mid) {
					continue
				}
				p, n, v := o.prev(mid), o.next(mid), rawValue(o.n(mid))
				if p != noNode && n != noNode && !o.isGuard(p) && !o.isGuard(n) &&
					rawValue(o.n(p)) == v && rawValue(o.n(n)) == v {
					if mid == right {
						o.setDigram(right)
					} else {
						o.setDigram(p)
					}
				}
			}
		}
		o.n(left).next = right
	}
	if right != noNode {
		o.n(right).prev = left
	}
	if left != noNode && right != noNode && !o.isGuard(left) && !o.isGuard(right) {
		if _, ok := o.findDigram(left); !ok {
			o.setDigram(left)
		}
	}
}

// insertAfter splices y in immediately after x.
func (o *Oracle) insertAfter(x, y NodeID) {
	after := o.next(x)
	o.join(y, after)
	o.join(x, y)
}

// newTerminal allocates an occurrence of a terminal symbol, not yet linked
// into any rule body.
func (o *Oracle) newTerminal(v Symbol) NodeID {
	return o.newNode(node{kind: kindTerminal, value: v})
}

// newNonterminal allocates an occurrence referencing rule r, not yet
// linked into any rule body, and registers it as a user of r.
func (o *Oracle) newNonterminal(r RuleID) NodeID {
	id := o.newNode(node{kind: kindNonterminal, rule: r})
	o.reuse(r, id)
	return id
}

// deleteNode removes id from whatever body it occupies and releases its
// references: the digram it anchored, its rule usage count if it is a
// nonterminal occurrence, and its prediction-set membership if it was a
// predicted terminal.
func (o *Oracle) deleteNode(id NodeID) {
	nd := o.n(id)
	if nd.dead {
		return
	}
	if !o.isGuard(id) {
		o.deleteDigram(id)
		if o.isNonterminal(id) {
			r := nd.rule
			o.deuse(r, id)
			o.enforceUtility(r)
		}
	}
	if nd.isPredictor && nd.kind == kindTerminal {
		o.removePrediction(id)
	}
	o.join(nd.prev, nd.next)
	nd.dead = true
	nd.predictors = nil
}

func (o *Oracle) setIsPredictor(id NodeID, v bool) {
	nd := o.n(id)
	if nd.isPredictor == v {
		return
	}
	nd.isPredictor = v
	if nd.kind == kindTerminal {
		if v {
			o.addPrediction(id)
		} else {
			o.removePrediction(id)
		}
	}
}
