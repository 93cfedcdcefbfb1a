package grammar

// newRule allocates a fresh, empty production: a guard cell whose next
// and prev both point to itself, bracketing an (initially empty) body.
func (o *Oracle) newRule() RuleID {
	rid := o.newRuleSlot(rule{users: make(map[NodeID]bool)})
	gid := o.newNode(node{kind: kindGuard})
	o.n(gid).rule = rid
	o.n(gid).owner = rid
	o.n(gid).prev = gid
	o.n(gid).next = gid
	o.r(rid).guard = gid
	o.r(rid).index = o.nextRuleIndex
	o.nextRuleIndex++
	return rid
}

func (o *Oracle) guard(rid RuleID) NodeID { return o.r(rid).guard }
func (o *Oracle) first(rid RuleID) NodeID { return o.next(o.guard(rid)) }
func (o *Oracle) last(rid RuleID) NodeID  { return o.prev(o.guard(rid)) }

// freq is the number of live occurrences referencing rid.
func (o *Oracle) freq(rid RuleID) int { return len(o.r(rid).users) }

// length is the number of symbols in rid's body.
func (o *Oracle) length(rid RuleID) int {
	n := 0
	for c := o.first(rid); c != o.guard(rid); c = o.next(c) {
		n++
	}
	return n
}

func (o *Oracle) reuse(rid RuleID, user NodeID) {
	o.r(rid).users[user] = true
}

func (o *Oracle) deuse(rid RuleID, user NodeID) {
	delete(o.r(rid).users, user)
}

// soleUser returns the single remaining occurrence of a rule with
// freq(rid) == 1, per the invariant that every non-start rule is always
// used at least twice except during the instant a second-to-last
// occurrence is substituted away.
func (o *Oracle) soleUser(rid RuleID) NodeID {
	for u := range o.r(rid).users {
		return u
	}
	return noNode
}
