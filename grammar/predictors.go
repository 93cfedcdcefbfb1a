package grammar

// addPrediction and removePrediction keep the oracle's flat prediction
// set (used by PredictNext) in sync with individual nodes' isPredictor
// flags.
func (o *Oracle) addPrediction(id NodeID) {
	o.predictions[id] = true
}

func (o *Oracle) removePrediction(id NodeID) {
	delete(o.predictions, id)
}

// markPredictorFrom marks pos, and everywhere pos's being reached implies
// reachability of, as predicted. Descending into a nonterminal occurrence
// predicts its rule's first symbol; reaching the end of a rule's body
// (its guard) predicts the symbol following every live occurrence of that
// rule, recursively, since any of them could be the one about to finish.
// Reaching the end of the start rule's body predicts nothing: there is no
// symbol yet known to follow the newest input.
func (o *Oracle) markPredictorFrom(pos NodeID, seen map[NodeID]bool) {
	if pos == noNode || seen[pos] {
		return
	}
	seen[pos] = true
	switch {
	case o.isGuard(pos):
		rid := o.n(pos).rule
		if rid == o.startRule {
			return
		}
		for u := range o.r(rid).users {
			o.markPredictorFrom(o.next(u), seen)
		}
	case o.isNonterminal(pos):
		o.markPredictorFrom(o.first(o.n(pos).rule), seen)
	default:
		o.setIsPredictor(pos, true)
	}
}

// findAllOccurrences returns every live terminal occurrence in the
// grammar whose value is v. It is the fallback used to reseed the
// prediction set when an input symbol doesn't match any current
// prediction (e.g. the very first symbol of a repeating pattern).
func (o *Oracle) findAllOccurrences(v Symbol) []NodeID {
	var out []NodeID
	for id := 1; id < len(o.nodes); id++ {
		nd := &o.nodes[id]
		if nd.dead || nd.kind != kindTerminal || nd.value != v {
			continue
		}
		out = append(out, NodeID(id))
	}
	return out
}

// advancePredictions folds the just-observed symbol v into the
// predictor-mark index: every current prediction matching v advances to
// whatever follows it; a v with no matching prediction reseeds the index
// from every live occurrence of v in the grammar.
func (o *Oracle) advancePredictions(v Symbol) {
	var matched []NodeID
	for id := range o.predictions {
		if o.n(id).value == v {
			matched = append(matched, id)
		}
	}
	if len(matched) == 0 {
		matched = o.findAllOccurrences(v)
	}

	for id := range o.predictions {
		o.setIsPredictor(id, false)
	}

	seen := make(map[NodeID]bool)
	for _, m := range matched {
		if o.n(m).dead {
			continue
		}
		o.markPredictorFrom(o.next(m), seen)
	}
}
