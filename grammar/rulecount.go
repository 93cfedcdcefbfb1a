package grammar

// RuleCount returns the number of live rules, excluding the start rule.
// Trackers built on top of an Oracle use this as a crude complexity
// signal: a grammar whose rule count keeps growing roughly as fast as
// its input is not compressing the stream, and is a candidate for
// falling back to a cheaper predictor.
func (o *Oracle) RuleCount() int {
	n := 0
	for rid := 1; rid < len(o.rules); rid++ {
		if !o.rules[rid].dead && RuleID(rid) != o.startRule {
			n++
		}
	}
	return n
}
