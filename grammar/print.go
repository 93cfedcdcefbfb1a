package grammar

import (
	"fmt"
	"sort"
	"strings"
)

// String renders the grammar in rule-numbered form, one rule per line:
// "[i] -> body", with nonterminal references rendered as their rule's
// number in brackets. Rule 0 is always the start rule.
func (o *Oracle) String() string {
	var lines []string
	order := []RuleID{o.startRule}
	for rid := RuleID(1); int(rid) < len(o.rules); rid++ {
		if rid == o.startRule || o.r(rid).dead {
			continue
		}
		order = append(order, rid)
	}
	sort.Slice(order[1:], func(i, j int) bool {
		return o.r(order[1+i]).index < o.r(order[1+j]).index
	})
	for _, rid := range order {
		lines = append(lines, fmt.Sprintf("[%d] -> %s", o.r(rid).index, o.renderBody(rid)))
	}
	return strings.Join(lines, "\n")
}

func (o *Oracle) renderBody(rid RuleID) string {
	var parts []string
	guard := o.guard(rid)
	for c := o.n(guard).next; c != guard; c = o.n(c).next {
		nd := o.n(c)
		if nd.kind == kindTerminal {
			parts = append(parts, fmt.Sprintf("%d", nd.value))
		} else {
			parts = append(parts, fmt.Sprintf("[%d]", o.r(nd.rule).index))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " ")
}
