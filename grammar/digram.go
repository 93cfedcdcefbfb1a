package grammar

type digramKey struct {
	left, right uint64
}

func (o *Oracle) digramOf(id NodeID) digramKey {
	nd := o.n(id)
	return digramKey{rawValue(nd), rawValue(o.n(nd.next))}
}

// findDigram returns the node that currently anchors an existing digram
// equal to the one starting at id, if any.
func (o *Oracle) findDigram(id NodeID) (NodeID, bool) {
	existing, ok := o.digramIndex[o.digramOf(id)]
	return existing, ok
}

func (o *Oracle) setDigram(id NodeID) {
	o.digramIndex[o.digramOf(id)] = id
}

func (o *Oracle) deleteDigram(id NodeID) {
	key := o.digramOf(id)
	if o.digramIndex[key] == id {
		delete(o.digramIndex, key)
	}
}
