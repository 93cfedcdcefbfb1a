package tracker

import "github.com/omniscio/omniscio-go/grammar"

// DefaultOffsetThreshold is the distinct-descriptor count above which an
// Offset tracker abandons grammar-based prediction for the Follow state.
const DefaultOffsetThreshold = 24

// Kind classifies how an offset relates to the position and size of the
// previous access on the same stream.
type Kind int

const (
	// Following means the access picked up exactly where the previous
	// one left off (the common sequential case).
	Following Kind = iota
	// Absolute means the access landed at a fixed address independent
	// of where the previous one was.
	Absolute
	// Relative means the access was offset by a fixed delta from the
	// previous one's end (prevOffset+prevSize).
	Relative
)

// Descriptor is the classified shape of one observed offset.
type Descriptor struct {
	Kind  Kind
	Value int64
}

// Classify derives a Descriptor for an access at offset, given where the
// previous access on the same stream started (prevOffset) and how large
// it was (prevSize). Relative is measured from the end of the previous
// access (prevOffset+prevSize), not its start, so it round-trips through
// GetOffsetAfter regardless of what prevOffset/prevSize happen to be the
// next time this same transition recurs.
func Classify(offset, prevOffset, prevSize int64) Descriptor {
	end := prevOffset + prevSize
	if offset == end {
		return Descriptor{Kind: Following}
	}
	if offset == 0 {
		return Descriptor{Kind: Absolute, Value: 0}
	}
	return Descriptor{Kind: Relative, Value: offset - end}
}

// GetOffsetAfter reconstructs the absolute offset a Descriptor predicts
// for the access that follows one at prevOffset of size prevSize.
func GetOffsetAfter(prevOffset, prevSize int64, d Descriptor) int64 {
	switch d.Kind {
	case Following:
		return prevOffset + prevSize
	case Absolute:
		return d.Value
	case Relative:
		return prevOffset + prevSize + d.Value
	default:
		return prevOffset + prevSize
	}
}

type offsetState int

const (
	offsetSimple offsetState = iota
	offsetGrammar
	offsetFollow
)

// Offset predicts the next I/O request offset descriptor for one symbol
// or transition. It climbs Simple -> Grammar -> Follow as the descriptors
// it observes prove increasingly varied, and never climbs back down.
//
// The Follow rung, unlike Size's Average rung, doesn't average anything:
// once offsets are this unpredictable the only descriptor cheap enough to
// keep guessing is the sequential default, so that's what Follow always
// answers.
type Offset struct {
	threshold int
	state     offsetState

	last      Descriptor
	lastCount int64

	distinct map[Descriptor]bool

	oracle  *grammar.Oracle
	dict    map[Descriptor]grammar.Symbol
	rev     map[grammar.Symbol]Descriptor
	nextSym grammar.Symbol
}

// NewOffset returns an Offset tracker that upgrades out of Grammar once
// more than threshold distinct descriptors have been seen.
func NewOffset(threshold int) *Offset {
	if threshold <= 0 {
		threshold = DefaultOffsetThreshold
	}
	return &Offset{threshold: threshold}
}

func (o *Offset) symbolFor(d Descriptor) grammar.Symbol {
	if sym, ok := o.dict[d]; ok {
		return sym
	}
	sym := o.nextSym
	o.nextSym++
	o.dict[d] = sym
	o.rev[sym] = d
	return sym
}

// Observe folds one more observed descriptor into the tracker, possibly
// upgrading its internal state. Simple upgrades to Grammar the first time
// it sees a descriptor other than the one it's already remembering;
// threshold only gates the later Grammar -> Follow step, where it counts
// the distinct descriptors seen so far.
func (o *Offset) Observe(d Descriptor) {
	switch o.state {
	case offsetSimple:
		if o.lastCount == 0 {
			o.last = d
			o.lastCount = 1
			return
		}
		if d == o.last {
			o.lastCount++
			return
		}
		o.upgradeToGrammar(d)
	case offsetGrammar:
		o.distinct[d] = true
		o.oracle.Input(o.symbolFor(d))
		if len(o.distinct) > o.threshold {
			o.state = offsetFollow
		}
	case offsetFollow:
		// no further bookkeeping: the prediction never varies.
	}
}

// upgradeToGrammar seeds the oracle with the remembered run of o.last
// (repeated lastCount times, as it was actually observed) followed by
// the dissenting descriptor d.
func (o *Offset) upgradeToGrammar(d Descriptor) {
	o.state = offsetGrammar
	o.oracle = grammar.NewOracle()
	o.distinct = make(map[Descriptor]bool)
	o.dict = make(map[Descriptor]grammar.Symbol)
	o.rev = make(map[grammar.Symbol]Descriptor)
	o.nextSym = 1

	o.distinct[o.last] = true
	for i := int64(0); i < o.lastCount; i++ {
		o.oracle.Input(o.symbolFor(o.last))
	}

	o.distinct[d] = true
	o.oracle.Input(o.symbolFor(d))
}

// Predict returns the tracker's best guess at the next descriptor and
// whether it has enough information to make one at all.
func (o *Offset) Predict() (Descriptor, bool) {
	switch o.state {
	case offsetSimple:
		if o.lastCount > 0 {
			return o.last, true
		}
		return Descriptor{}, false
	case offsetGrammar:
		preds := o.oracle.PredictNext()
		if len(preds) == 1 {
			return o.rev[preds[0]], true
		}
		return Descriptor{}, false
	case offsetFollow:
		return Descriptor{Kind: Following}, true
	default:
		return Descriptor{}, false
	}
}

// State names the tracker's current rung, for diagnostics and the
// summary file.
func (o *Offset) State() string {
	switch o.state {
	case offsetSimple:
		return "simple"
	case offsetGrammar:
		return "grammar"
	case offsetFollow:
		return "follow"
	default:
		return "unknown"
	}
}
