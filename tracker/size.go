// Package tracker implements the monotone predictor upgrade ladders used
// to forecast per-symbol I/O request sizes and offsets: a tracker starts
// cheap and only grows more (and more expensive) machinery once the
// stream it is watching proves too varied for the cheaper stage, never
// the other way around.
package tracker

import "github.com/omniscio/omniscio-go/grammar"

// DefaultSizeThreshold is the distinct-value count above which a Size
// tracker abandons grammar-based prediction for the running average.
const DefaultSizeThreshold = 16

type sizeState int

const (
	sizeSimple sizeState = iota
	sizeGrammar
	sizeAverage
)

// Size predicts the next I/O request size for one symbol or transition.
// It climbs Simple -> Grammar -> Average as the values it observes prove
// increasingly varied, and never climbs back down. Simple upgrades to
// Grammar the first time it sees a value other than the one it's already
// remembering; threshold only gates the later Grammar -> Average step,
// where it counts the distinct values seen so far.
type Size struct {
	threshold int
	state     sizeState

	last      int64
	lastCount int64

	distinct map[int64]bool

	oracle *grammar.Oracle

	sum   float64
	count int64
}

// NewSize returns a Size tracker that upgrades out of Grammar once more
// than threshold distinct values have been seen.
func NewSize(threshold int) *Size {
	if threshold <= 0 {
		threshold = DefaultSizeThreshold
	}
	return &Size{threshold: threshold}
}

// Observe folds one more observed size into the tracker, possibly
// upgrading its internal state.
func (s *Size) Observe(v int64) {
	s.sum += float64(v)
	s.count++

	switch s.state {
	case sizeSimple:
		if s.lastCount == 0 {
			s.last = v
			s.lastCount = 1
			return
		}
		if v == s.last {
			s.lastCount++
			return
		}
		s.upgradeToGrammar(v)
	case sizeGrammar:
		s.distinct[v] = true
		s.oracle.Input(grammar.Symbol(v))
		if len(s.distinct) > s.threshold {
			s.state = sizeAverage
		}
	case sizeAverage:
		// no further bookkeeping: sum/count above already suffice.
	}
}

// upgradeToGrammar seeds the oracle with the remembered run of s.last
// (repeated lastCount times, as it was actually observed) followed by
// the dissenting value v.
func (s *Size) upgradeToGrammar(v int64) {
	s.state = sizeGrammar
	s.oracle = grammar.NewOracle()
	s.distinct = make(map[int64]bool)

	s.distinct[s.last] = true
	for i := int64(0); i < s.lastCount; i++ {
		s.oracle.Input(grammar.Symbol(s.last))
	}

	s.distinct[v] = true
	s.oracle.Input(grammar.Symbol(v))
}

// Predict returns the tracker's best guess at the next size and whether
// it has enough information to make one at all.
//
// The Grammar state falls back to the running average whenever the
// oracle doesn't have a unique prediction, without promoting the tracker
// to the Average state. This mirrors a quirk of the original size
// tracker's grammar branch and is preserved rather than "fixed": the
// fallback value is identical to what the Average state would have
// predicted anyway, and forcing a state transition here bought nothing
// but had to match the upgrade-only-forward invariant exactly, so it
// was left alone.
func (s *Size) Predict() (int64, bool) {
	switch s.state {
	case sizeSimple:
		if s.lastCount > 0 {
			return s.last, true
		}
		return 0, false
	case sizeGrammar:
		preds := s.oracle.PredictNext()
		if len(preds) == 1 {
			return int64(preds[0]), true
		}
		if s.count == 0 {
			return 0, false
		}
		return int64(s.sum / float64(s.count)), true
	case sizeAverage:
		if s.count == 0 {
			return 0, false
		}
		return int64(s.sum / float64(s.count)), true
	default:
		return 0, false
	}
}

// State names the tracker's current rung, for diagnostics and the
// summary file.
func (s *Size) State() string {
	switch s.state {
	case sizeSimple:
		return "simple"
	case sizeGrammar:
		return "grammar"
	case sizeAverage:
		return "average"
	default:
		return "unknown"
	}
}
