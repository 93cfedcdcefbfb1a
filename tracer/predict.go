package tracer

import (
	"github.com/pkg/errors"

	omniscioctx "github.com/omniscio/omniscio-go/context"
	"github.com/omniscio/omniscio-go/tracker"
)

// ErrOperationInProgress is returned by Next when called while an
// operation is bracketed open: the model only knows what comes after the
// symbol that just completed, not one still in flight.
var ErrOperationInProgress = errors.New("tracer: cannot predict while an operation is in progress")

// Next forecasts every symbol the grammar currently considers possible
// immediately after the stream observed so far, each with a uniform
// probability over the predicted set, and the best available guess at
// that operation's size, offset, inter-arrival time and kind.
func (t *Tracer) Next() ([]Prediction, error) {
	if !t.enabled {
		return nil, nil
	}
	if t.state == inOp {
		return nil, ErrOperationInProgress
	}

	syms := t.model.PredictNext()
	if len(syms) == 0 {
		return nil, nil
	}
	proba := 1.0 / float64(len(syms))

	preds := make([]Prediction, 0, len(syms))
	for _, gs := range syms {
		sym := omniscioctx.Symbol(gs)
		p := Prediction{Symbol: sym, Probability: proba}

		if size, ok := t.sizeTracker(sym).Predict(); ok {
			p.Size, p.HasSize = size, true
		}

		if t.previousSym != omniscioctx.NoSymbol {
			if desc, ok := t.offsetTracker(t.previousSym, sym).Predict(); ok {
				p.Offset = tracker.GetOffsetAfter(t.previousOffset, t.previousSize, desc)
				p.HasOffset = true
			}
			if secs, ok := t.timeTracker(t.previousSym, sym).Predict(); ok {
				p.Time, p.HasTime = secs, true
			}
		}

		if op, ok := t.types.Lookup(sym); ok {
			p.Type, p.HasType = op, true
		}

		preds = append(preds, p)
	}

	t.out.logPredictions(preds)
	return preds, nil
}

// Free exists only for symmetry with the C-API shape this predictor
// mirrors; Go's garbage collector reclaims everything a Tracer owns, so
// there is nothing to release.
func (t *Tracer) Free() {}

// PredictFrom would forecast what follows an arbitrary hypothetical
// context rather than the tracer's own current position in the stream.
// Answering that would require re-running the predictor-mark index from
// scratch at that context with no guarantee the context was ever
// observed, which this predictor does not implement.
func (t *Tracer) PredictFrom(omniscioctx.Context) ([]Prediction, error) {
	return nil, ErrUnsupported
}
