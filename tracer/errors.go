package tracer

import "github.com/pkg/errors"

// ErrBracketing is returned when a *Start/*End call is made out of turn:
// an *End without a matching *Start, or a *Start while one is already
// open.
var ErrBracketing = errors.New("tracer: operation bracketing violated")

// ErrUnsupported is returned by PredictFrom, which this predictor does
// not implement: it can only predict from its own current position in
// the stream, not from an arbitrary hypothetical one.
var ErrUnsupported = errors.New("tracer: predicting from an arbitrary context is not supported")
