// Package tracer brackets I/O operations, feeds their calling contexts
// into the grammar and per-symbol trackers, and answers what is likely
// to happen next.
package tracer

import (
	"fmt"
	"time"

	omniscioctx "github.com/omniscio/omniscio-go/context"
	"github.com/omniscio/omniscio-go/grammar"
	"github.com/omniscio/omniscio-go/stats"
	"github.com/omniscio/omniscio-go/tracker"
	"github.com/omniscio/omniscio-go/typetable"
)

type transitionKey struct {
	from, to omniscioctx.Symbol
}

// Tracer is the stateful core of the predictor: one instance owns the
// context dictionary, the grammar, and every per-symbol and per-transition
// tracker, and brackets every traced operation against re-entry and
// out-of-order Start/End calls.
//
// Tracer is not safe for concurrent use; callers that trace from more
// than one goroutine must serialize their own access.
type Tracer struct {
	enabled bool
	state   bracketState
	guarded bool // recursion guard: suppresses tracing of the tracer's own I/O

	capturer StackCapturer

	dict  *omniscioctx.Dictionary
	model *grammar.Oracle
	types *typetable.Table

	sizeThreshold   int
	offsetThreshold int
	windowSize      int

	sizes       map[omniscioctx.Symbol]*tracker.Size
	offsets     map[transitionKey]*tracker.Offset
	times       map[transitionKey]*stats.Window

	out *outputs

	previousSym    omniscioctx.Symbol
	previousSize   int64
	previousOffset int64
	previousDate   time.Time
	started        time.Time
}

// Options configures a new Tracer. Zero-value thresholds fall back to
// the tracker package's own defaults.
type Options struct {
	SizeThreshold   int
	OffsetThreshold int
	WindowSize      int
	Capturer        StackCapturer
}

// New returns a disabled Tracer; call Init to enable it and open its
// output files.
func New() *Tracer {
	return &Tracer{
		dict:    omniscioctx.NewDictionary(),
		model:   grammar.NewOracle(),
		types:   typetable.New(),
		sizes:   make(map[omniscioctx.Symbol]*tracker.Size),
		offsets: make(map[transitionKey]*tracker.Offset),
		times:   make(map[transitionKey]*stats.Window),
	}
}

// Init enables the tracer and opens its output files under dir using the
// given filePrefix (e.g. "omniscio.<timestamp>.<rank>.").
func (t *Tracer) Init(dir, filePrefix string, opts Options) error {
	t.capturer = opts.Capturer
	if t.capturer == nil {
		t.capturer = NewDefaultStackCapturer(0)
	}
	t.sizeThreshold = opts.SizeThreshold
	t.offsetThreshold = opts.OffsetThreshold
	t.windowSize = opts.WindowSize

	prefix := dir + "/" + filePrefix
	if err := t.dict.Open(prefix + "dict"); err != nil {
		return err
	}
	out, err := newOutputs(prefix)
	if err != nil {
		return err
	}
	t.out = out
	t.enabled = true
	return nil
}

// Disable marks the tracer permanently inactive: every entry point
// becomes a cheap no-op and no files are created. This implements the
// OMNISCIO_DISABLE escape hatch.
func (t *Tracer) Disable() {
	t.enabled = false
}

// Enabled reports whether the tracer is currently tracing.
func (t *Tracer) Enabled() bool { return t.enabled }

func (t *Tracer) sizeTracker(sym omniscioctx.Symbol) *tracker.Size {
	s, ok := t.sizes[sym]
	if !ok {
		s = tracker.NewSize(t.sizeThreshold)
		t.sizes[sym] = s
	}
	return s
}

func (t *Tracer) offsetTracker(from, to omniscioctx.Symbol) *tracker.Offset {
	key := transitionKey{from, to}
	o, ok := t.offsets[key]
	if !ok {
		o = tracker.NewOffset(t.offsetThreshold)
		t.offsets[key] = o
	}
	return o
}

func (t *Tracer) timeTracker(from, to omniscioctx.Symbol) *stats.Window {
	key := transitionKey{from, to}
	w, ok := t.times[key]
	if !ok {
		w = stats.NewWindow(t.windowSize)
		t.times[key] = w
	}
	return w
}

// start is the common body of every *Start entry point: it brackets
// against re-entry and against calling a second Start before the matching
// End, captures the calling context, mints or looks up its symbol, folds
// it into the grammar and trackers, and logs the operation.
func (t *Tracer) start(op typetable.Op, apiName string, offset, size int64, detail string) (omniscioctx.Symbol, error) {
	if !t.enabled || t.guarded {
		return omniscioctx.NoSymbol, nil
	}
	if t.state == inOp {
		return omniscioctx.NoSymbol, ErrBracketing
	}
	t.state = inOp
	t.guarded = true
	defer func() { t.guarded = false }()

	t.started = time.Now()

	ctx := t.capturer.Capture()
	if len(ctx) == 0 {
		t.state = idle
		return omniscioctx.NoSymbol, omniscioctx.ErrEmptyContext
	}
	sym, err := t.dict.Insert(ctx)
	if err != nil {
		t.state = idle
		return omniscioctx.NoSymbol, err
	}

	t.out.logOp(fmt.Sprintf("%d %d %s %s %s", t.started.UnixNano(), sym, op, apiName, detail))

	t.model.Input(grammar.Symbol(sym))
	if err := t.types.Record(sym, op); err != nil {
		t.state = idle
		return omniscioctx.NoSymbol, err
	}

	if t.previousSym != omniscioctx.NoSymbol {
		elapsed := t.started.Sub(t.previousDate).Seconds()
		t.timeTracker(t.previousSym, sym).Observe(elapsed)
	}

	t.sizeTracker(sym).Observe(size)

	if t.previousSym != omniscioctx.NoSymbol {
		desc := tracker.Classify(offset, t.previousOffset, t.previousSize)
		t.offsetTracker(t.previousSym, sym).Observe(desc)
	}

	t.previousSize = size
	t.previousOffset = offset
	t.previousSym = sym

	return sym, nil
}

// finish is the common body of every *End entry point. logPrefix is
// written immediately before the success/end-time fields; only OpenEnd
// supplies one, since it's the only End that learns a handle the matching
// Start didn't already have.
func (t *Tracer) finish(success bool, logPrefix string) error {
	if !t.enabled || t.guarded {
		return nil
	}
	if t.state != inOp {
		return ErrBracketing
	}
	t.state = idle
	t.guarded = true
	defer func() { t.guarded = false }()

	now := time.Now()
	t.out.logOp(fmt.Sprintf(" %s%v %v\n", logPrefix, success, now.UnixNano()))
	t.previousDate = now
	return nil
}

func (t *Tracer) end(success bool) error { return t.finish(success, "") }

func (t *Tracer) endWithHandle(success bool, handle Handle) error {
	return t.finish(success, fmt.Sprintf("%d ", handle))
}

// OpenStart brackets the beginning of an open() call. The handle doesn't
// exist yet: open() hasn't returned one, so it's reported at OpenEnd.
func (t *Tracer) OpenStart(filename string, api ApiType) (omniscioctx.Symbol, error) {
	return t.start(typetable.Open, api.String(), 0, 0, "_ "+filename)
}

// OpenEnd brackets the end of an open() call, reporting the handle open()
// produced (undefined if success is false).
func (t *Tracer) OpenEnd(success bool, handle Handle) error {
	return t.endWithHandle(success, handle)
}

// CloseStart brackets the beginning of a close() call on handle.
func (t *Tracer) CloseStart(api ApiType, handle Handle) (omniscioctx.Symbol, error) {
	return t.start(typetable.Close, api.String(), 0, 0, fmt.Sprintf("_ _ %d", handle))
}

// CloseEnd brackets the end of a close() call.
func (t *Tracer) CloseEnd(success bool) error { return t.end(success) }

// ReadStart brackets the beginning of a read() call on handle.
func (t *Tracer) ReadStart(api ApiType, handle Handle, offset, size int64) (omniscioctx.Symbol, error) {
	return t.start(typetable.Read, api.String(), offset, size, fmt.Sprintf("%d %d %d", offset, size, handle))
}

// ReadEnd brackets the end of a read() call.
func (t *Tracer) ReadEnd(success bool) error { return t.end(success) }

// WriteStart brackets the beginning of a write() call on handle.
func (t *Tracer) WriteStart(api ApiType, handle Handle, offset, size int64) (omniscioctx.Symbol, error) {
	return t.start(typetable.Write, api.String(), offset, size, fmt.Sprintf("%d %d %d", offset, size, handle))
}

// WriteEnd brackets the end of a write() call.
func (t *Tracer) WriteEnd(success bool) error { return t.end(success) }

// Finalize flushes every output file, writing the final grammar model and
// a diagnostic summary, and disables the tracer.
func (t *Tracer) Finalize() error {
	if !t.enabled {
		return nil
	}
	t.guarded = true
	defer func() { t.guarded = false }()

	if err := t.dict.Close(); err != nil {
		return err
	}
	if err := t.out.writeModel(t.model.String()); err != nil {
		return err
	}
	if err := t.out.writeSummary(t.buildSummary()); err != nil {
		return err
	}
	if err := t.out.close(); err != nil {
		return err
	}
	t.enabled = false
	t.state = idle
	return nil
}

func (t *Tracer) buildSummary() summary {
	s := summary{
		Symbols:     t.dict.Len(),
		Rules:       t.model.RuleCount(),
		SizeStates:  make(map[string]int),
		OffsetState: make(map[string]int),
	}
	for _, tr := range t.sizes {
		s.SizeStates[tr.State()]++
	}
	for _, tr := range t.offsets {
		s.OffsetState[tr.State()]++
	}
	return s
}
