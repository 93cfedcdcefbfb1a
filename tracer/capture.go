package tracer

import (
	"runtime"

	omniscioctx "github.com/omniscio/omniscio-go/context"
)

// StackCapturer captures the calling context an I/O call was made from.
// The default implementation walks the real call stack; tests inject a
// fake one so grammar/tracker behavior can be driven by known, repeatable
// contexts instead of whatever happens to be on the test binary's stack.
type StackCapturer interface {
	Capture() omniscioctx.Context
}

// defaultStackCapturer captures the caller's return addresses with
// runtime.Callers, skipping the tracer's own frames.
type defaultStackCapturer struct {
	skip int
}

// NewDefaultStackCapturer returns a StackCapturer backed by
// runtime.Callers. skip additional frames are dropped on top of the
// capturer's own, to land on the instrumentation call site rather than
// inside the tracer.
func NewDefaultStackCapturer(skip int) StackCapturer {
	return &defaultStackCapturer{skip: skip}
}

func (c *defaultStackCapturer) Capture() omniscioctx.Context {
	pcs := make([]uintptr, omniscioctx.MaxDepth)
	n := runtime.Callers(2+c.skip, pcs)
	frames := make(omniscioctx.Context, n)
	for i := 0; i < n; i++ {
		frames[i] = omniscioctx.Frame(pcs[i])
	}
	return frames
}
