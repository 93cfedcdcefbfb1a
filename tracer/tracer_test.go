package tracer

import (
	"path/filepath"
	"testing"

	omniscioctx "github.com/omniscio/omniscio-go/context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequenceCapturer returns a different fixed context each call, cycling
// once it runs out, so tests can drive the tracer with a known, repeatable
// sequence of calling contexts instead of the real call stack.
type sequenceCapturer struct {
	contexts []omniscioctx.Context
	i        int
}

func (c *sequenceCapturer) Capture() omniscioctx.Context {
	ctx := c.contexts[c.i%len(c.contexts)]
	c.i++
	return ctx
}

func newTestTracer(t *testing.T, contexts ...omniscioctx.Context) *Tracer {
	t.Helper()
	tr := New()
	dir := t.TempDir()
	err := tr.Init(dir, "omniscio.test.", Options{
		SizeThreshold:   16,
		OffsetThreshold: 24,
		WindowSize:      8,
		Capturer:        &sequenceCapturer{contexts: contexts},
	})
	require.NoError(t, err)
	return tr
}

func ctx(frames ...omniscioctx.Frame) omniscioctx.Context { return omniscioctx.Context(frames) }

func TestOpenReadCloseRoundTrip(t *testing.T) {
	tr := newTestTracer(t, ctx(1), ctx(2), ctx(3))

	sym, err := tr.OpenStart("a.dat", POSIX)
	require.NoError(t, err)
	assert.NotEqual(t, omniscioctx.NoSymbol, sym)
	require.NoError(t, tr.OpenEnd(true, 3))

	_, err = tr.ReadStart(POSIX, 3, 0, 4096)
	require.NoError(t, err)
	require.NoError(t, tr.ReadEnd(true))

	_, err = tr.CloseStart(POSIX, 3)
	require.NoError(t, err)
	require.NoError(t, tr.CloseEnd(true))

	require.NoError(t, tr.Finalize())
	assert.False(t, tr.Enabled())
}

func TestBracketingViolationOnDoubleStart(t *testing.T) {
	tr := newTestTracer(t, ctx(1), ctx(2))

	_, err := tr.OpenStart("a.dat", POSIX)
	require.NoError(t, err)

	_, err = tr.ReadStart(POSIX, 1, 0, 10)
	assert.ErrorIs(t, err, ErrBracketing)
}

func TestBracketingViolationOnUnmatchedEnd(t *testing.T) {
	tr := newTestTracer(t, ctx(1))
	err := tr.OpenEnd(true, 1)
	assert.ErrorIs(t, err, ErrBracketing)
}

func TestDisableIsGloballyInert(t *testing.T) {
	dir := t.TempDir()
	tr := New()
	tr.Disable()

	sym, err := tr.OpenStart("a.dat", POSIX)
	require.NoError(t, err)
	assert.Equal(t, omniscioctx.NoSymbol, sym)

	preds, err := tr.Next()
	require.NoError(t, err)
	assert.Nil(t, preds)

	entries, _ := filepath.Glob(filepath.Join(dir, "*"))
	assert.Empty(t, entries)
}

func TestNextReturnsErrorWhileOperationInProgress(t *testing.T) {
	tr := newTestTracer(t, ctx(1))
	_, err := tr.OpenStart("a.dat", POSIX)
	require.NoError(t, err)

	_, err = tr.Next()
	assert.ErrorIs(t, err, ErrOperationInProgress)
}

func TestPredictFromIsUnsupported(t *testing.T) {
	tr := newTestTracer(t, ctx(1))
	_, err := tr.PredictFrom(ctx(9))
	assert.ErrorIs(t, err, ErrUnsupported)
}
