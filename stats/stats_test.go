package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunningMeanAndVariance(t *testing.T) {
	var r Running
	for _, x := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		r.Observe(x)
	}
	assert.InDelta(t, 5.0, r.Mean(), 1e-9)
	assert.InDelta(t, 4.0, r.Variance(), 1e-9)
	assert.Equal(t, int64(8), r.Count())
	assert.Equal(t, 2.0, r.Min())
	assert.Equal(t, 9.0, r.Max())
}

func TestRunningPredictNoSamples(t *testing.T) {
	var r Running
	_, ok := r.Predict()
	assert.False(t, ok)
}

func TestWindowPredictNoSamples(t *testing.T) {
	w := NewWindow(4)
	_, ok := w.Predict()
	assert.False(t, ok)
}

func TestWindowBlendsTowardRecentBehavior(t *testing.T) {
	w := NewWindow(4)
	for i := 0; i < 100; i++ {
		w.Observe(10)
	}
	for i := 0; i < 4; i++ {
		w.Observe(100)
	}
	v, ok := w.Predict()
	assert.True(t, ok)
	assert.InDelta(t, 100, v, 1e-6, "a full recent window should dominate a long stale history")
}
