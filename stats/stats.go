// Package stats keeps running mean, variance, min and max for a stream
// of per-transition timings, using Welford's single-pass update so no
// history needs to be retained.
package stats

import "math"

// Running accumulates count, mean, variance, min and max for a stream of
// float64 samples. The zero value is ready to use.
type Running struct {
	count int64
	mean  float64
	m2    float64
	min   float64
	max   float64
}

// Observe folds one more sample into the running statistics.
func (r *Running) Observe(x float64) {
	r.count++
	if r.count == 1 {
		r.min, r.max = x, x
	} else {
		if x < r.min {
			r.min = x
		}
		if x > r.max {
			r.max = x
		}
	}
	delta := x - r.mean
	r.mean += delta / float64(r.count)
	r.m2 += delta * (x - r.mean)
}

// Count is the number of samples observed.
func (r *Running) Count() int64 { return r.count }

// Mean is the running arithmetic mean, or 0 if no samples have been
// observed.
func (r *Running) Mean() float64 { return r.mean }

// Variance is the running (population) variance, or 0 until at least two
// samples have been observed.
func (r *Running) Variance() float64 {
	if r.count < 2 {
		return 0
	}
	return r.m2 / float64(r.count)
}

// StdDev is the square root of Variance.
func (r *Running) StdDev() float64 {
	return math.Sqrt(r.Variance())
}

// Min and Max are the smallest and largest samples observed.
func (r *Running) Min() float64 { return r.min }
func (r *Running) Max() float64 { return r.max }

// Predict returns the running mean as the expected value of the next
// sample; there is no sharper estimator available without retaining
// history. Window blends this long-run mean with a short trailing
// window's mean to form its adapted prediction.
func (r *Running) Predict() (float64, bool) {
	if r.count == 0 {
		return 0, false
	}
	return r.mean, true
}

// Window adapts predictions to recent behavior by blending a short
// trailing window's mean with the long-run Running mean, weighted
// towards the window once it has enough samples to be trustworthy.
type Window struct {
	size    int
	samples []float64
	next    int
	full    bool
	long    Running
}

// NewWindow returns a Window that keeps the trailing size samples
// alongside an unbounded running mean/variance.
func NewWindow(size int) *Window {
	if size <= 0 {
		size = 1
	}
	return &Window{size: size, samples: make([]float64, size)}
}

// Observe folds one more sample into both the short window and the
// long-run statistics.
func (w *Window) Observe(x float64) {
	w.long.Observe(x)
	w.samples[w.next] = x
	w.next = (w.next + 1) % w.size
	if w.next == 0 {
		w.full = true
	}
}

func (w *Window) windowMean() (float64, int) {
	n := w.next
	if w.full {
		n = w.size
	}
	if n == 0 {
		return 0, 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += w.samples[i]
	}
	return sum / float64(n), n
}

// Predict blends the short window's mean with the long-run mean,
// weighting the window in proportion to how full it is; with no samples
// at all it reports false.
func (w *Window) Predict() (float64, bool) {
	long, ok := w.long.Predict()
	if !ok {
		return 0, false
	}
	wMean, n := w.windowMean()
	if n == 0 {
		return long, true
	}
	weight := float64(n) / float64(w.size)
	return weight*wMean + (1-weight)*long, true
}

// Long exposes the underlying unbounded running statistics, e.g. for the
// summary file.
func (w *Window) Long() *Running { return &w.long }
