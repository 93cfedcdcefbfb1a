package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizeSimplePredictsSingleton(t *testing.T) {
	s := NewSize(4)
	for i := 0; i < 5; i++ {
		s.Observe(4096)
	}
	v, ok := s.Predict()
	assert.True(t, ok)
	assert.Equal(t, int64(4096), v)
	assert.Equal(t, "simple", s.State())
}

func TestSizeUpgradesToGrammarOnFirstDissent(t *testing.T) {
	s := NewSize(4)
	s.Observe(4096)
	s.Observe(4096)
	s.Observe(4096)
	assert.Equal(t, "simple", s.State())

	s.Observe(8192)
	assert.Equal(t, "grammar", s.State())
}

func TestSizeUpgradesToAveragePastThreshold(t *testing.T) {
	s := NewSize(4)
	for i := int64(0); i < 10; i++ {
		s.Observe(i)
	}
	assert.Equal(t, "average", s.State())
}

func TestSizeNeverDowngrades(t *testing.T) {
	s := NewSize(20)
	s.Observe(1)
	s.Observe(2)
	assert.Equal(t, "grammar", s.State())

	s.Observe(7)
	assert.Equal(t, "grammar", s.State())
	for i := 0; i < 20; i++ {
		s.Observe(7)
	}
	assert.Equal(t, "grammar", s.State(), "repeating an already-seen value must not grow the distinct count")

	for i := int64(8); i < 40; i++ {
		s.Observe(i)
	}
	assert.Equal(t, "average", s.State())

	for i := 0; i < 5; i++ {
		s.Observe(999999)
	}
	assert.Equal(t, "average", s.State())
}
