package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyFollowing(t *testing.T) {
	d := Classify(4096, 0, 4096)
	assert.Equal(t, Descriptor{Kind: Following}, d)
}

func TestClassifyRelative(t *testing.T) {
	d := Classify(5000, 1024, 1024)
	assert.Equal(t, Descriptor{Kind: Relative, Value: 2952}, d)
}

func TestClassifyAbsoluteZero(t *testing.T) {
	d := Classify(0, 1024, 1024)
	assert.Equal(t, Descriptor{Kind: Absolute, Value: 0}, d)
}

func TestGetOffsetAfter(t *testing.T) {
	assert.Equal(t, int64(4096), GetOffsetAfter(0, 4096, Descriptor{Kind: Following}))
	assert.Equal(t, int64(100), GetOffsetAfter(50, 4096, Descriptor{Kind: Absolute, Value: 100}))
	assert.Equal(t, int64(4246), GetOffsetAfter(50, 4096, Descriptor{Kind: Relative, Value: 100}))
	assert.Equal(t, int64(5000), GetOffsetAfter(1024, 1024, Descriptor{Kind: Relative, Value: 2952}))
}

func TestOffsetSimplePredictsSingleton(t *testing.T) {
	o := NewOffset(4)
	for i := 0; i < 3; i++ {
		o.Observe(Descriptor{Kind: Following})
	}
	d, ok := o.Predict()
	assert.True(t, ok)
	assert.Equal(t, Descriptor{Kind: Following}, d)
}

func TestOffsetUpgradesToGrammarOnFirstDissent(t *testing.T) {
	o := NewOffset(4)
	o.Observe(Descriptor{Kind: Following})
	o.Observe(Descriptor{Kind: Following})
	assert.Equal(t, "simple", o.State())

	o.Observe(Descriptor{Kind: Absolute, Value: 0})
	assert.Equal(t, "grammar", o.State())
}

func TestOffsetUpgradesToFollowPastThreshold(t *testing.T) {
	o := NewOffset(24)
	for i := int64(0); i < 40; i++ {
		o.Observe(Descriptor{Kind: Relative, Value: i})
	}
	assert.Equal(t, "follow", o.State())
	d, ok := o.Predict()
	assert.True(t, ok)
	assert.Equal(t, Descriptor{Kind: Following}, d)
}
