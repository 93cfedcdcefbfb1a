package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feed(o *Oracle, vs ...Symbol) {
	for _, v := range vs {
		o.Input(v)
	}
}

func TestPeriodicStreamConvergesToDeterministicPrediction(t *testing.T) {
	o := NewOracle()

	pattern := []Symbol{1, 2, 3}
	for i := 0; i < 4; i++ {
		feed(o, pattern...)
		require.NoError(t, o.CheckInvariants())
	}

	feed(o, 1)
	assert.Equal(t, []Symbol{2}, o.PredictNext())

	feed(o, 2)
	assert.Equal(t, []Symbol{3}, o.PredictNext())

	feed(o, 3)
	assert.Equal(t, []Symbol{1}, o.PredictNext())
}

func TestDigramUniqueness(t *testing.T) {
	o := NewOracle()
	vals := []Symbol{1, 2, 1, 2, 1, 2, 3, 4, 3, 4, 5, 6, 7, 8, 9}
	feed(o, vals...)
	assert.NoError(t, o.CheckInvariants())
}

func TestRuleUtility(t *testing.T) {
	o := NewOracle()
	vals := []Symbol{1, 2, 3, 1, 2, 3, 1, 2, 3}
	feed(o, vals...)
	assert.NoError(t, o.CheckInvariants())
}

func TestPredictionEmptyBeforeAnyRepeat(t *testing.T) {
	o := NewOracle()
	feed(o, 1, 2, 3)
	assert.Empty(t, o.PredictNext())
}

func TestVersionAdvancesOnInput(t *testing.T) {
	o := NewOracle()
	v0 := o.Version()
	o.Input(1)
	assert.Greater(t, o.Version(), v0)
}
