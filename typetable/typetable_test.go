package typetable

import (
	"testing"

	"github.com/omniscio/omniscio-go/context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndLookup(t *testing.T) {
	tbl := New()
	require.NoError(t, tbl.Record(1, Read))
	op, ok := tbl.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, Read, op)
}

func TestRecordIsIdempotentForSameOp(t *testing.T) {
	tbl := New()
	require.NoError(t, tbl.Record(1, Read))
	require.NoError(t, tbl.Record(1, Read))
	assert.Equal(t, 1, tbl.Len())
}

func TestRecordRejectsConflictingOp(t *testing.T) {
	tbl := New()
	require.NoError(t, tbl.Record(1, Read))
	err := tbl.Record(1, Write)
	assert.Error(t, err)
}

func TestLookupMiss(t *testing.T) {
	tbl := New()
	_, ok := tbl.Lookup(99)
	assert.False(t, ok)
}
