package context

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAssignsDenseSymbols(t *testing.T) {
	d := NewDictionary()

	s1, err := d.Insert(Context{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, Symbol(1), s1)

	s2, err := d.Insert(Context{1, 2, 4})
	require.NoError(t, err)
	assert.Equal(t, Symbol(2), s2)

	s3, err := d.Insert(Context{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, s1, s3, "identical contexts must share a symbol")
}

func TestInsertRejectsEmptyContext(t *testing.T) {
	d := NewDictionary()
	_, err := d.Insert(Context{})
	assert.ErrorIs(t, err, ErrEmptyContext)
}

func TestInsertInjectivity(t *testing.T) {
	d := NewDictionary()
	seqs := []Context{
		{1, 2, 3},
		{1, 2, 4},
		{9},
		{1, 2, 3, 4},
	}
	symbols := map[Symbol]Context{}
	for _, seq := range seqs {
		sym, err := d.Insert(seq)
		require.NoError(t, err)
		if existing, ok := symbols[sym]; ok {
			assert.Equal(t, existing, seq)
		}
		symbols[sym] = seq
	}
	assert.Len(t, symbols, len(seqs))
}

func TestOpenAppendsOnlyNewSymbols(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.dict")

	d := NewDictionary()
	require.NoError(t, d.Open(path))

	_, err := d.Insert(Context{1, 2})
	require.NoError(t, err)
	_, err = d.Insert(Context{1, 2})
	require.NoError(t, err)
	_, err = d.Insert(Context{3, 4})
	require.NoError(t, err)

	require.NoError(t, d.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Equal(t, "[1]:0x1,0x2\n[2]:0x3,0x4\n", content)
}

func TestTruncateCapsDepth(t *testing.T) {
	seq := make(Context, MaxDepth+10)
	for i := range seq {
		seq[i] = Frame(i)
	}
	truncated := seq.Truncate()
	assert.Len(t, truncated, MaxDepth)
}
