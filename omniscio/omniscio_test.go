package omniscio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitDisabledByEnv(t *testing.T) {
	t.Setenv("OMNISCIO_DISABLE", "1")
	require := assert.New(t)
	require.NoError(Init())

	sym, err := OpenStart("a.dat", POSIX)
	require.NoError(err)
	require.Equal(int64(0), int64(sym))
}
