package edge

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	e := New(7, 2, 3)
	require.Equal(t, uint64(7), e.Ind)
	require.Equal(t, uint64(2), e.IndCl)
	require.Equal(t, 3, e.Cl)
	require.Equal(t, [2]uint64{0, 0}, e.Fin)
}

func TestReflect(t *testing.T) {
	e := New(1, 0, 0)
	e.Fin[0] = 1
	e.Reflect()
	require.Equal(t, [2]uint64{0, 1}, e.Fin)
	ind := e.Ind
	e.Reflect()
	require.Equal(t, [2]uint64{1, 0}, e.Fin)
	require.Equal(t, ind, e.Ind, "reflect must not touch Ind")
}

func TestWriteEmitsWireSizeRecord(t *testing.T) {
	e := New(42, 5, 9)
	e.Fin = [2]uint64{1, 0}
	var buf bytes.Buffer
	require.NoError(t, e.Write(&buf))
	require.Equal(t, wireSize, buf.Len())
}
