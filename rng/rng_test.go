package rng_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vlaran/mitonet/rng"
)

func TestLoadSeedsReadsExistingTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seeds.bin")

	want := []uint32{11, 22, 33, 44}
	buf := make([]byte, 4*len(want))
	for i, v := range want {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	require.NoError(t, os.WriteFile(path, buf, 0o644))

	got, err := rng.LoadSeeds(path, len(want))
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestLoadSeedsRegeneratesWhenMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "absent.bin")

	got1, err := rng.LoadSeeds(path, 5)
	require.NoError(t, err)
	require.Len(t, got1, 5)

	got2, err := rng.LoadSeeds(path, 5)
	require.NoError(t, err)
	require.Equal(t, got1, got2)
}

func TestLoadSeedsRegeneratesWhenTruncated(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.bin")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0o644))

	got, err := rng.LoadSeeds(path, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
}

func TestMathRandFloat64InUnitInterval(t *testing.T) {
	m := rng.NewMathRand(42)
	for i := 0; i < 1000; i++ {
		v := m.Float64()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

func TestMathRandDeterministicGivenSameSeed(t *testing.T) {
	a := rng.NewMathRand(7)
	b := rng.NewMathRand(7)
	for i := 0; i < 10; i++ {
		require.Equal(t, a.Float64(), b.Float64())
	}
}
