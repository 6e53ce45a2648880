package snapshot_test

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vlaran/mitonet/edge"
	"github.com/vlaran/mitonet/segment"
	"github.com/vlaran/mitonet/snapshot"
	"github.com/vlaran/mitonet/structure"
)

func freeLinear(n, cl int, indBase uint64) *segment.Segment {
	s := segment.New(cl)
	for i := 0; i < n; i++ {
		s.G = append(s.G, edge.New(indBase+uint64(i), uint64(i), cl))
	}

	return s
}

func readUint64(t *testing.T, r *bytes.Reader) uint64 {
	t.Helper()
	var buf [8]byte
	_, err := r.Read(buf[:])
	require.NoError(t, err)

	return binary.LittleEndian.Uint64(buf[:])
}

func TestWriteFrameLayoutAndRunningMaxima(t *testing.T) {
	st := structure.New()
	st.AddSegment(freeLinear(3, 0, 0))
	st.Mt[1].NN[segment.End1] = 1
	st.Mt[1].Neig[segment.End1] = []int{1}
	st.Mt[1].Neen[segment.End1] = []int{int(segment.End2)}
	st.ClNum = 1

	w := snapshot.NewWriter()

	var buf bytes.Buffer
	require.NoError(t, w.WriteFrame(&buf, st, 1.5, 7, false))

	r := bytes.NewReader(buf.Bytes())

	tBits := readUint64(t, r)
	require.Equal(t, 1.5, math.Float64frombits(tBits))
	require.Equal(t, uint64(1), readUint64(t, r))

	// Skip the one segment's own serialized body: length, cl, nn[1]=1 pair,
	// nn[2]=0 no pairs, 3 edges of 5 uint64 words each.
	require.Equal(t, uint64(3), readUint64(t, r)) // length
	require.Equal(t, uint64(0), readUint64(t, r)) // cl
	require.Equal(t, uint64(1), readUint64(t, r)) // nn[1]
	readUint64(t, r)                              // neig
	readUint64(t, r)                              // neen
	require.Equal(t, uint64(0), readUint64(t, r)) // nn[2]
	for i := 0; i < 3; i++ {
		for j := 0; j < 5; j++ {
			readUint64(t, r)
		}
	}

	require.Equal(t, uint64(1), readUint64(t, r)) // mtnummax
	require.Equal(t, uint64(1), readUint64(t, r)) // nn1max
	require.Equal(t, uint64(0), readUint64(t, r)) // nn2max
	require.Equal(t, uint64(7), readUint64(t, r)) // seq

	require.Equal(t, 0, r.Len())
}

func TestWriteFrameLastSnapshotZeroesSeqAndFreezesMaxima(t *testing.T) {
	st := structure.New()
	st.AddSegment(freeLinear(2, 0, 0))
	st.ClNum = 1

	w := snapshot.NewWriter()
	var warm bytes.Buffer
	require.NoError(t, w.WriteFrame(&warm, st, 0, 1, false))

	st.AddSegment(freeLinear(9, 1, 100))
	st.ClNum = 2

	var buf bytes.Buffer
	require.NoError(t, w.WriteFrame(&buf, st, 2.0, 99, true))

	r := bytes.NewReader(buf.Bytes())
	readUint64(t, r) // t
	n := readUint64(t, r)
	require.Equal(t, uint64(2), n)

	for q := 0; q < 2; q++ {
		length := readUint64(t, r)
		readUint64(t, r) // cl
		nn1 := readUint64(t, r)
		for i := uint64(0); i < nn1; i++ {
			readUint64(t, r)
			readUint64(t, r)
		}
		nn2 := readUint64(t, r)
		for i := uint64(0); i < nn2; i++ {
			readUint64(t, r)
			readUint64(t, r)
		}
		for i := uint64(0); i < length; i++ {
			for j := 0; j < 5; j++ {
				readUint64(t, r)
			}
		}
	}

	require.Equal(t, uint64(1), readUint64(t, r)) // mtnummax frozen from the warm-up frame
	require.Equal(t, uint64(0), readUint64(t, r)) // nn1max frozen
	require.Equal(t, uint64(0), readUint64(t, r)) // nn2max frozen
	require.Equal(t, uint64(0), readUint64(t, r)) // seq forced to 0 for "last"
}
