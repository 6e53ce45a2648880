package transform_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vlaran/mitonet/edge"
	"github.com/vlaran/mitonet/segment"
	"github.com/vlaran/mitonet/structure"
	"github.com/vlaran/mitonet/transform"
)

func linearNoNeigs(n, cl int) *segment.Segment {
	s := segment.New(cl)
	for i := 0; i < n; i++ {
		s.G = append(s.G, edge.New(uint64(i), uint64(i), cl))
	}

	return s
}

// link connects end e1 of slot n1 to end e2 of slot n2 symmetrically.
func link(st *structure.Structure, n1 int, e1 segment.End, n2 int, e2 segment.End) {
	a, b := st.Mt[n1], st.Mt[n2]
	a.Neig[e1] = append(a.Neig[e1], n2)
	a.Neen[e1] = append(a.Neen[e1], int(e2))
	a.NN[e1]++
	b.Neig[e2] = append(b.Neig[e2], n1)
	b.Neen[e2] = append(b.Neen[e2], int(e1))
	b.NN[e2]++
}

func TestFuseParallelConcatenatesAndFreesSlot(t *testing.T) {
	st := structure.New()
	w1 := st.AddSegment(linearNoNeigs(2, 0))
	w2 := st.AddSegment(linearNoNeigs(3, 0))

	pair := transform.FuseParallel(st, w1, w2)
	require.Equal(t, [2]int{0, 0}, pair)
	require.Equal(t, 1, st.MtNum)
	require.Equal(t, 5, st.Mt[w1].Length())
	// w2.g precedes w1.g in the merged run.
	require.Equal(t, uint64(0), st.Mt[w1].G[0].Ind)
	require.Equal(t, uint64(2), st.Mt[w1].G[2].Ind)
}

func TestFuseParallelMergesDistinctClusters(t *testing.T) {
	st := structure.New()
	w1 := st.AddSegment(linearNoNeigs(2, 0))
	w2 := st.AddSegment(linearNoNeigs(2, 1))
	st.ClNum = 2

	pair := transform.FuseParallel(st, w1, w2)
	require.Equal(t, [2]int{0, 1}, pair)
	require.Equal(t, 1, st.ClNum)
	require.Equal(t, 1, st.MtNum)
	require.Equal(t, 0, st.Mt[w1].Cl)
}

func TestFuseAntiparallelEnd2ReflectsW2(t *testing.T) {
	st := structure.New()
	w1 := st.AddSegment(linearNoNeigs(2, 0))
	w2 := st.AddSegment(linearNoNeigs(2, 0))

	pair := transform.FuseAntiparallel(st, segment.End2, w1, w2)
	require.Equal(t, [2]int{0, 0}, pair)
	require.Equal(t, 1, st.MtNum)
	require.Equal(t, 4, st.Mt[w1].Length())
}

func TestFuseParallelRelocatesLastSlotIntoVacatedW2(t *testing.T) {
	st := structure.New()
	w1 := st.AddSegment(linearNoNeigs(2, 0))    // slot 1
	w2 := st.AddSegment(linearNoNeigs(3, 0))    // slot 2
	third := st.AddSegment(linearNoNeigs(7, 2)) // slot 3, == MtNum, untouched by the fusion itself
	require.Equal(t, third, st.MtNum)
	require.NotEqual(t, w2, st.MtNum)

	transform.FuseParallel(st, w1, w2)

	require.Equal(t, 2, st.MtNum)
	// slot 2 now holds what used to live in slot 3.
	require.Equal(t, 7, st.Mt[w2].Length())
	require.Equal(t, 2, st.Mt[w2].Cl)
}
