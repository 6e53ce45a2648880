package fusion_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vlaran/mitonet/edge"
	"github.com/vlaran/mitonet/fusion"
	"github.com/vlaran/mitonet/segment"
	"github.com/vlaran/mitonet/structure"
)

func freeLinear(n, cl int, indBase uint64) *segment.Segment {
	s := segment.New(cl)
	for i := 0; i < n; i++ {
		s.G = append(s.G, edge.New(indBase+uint64(i), uint64(i), cl))
	}

	return s
}

func TestFuseToLoopClosesSegmentOnItself(t *testing.T) {
	st := structure.New()
	w := st.AddSegment(freeLinear(5, 0, 0))

	pair := fusion.FuseToLoop(st, w)

	require.Equal(t, [2]int{0, 0}, pair)
	require.True(t, st.Mt[w].IsCycle())
}

func TestFuseToLoopPanicsOnBoundEnd(t *testing.T) {
	st := structure.New()
	w := st.AddSegment(freeLinear(3, 0, 0))
	st.Mt[w].NN[segment.End1] = 1
	st.Mt[w].Neig[segment.End1] = []int{w}
	st.Mt[w].Neen[segment.End1] = []int{int(segment.End2)}

	require.Panics(t, func() { fusion.FuseToLoop(st, w) })
}

func TestFuse11SelfFusionDelegatesToFuseToLoop(t *testing.T) {
	st := structure.New()
	w := st.AddSegment(freeLinear(4, 0, 0))

	pair := fusion.Fuse11(st, w, segment.End1, w, segment.End2)

	require.Equal(t, [2]int{0, 0}, pair)
	require.True(t, st.Mt[w].IsCycle())
}

func TestFuse1LWiresLollipopNode(t *testing.T) {
	st := structure.New()
	w1 := st.AddSegment(freeLinear(3, 0, 0))
	w2 := st.AddSegment(freeLinear(4, 1, 100))
	st.ClNum = 2
	fusion.FuseToLoop(st, w2)

	pair := fusion.Fuse1L(st, w1, segment.End2, w2)

	require.Equal(t, [2]int{0, 1}, pair)
	require.Equal(t, 1, st.ClNum)
	require.Equal(t, 2, st.Mt[w1].NN[segment.End2])
	require.Equal(t, 2, st.Mt[w2].NN[segment.End1])
	require.Equal(t, 2, st.Mt[w2].NN[segment.End2])
	require.Equal(t, st.Mt[w1].Cl, st.Mt[w2].Cl)
}

func TestFuse1LResultClassifiesCleanly(t *testing.T) {
	st := structure.New()
	w1 := st.AddSegment(freeLinear(3, 0, 0))
	w2 := st.AddSegment(freeLinear(4, 1, 100))
	st.ClNum = 2
	fusion.FuseToLoop(st, w2)

	fusion.Fuse1L(st, w1, segment.End2, w2)

	st.BasicUpdate()
	require.NoError(t, st.PopulateClusterVectors())
	require.Len(t, st.Mt33, 1)
	require.Equal(t, w2, st.Mt33[0])
	require.Len(t, st.Mt13, 1)
	require.Equal(t, w1, st.Mt13[0].Seg)
}

func TestFuse1LPanicsWhenW2NotACycle(t *testing.T) {
	st := structure.New()
	w1 := st.AddSegment(freeLinear(3, 0, 0))
	w2 := st.AddSegment(freeLinear(4, 0, 100))

	require.Panics(t, func() { fusion.Fuse1L(st, w1, segment.End2, w2) })
}

func TestFuse12SelfFusionResultClassifiesCleanly(t *testing.T) {
	st := structure.New()
	w1 := st.AddSegment(freeLinear(6, 0, 0))

	fusion.Fuse12(st, w1, segment.End1, w1, 3)

	st.BasicUpdate()
	require.NoError(t, st.PopulateClusterVectors())
	require.Len(t, st.Mt33, 1)
	require.Equal(t, w1, st.Mt33[0])
}

func TestFuse12TipToSideProducesDegreeThreeNode(t *testing.T) {
	st := structure.New()
	w1 := st.AddSegment(freeLinear(3, 0, 0))
	w2 := st.AddSegment(freeLinear(6, 1, 100))
	st.ClNum = 2

	pair := fusion.Fuse12(st, w1, segment.End2, w2, 3)

	require.Equal(t, [2]int{0, 1}, pair)
	require.Equal(t, 1, st.ClNum)
	require.Equal(t, 2, st.Mt[w1].NN[segment.End2])
	require.Equal(t, 2, st.Mt[w2].NN[segment.End2])
}
