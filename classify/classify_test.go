package classify_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vlaran/mitonet/classify"
	"github.com/vlaran/mitonet/edge"
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

func TestFusion11CountsSelfLoopsAndCrossPairs(t *testing.T) {
	st := structure.New()
	st.AddSegment(freeLinear(2, 0, 0))
	st.AddSegment(freeLinear(2, 0, 100))
	st.AddSegment(freeLinear(2, 0, 200))
	st.ClNum = 1
	st.BasicUpdate()
	require.NoError(t, st.PopulateClusterVectors())

	cnd := classify.Fusion11(st)

	require.Equal(t, 15, cnd.Size())
}

func TestFusion11ExcludesTooShortSelfLoop(t *testing.T) {
	st := structure.New()
	st.AddSegment(freeLinear(1, 0, 0))
	st.ClNum = 1
	st.BasicUpdate()
	require.NoError(t, st.PopulateClusterVectors())

	cnd := classify.Fusion11(st)

	require.Equal(t, 0, cnd.Size())
}

func TestFusion12CountsBulkTargetsExcludingNearEnds(t *testing.T) {
	st := structure.New()
	st.AddSegment(freeLinear(5, 0, 0))
	st.ClNum = 1
	st.BasicUpdate()
	require.NoError(t, st.PopulateClusterVectors())

	cnd := classify.Fusion12(st)

	require.Equal(t, 12, cnd.Size())
}

func TestFusion1LPairsTipsWithSeparateLoops(t *testing.T) {
	st := structure.New()
	w1a := st.AddSegment(freeLinear(2, 0, 0))
	w1b := st.AddSegment(freeLinear(2, 0, 100))
	_ = w1a
	_ = w1b
	loop := st.AddSegment(freeLinear(3, 0, 200))
	s := st.Mt[loop]
	s.NN[segment.End1], s.NN[segment.End2] = 1, 1
	s.Neig[segment.End1] = []int{loop}
	s.Neen[segment.End1] = []int{int(segment.End2)}
	s.Neig[segment.End2] = []int{loop}
	s.Neen[segment.End2] = []int{int(segment.End1)}

	tip13 := st.AddSegment(freeLinear(2, 0, 300))
	t13 := st.Mt[tip13]
	t13.NN[segment.End1] = 1
	t13.Neig[segment.End1] = []int{loop}
	t13.Neen[segment.End1] = []int{int(segment.End1)}

	st.ClNum = 1
	st.BasicUpdate()
	require.NoError(t, st.PopulateClusterVectors())
	require.Len(t, st.Mt22, 1)
	require.Len(t, st.Mt11, 2)
	require.Len(t, st.Mt13, 1)

	cnd := classify.Fusion1L(st)

	require.Equal(t, 5, cnd.Size())
}

func TestFissionPropensityAndFindFissionNode(t *testing.T) {
	st := structure.New()
	st.AddSegment(freeLinear(3, 0, 0))
	st.ClNum = 1
	st.BasicUpdate()

	pr, total := classify.FissionPropensity(st)

	require.Equal(t, []uint64{4}, pr)
	require.Equal(t, uint64(4), total)

	w, a, ok := classify.FindFissionNode(st, 1)
	require.True(t, ok)
	require.Equal(t, 1, w)
	require.Equal(t, 1, a)

	w, a, ok = classify.FindFissionNode(st, 4)
	require.True(t, ok)
	require.Equal(t, 1, w)
	require.Equal(t, 2, a)

	_, _, ok = classify.FindFissionNode(st, 5)
	require.False(t, ok)
}
