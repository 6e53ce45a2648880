package transform

import (
	"fmt"

	"github.com/vlaran/mitonet/edge"
	"github.com/vlaran/mitonet/segment"
	"github.com/vlaran/mitonet/structure"
)

// FuseParallel fuses end 2 of w2 to end 1 of w1, storing the resulting
// edge run (w2's edges followed by w1's) in w1's slot. Preconditions:
// NN[1](w1)==0, NN[2](w2)==0,
// w1 != w2.
//
// Returns the pair of pre-fusion cluster indices (cl1, cl2). Callers must
// re-resolve any segment they still need by edge Ind afterward: w2's slot
// is freed by relocating the last live segment into it, which may move the
// segment that used to live at w1 if w1 was that last slot.
//
// Complexity: O(NN(w2 end1) + length(w1) + length(w2)).
func FuseParallel(st *structure.Structure, w1, w2 int) [2]int {
	if w1 == w2 {
		panic(fmt.Sprintf("transform: FuseParallel precondition violated: w1 == w2 (%d); use FuseToLoop instead", w1))
	}
	if st.Mt[w1].NN[segment.End1] != 0 {
		panic(fmt.Sprintf("transform: FuseParallel precondition violated: end 1 of %d is not free", w1))
	}
	if st.Mt[w2].NN[segment.End2] != 0 {
		panic(fmt.Sprintf("transform: FuseParallel precondition violated: end 2 of %d is not free", w2))
	}

	cl1, cl2 := st.Mt[w1].Cl, st.Mt[w2].Cl

	CopyNeigs(st, w2, segment.End1, w1, segment.End1)
	if cl2 != cl1 {
		UpdateClFuse(st, cl1, cl2)
	}

	merged := make([]edge.Edge, 0, len(st.Mt[w2].G)+len(st.Mt[w1].G))
	merged = append(merged, st.Mt[w2].G...)
	merged = append(merged, st.Mt[w1].G...)
	st.Mt[w1].G = merged
	st.Mt[w2].G = nil

	freeSlot(st, w2)

	st.UpdateGIndcl(cl1)
	if cl1 != cl2 {
		st.UpdateGIndcl(cl2)
	}

	return [2]int{cl1, cl2}
}

// FuseAntiparallel fuses end `end` of w1 to end `end` of w2 (both free at
// that end), reflecting one segment first so the edge orientations align.
// If end==End1, w1 is reflected; if end==End2, w2 is reflected.
// Precondition: w1 != w2.
//
// Returns the pair of pre-fusion cluster indices (cl1, cl2).
//
// Complexity: O(length(w1) + length(w2)).
func FuseAntiparallel(st *structure.Structure, end segment.End, w1, w2 int) [2]int {
	if w1 == w2 {
		panic(fmt.Sprintf("transform: FuseAntiparallel precondition violated: w1 == w2 (%d); use FuseToLoop instead", w1))
	}
	if st.Mt[w1].NN[end] != 0 {
		panic(fmt.Sprintf("transform: FuseAntiparallel precondition violated: end %d of %d is not free", end, w1))
	}
	if st.Mt[w2].NN[end] != 0 {
		panic(fmt.Sprintf("transform: FuseAntiparallel precondition violated: end %d of %d is not free", end, w2))
	}

	cl1, cl2 := st.Mt[w1].Cl, st.Mt[w2].Cl
	opEnd := end.Other()

	if end == segment.End1 {
		RetargetNeigs(st, w1, segment.End2, w1, segment.End1)
		st.Mt[w1].ReflectG()
	}
	CopyNeigs(st, w2, opEnd, w1, segment.End2)

	if cl2 != cl1 {
		UpdateClFuse(st, cl1, cl2)
	}

	if end == segment.End2 {
		st.Mt[w2].ReflectG()
	}

	st.Mt[w1].G = append(st.Mt[w1].G, st.Mt[w2].G...)
	st.Mt[w2].G = nil

	freeSlot(st, w2)

	st.UpdateGIndcl(cl1)
	if cl1 != cl2 {
		st.UpdateGIndcl(cl2)
	}

	return [2]int{cl1, cl2}
}

// freeSlot reclaims segment slot w by relocating the current last live
// segment into it (unless w already is the last slot) and shrinking the
// live segment array by one.
func freeSlot(st *structure.Structure, w int) {
	if w != st.MtNum {
		RenameMito(st, st.MtNum, w)
	}
	st.PopSegment()
}
