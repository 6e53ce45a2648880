// Package fusion implements FusionCore: the three user-facing fusion
// flavours (tip-to-tip, tip-to-side, tip-to-loop) built on top of the
// transform package's parallel/antiparallel primitives, plus the
// self-fusion special case that turns a free segment into a separate
// cycle.
package fusion

import (
	"fmt"

	"github.com/vlaran/mitonet/fission"
	"github.com/vlaran/mitonet/segment"
	"github.com/vlaran/mitonet/structure"
	"github.com/vlaran/mitonet/transform"
)

// Fuse11 joins tip (w1,e1) to tip (w2,e2). w1==w2 turns the segment into a
// separate cycle; e1==e2 is an antiparallel join; otherwise it reduces to
// FuseParallel with the free-at-end-1 segment named first.
//
// Returns the pair of pre-fusion cluster indices.
func Fuse11(st *structure.Structure, w1 int, e1 segment.End, w2 int, e2 segment.End) [2]int {
	switch {
	case w2 == w1:
		return FuseToLoop(st, w1)
	case e1 == e2:
		return transform.FuseAntiparallel(st, e1, w1, w2)
	case e1 == segment.End1:
		return transform.FuseParallel(st, w1, w2)
	default:
		return transform.FuseParallel(st, w2, w1)
	}
}

// FuseToLoop closes a free, non-cycle segment onto itself, making both
// ends each other's sole neighbour with the crossed end pattern (1,2) and
// (2,1).
//
// Preconditions: w is not already a cycle, and both ends are free;
// violations are programming errors and panic.
func FuseToLoop(st *structure.Structure, w int) [2]int {
	s := st.Mt[w]
	if s.IsCycle() {
		panic(&structure.ContractViolation{Op: "FuseToLoop", Msg: fmt.Sprintf("segment %d is already a separate cycle", w)})
	}
	if s.NN[segment.End1] != 0 || s.NN[segment.End2] != 0 {
		panic(&structure.ContractViolation{Op: "FuseToLoop", Msg: fmt.Sprintf("segment %d is not free at both ends", w)})
	}

	s.NN[segment.End1], s.NN[segment.End2] = 1, 1
	s.Neig[segment.End1] = []int{w}
	s.Neen[segment.End1] = []int{int(segment.End2)}
	s.Neig[segment.End2] = []int{w}
	s.Neen[segment.End2] = []int{int(segment.End1)}

	return [2]int{s.Cl, s.Cl}
}

// Fuse12 joins tip (w1,end) to an interior position a2 of w2 (tip to
// side), producing a degree-3 node. w2 is first cut at a2 via
// fission.Fiss2, yielding a fresh segment mi — unless w2 is itself a
// separate cycle, in which case the cut rewrites w2 in place and mi==w2.
// w1==w2 (joining an end of a segment to its own interior) is handled
// with a dedicated neighbour pattern since the two segment indices alias.
//
// Returns the pair of pre-fusion cluster indices.
func Fuse12(st *structure.Structure, w1 int, end segment.End, w2, a2 int) [2]int {
	cl1, cl2 := st.Mt[w1].Cl, st.Mt[w2].Cl

	mi := st.MtNum + 1
	if st.Mt[w2].IsCycle() {
		mi = w2
	}

	fission.Fiss2(st, w2, a2)

	switch {
	case w1 == w2 && end == segment.End1:
		s := st.Mt[w1]
		s.NN[segment.End1] = 2
		s.Neig[segment.End1] = []int{w1, mi}
		s.Neen[segment.End1] = []int{int(segment.End2), int(segment.End1)}
		s.NN[segment.End2] = 2
		s.Neig[segment.End2] = []int{w1, mi}
		s.Neen[segment.End2] = []int{int(segment.End1), int(segment.End1)}

		m := st.Mt[mi]
		m.NN[segment.End1] = 2
		m.Neig[segment.End1] = []int{w1, w1}
		m.Neen[segment.End1] = []int{int(segment.End1), int(segment.End2)}

	case w1 == w2:
		s := st.Mt[w1]
		s.NN[segment.End2] = 2
		s.Neig[segment.End2] = []int{mi, mi}
		s.Neen[segment.End2] = []int{int(segment.End1), int(segment.End2)}

		m := st.Mt[mi]
		m.NN[segment.End1] = 2
		m.Neig[segment.End1] = []int{w1, mi}
		m.Neen[segment.End1] = []int{int(segment.End2), int(segment.End2)}
		m.NN[segment.End2] = 2
		m.Neig[segment.End2] = []int{w1, mi}
		m.Neen[segment.End2] = []int{int(segment.End2), int(segment.End1)}

	default:
		s1 := st.Mt[w1]
		s1.NN[end] = 2
		s1.Neig[end] = []int{w2, mi}
		s1.Neen[end] = []int{int(segment.End2), int(segment.End1)}

		s2 := st.Mt[w2]
		s2.NN[segment.End2] = 2
		s2.Neig[segment.End2] = []int{w1, mi}
		s2.Neen[segment.End2] = []int{int(end), int(segment.End1)}

		m := st.Mt[mi]
		m.NN[segment.End1] = 2
		m.Neig[segment.End1] = []int{w1, w2}
		m.Neen[segment.End1] = []int{int(end), int(segment.End2)}
	}

	if st.Mt[w2].Cl != st.Mt[mi].Cl {
		transform.UpdateClFuse(st, st.Mt[w2].Cl, st.Mt[mi].Cl)
	}
	if st.Mt[w2].Cl != st.Mt[w1].Cl {
		transform.UpdateClFuse(st, st.Mt[w1].Cl, st.Mt[w2].Cl)
	}

	return [2]int{cl1, cl2}
}

// Fuse1L joins tip (w1,e1) to separate cycle w2 (tip to loop), wiring
// w1's end e1 to both ends of w2 and w2's two ends to each other and to
// w1, producing a lollipop degree-3 node.
//
// Precondition: w2 is a separate cycle; violation is a programming error
// and panics.
//
// Returns the pair of pre-fusion cluster indices.
func Fuse1L(st *structure.Structure, w1 int, e1 segment.End, w2 int) [2]int {
	if !st.Mt[w2].IsCycle() {
		panic(&structure.ContractViolation{Op: "Fuse1L", Msg: fmt.Sprintf("segment %d is not a separate cycle", w2)})
	}

	cl1, cl2 := st.Mt[w1].Cl, st.Mt[w2].Cl

	s1 := st.Mt[w1]
	s1.NN[e1] = 2
	s1.Neig[e1] = []int{w2, w2}
	s1.Neen[e1] = []int{int(segment.End1), int(segment.End2)}

	s2 := st.Mt[w2]
	s2.NN[segment.End1] = 2
	s2.Neig[segment.End1] = []int{w2, w1}
	s2.Neen[segment.End1] = []int{int(segment.End2), int(e1)}
	s2.NN[segment.End2] = 2
	s2.Neig[segment.End2] = []int{w2, w1}
	s2.Neen[segment.End2] = []int{int(segment.End1), int(e1)}

	if cl1 != cl2 {
		transform.UpdateClFuse(st, cl1, cl2)
	}

	return [2]int{cl1, cl2}
}
