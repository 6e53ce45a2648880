// Package transform implements CoreTransformer: the low-level graph
// rewrites that every higher-level fission/fusion operation reduces to
// (spec §4.4). It is not the only code that writes neighbour lists and
// cluster indices: fusion wires the loop and degree-3 node patterns of
// FuseToLoop, Fuse12 and Fuse1L itself, and fission sets NN and Cl on the
// segments it splits. classify does not touch adjacency.
package transform

import (
	"fmt"

	"github.com/vlaran/mitonet/segment"
	"github.com/vlaran/mitonet/structure"
)

// CopyNeigs copies all neighbour records from end ef of segment f to end
// et of segment t, then rewrites each affected neighbour's back-pointer
// from (f,ef) to (t,et). It does not touch edges, and it does not clear
// f's own list — callers that are about to discard or overwrite f are
// responsible for that.
//
// Complexity: O(NN[ef] of f).
func CopyNeigs(st *structure.Structure, f int, ef segment.End, t int, et segment.End) {
	src := st.Mt[f]
	dst := st.Mt[t]

	dst.Neig[et] = append(dst.Neig[et][:0:0], src.Neig[ef]...)
	dst.Neen[et] = append(dst.Neen[et][:0:0], src.Neen[ef]...)
	dst.NN[et] = src.NN[ef]

	RetargetNeigs(st, f, ef, t, et)
}

// RetargetNeigs rewrites, for every neighbour (cn,ce) currently listed at
// (oldn,oend), the back-pointer that names (oldn,oend) so that it instead
// names (newn,nend). oldn's own list at oend is left untouched.
//
// Precondition: every entry of oldn's list at oend has a matching
// back-pointer in the corresponding neighbour's list; a missing
// back-pointer is a broken invariant and panics (spec §8 "Symmetry of
// neighbour records").
//
// Complexity: O(NN[oend] of oldn · NN of each neighbour), bounded by 2·2
// since node degree never exceeds three.
func RetargetNeigs(st *structure.Structure, oldn int, oend segment.End, newn int, nend segment.End) {
	s := st.Mt[oldn]
	for i := 0; i < s.NN[oend]; i++ {
		cn, ce := s.Neig[oend][i], segment.End(s.Neen[oend][i])
		idx := findBackPointer(st, cn, ce, oldn, oend)
		st.Mt[cn].Neig[ce][idx] = newn
		st.Mt[cn].Neen[ce][idx] = int(nend)
	}
}

// RemoveNeigs deletes, for every neighbour (cn,ce) currently listed at
// (oldn,oend), both the forward record in oldn's list and the back-pointer
// in cn's list, using swap-with-last plus a decrement of NN.
//
// Complexity: O(NN[oend] of oldn), bounded by 2.
func RemoveNeigs(st *structure.Structure, oldn int, oend segment.End) {
	s := st.Mt[oldn]
	neighbours := append([]int(nil), s.Neig[oend]...)
	ends := append([]int(nil), s.Neen[oend]...)
	for i, cn := range neighbours {
		ce := segment.End(ends[i])
		idx := findBackPointer(st, cn, ce, oldn, oend)
		removeAt(st.Mt[cn], ce, idx)
	}
	s.Neig[oend] = s.Neig[oend][:0]
	s.Neen[oend] = s.Neen[oend][:0]
	s.NN[oend] = 0
}

// findBackPointer locates (oldn,oend) inside (cn,ce)'s neighbour list and
// returns its index. Existence is a precondition (spec §4.4); a linear
// scan suffices because node degree never exceeds three.
func findBackPointer(st *structure.Structure, cn int, ce segment.End, oldn int, oend segment.End) int {
	s := st.Mt[cn]
	for i := 0; i < s.NN[ce]; i++ {
		if s.Neig[ce][i] == oldn && segment.End(s.Neen[ce][i]) == oend {
			return i
		}
	}
	panic(fmt.Sprintf("transform: broken neighbour symmetry: (%d,%d) has no back-pointer to (%d,%d)", cn, ce, oldn, oend))
}

// removeAt deletes the i-th neighbour record of s at end e via
// swap-with-last and a decrement of NN[e].
func removeAt(s *segment.Segment, e segment.End, i int) {
	last := s.NN[e] - 1
	s.Neig[e][i] = s.Neig[e][last]
	s.Neen[e][i] = s.Neen[e][last]
	s.Neig[e] = s.Neig[e][:last]
	s.Neen[e] = s.Neen[e][:last]
	s.NN[e]--
}

// RenameMito moves segment f into slot t: copies both ends' neighbour
// lists (with back-pointer rewrite), moves G, and copies Cl. Used to
// back-fill a vacated slot after fusion removes a segment.
//
// Complexity: O(NN of f + length(f)).
func RenameMito(st *structure.Structure, f, t int) {
	CopyNeigs(st, f, segment.End1, t, segment.End1)
	CopyNeigs(st, f, segment.End2, t, segment.End2)
	st.Mt[t].G = st.Mt[f].G
	st.Mt[t].Cl = st.Mt[f].Cl
}

// UpdateCl rewrites every segment with Cl==from to Cl==to and renumbers
// the resulting cluster's IndCls via Structure.UpdateGIndcl.
//
// Complexity: O(MtNum).
func UpdateCl(st *structure.Structure, from, to int) {
	for i := 1; i <= st.MtNum; i++ {
		if st.Mt[i].Cl == from {
			st.Mt[i].Cl = to
		}
	}
	st.UpdateGIndcl(to)
}

// UpdateClFuse merges cluster c2 into c1, then compacts the cluster index
// space by renaming the highest live cluster index (ClNum-1) into the
// vacated c2 slot if c2 wasn't already the highest, and decrements ClNum.
//
// Complexity: O(MtNum).
func UpdateClFuse(st *structure.Structure, c1, c2 int) {
	UpdateCl(st, c2, c1)
	if c2 != st.ClNum-1 {
		UpdateCl(st, st.ClNum-1, c2)
	}
	st.ClNum--
}
