package structure

import "github.com/vlaran/mitonet/segment"

// BasicUpdate rebuilds Glm, Gla, Cls and Clmt from scratch by scanning the
// live segment array. Called after any rewrite that may have moved edges
// between segments or renumbered slots (spec §4.3).
//
// Complexity: O(MtMass()).
func (st *Structure) BasicUpdate() {
	for k := range st.Glm {
		delete(st.Glm, k)
	}
	for k := range st.Gla {
		delete(st.Gla, k)
	}
	for k := range st.Cls {
		delete(st.Cls, k)
	}
	for k := range st.Clmt {
		delete(st.Clmt, k)
	}

	for slot := 1; slot <= st.MtNum; slot++ {
		s := st.Mt[slot]
		if _, ok := st.Clmt[s.Cl]; !ok {
			st.Clmt[s.Cl] = make(map[int]struct{})
		}
		st.Clmt[s.Cl][slot] = struct{}{}
		st.Cls[s.Cl] += s.Length()
		for pos := range s.G {
			ind := s.G[pos].Ind
			st.Glm[ind] = slot
			st.Gla[ind] = pos
		}
	}
}

// PopulateClusterVectors classifies every live segment by its endpoint
// degree pattern into Mt11/Mt22/Mt33/Mt13 (and the per-cluster mirrors
// Mtc11/Mtc22/Mtc33/Mtc13), per spec §4.3:
//
//   - both ends free (NN[1]==0 && NN[2]==0)  -> "11"
//   - IsCycle()                              -> "22"
//   - one free end, other end bound (NN>=1)   -> "13", recording (seg, freeEnd)
//   - both ends at a branch node (NN==2 each) -> "33"
//
// Any other shape is a classification error (a segment with a degree-3 end
// co-existing with something other than these four shapes cannot occur
// under the rewrite rules) and is a programming-contract violation.
//
// Complexity: O(MtNum).
func (st *Structure) PopulateClusterVectors() error {
	st.Mt11 = st.Mt11[:0]
	st.Mt22 = st.Mt22[:0]
	st.Mt33 = st.Mt33[:0]
	st.Mt13 = st.Mt13[:0]
	for k := range st.Mtc11 {
		delete(st.Mtc11, k)
	}
	for k := range st.Mtc22 {
		delete(st.Mtc22, k)
	}
	for k := range st.Mtc33 {
		delete(st.Mtc33, k)
	}
	for k := range st.Mtc13 {
		delete(st.Mtc13, k)
	}

	for slot := 1; slot <= st.MtNum; slot++ {
		s := st.Mt[slot]
		cl := s.Cl
		switch {
		case s.NN[segment.End1] == 0 && s.NN[segment.End2] == 0:
			st.Mt11 = append(st.Mt11, slot)
			st.Mtc11[cl] = append(st.Mtc11[cl], slot)
		case s.IsCycle():
			st.Mt22 = append(st.Mt22, slot)
			st.Mtc22[cl] = append(st.Mtc22[cl], slot)
		case s.NN[segment.End1] == 2 && s.NN[segment.End2] == 2:
			st.Mt33 = append(st.Mt33, slot)
			st.Mtc33[cl] = append(st.Mtc33[cl], slot)
		case s.HasOneFreeEnd() != 0:
			free := s.HasOneFreeEnd()
			entry := Mt13Entry{Seg: slot, FreeEnd: free}
			st.Mt13 = append(st.Mt13, entry)
			st.Mtc13[cl] = append(st.Mtc13[cl], entry)
		default:
			return &ContractViolation{
				Op:  "PopulateClusterVectors",
				Msg: "segment does not match any known endpoint-degree shape",
			}
		}
	}

	return nil
}

// UpdateNodeNumbers refreshes NN[0..2] by summing NumNodes(deg) across all
// live segments and dividing the degree-3 total by three (NumNodes(3)
// counts segment ends with NN==2, and each degree-3 node has exactly three
// such ends, so the division folds them into a single node count).
//
// Complexity: O(MtNum).
func (st *Structure) UpdateNodeNumbers() {
	var n1, n2, n3 int
	for slot := 1; slot <= st.MtNum; slot++ {
		s := st.Mt[slot]
		n1 += s.NumNodes(1)
		n2 += s.NumNodes(2)
		n3 += s.NumNodes(3)
	}
	st.NN[0] = n1
	st.NN[1] = n2
	st.NN[2] = n3 / 3
}
