// Package fission implements FissionCore: the single rewrite family that
// cuts a node into lower-degree pieces, either in the interior of a
// segment (fiss2) or at one of its bound ends (fiss3), plus the DFS-based
// cluster-split decision both variants share.
package fission

import (
	"fmt"

	"github.com/vlaran/mitonet/segment"
	"github.com/vlaran/mitonet/structure"
	"github.com/vlaran/mitonet/transform"
)

// Fiss dispatches a fission at segment w, position a (0 <= a <=
// length(w)), to Fiss2 (interior cut) or Fiss3 (boundary cut at a node of
// degree at most three). a is the number of edges that remain in the
// original segment: 0 < a < length(w) cuts between g[a-1] and g[a]; a==0
// or a==length(w) detaches w from the node at end 1 or end 2
// respectively.
//
// Returns the pair of post-cut cluster indices.
func Fiss(st *structure.Structure, w, a int) [2]int {
	length := st.Mt[w].Length()
	switch {
	case a > 0 && a < length:
		return Fiss2(st, w, a)
	case (a == 0 && st.Mt[w].NN[segment.End1] <= 2) ||
		(a == length && st.Mt[w].NN[segment.End2] <= 2):
		return Fiss3(st, w, a)
	default:
		panic(&structure.ContractViolation{
			Op:  "Fiss",
			Msg: fmt.Sprintf("unpropitious fission at w=%d a=%d (length=%d)", w, a, length),
		})
	}
}

// Fiss2 cuts segment w in its interior, between g[a-1] and g[a], splitting
// a degree-2 node into two degree-1 nodes. Precondition: 0 < a <
// length(w).
//
// If the far end (end 2) carries neighbours, a DFS decides whether the
// cut disconnects the cluster; otherwise a new cluster is allocated
// directly. When the cut happens to bisect a self-loop (w's end 1 pointed
// at the freshly split-off segment's end 2 and vice versa, both degree
// one), the two halves are immediately re-fused in parallel, which is the
// only way a mid-loop cut reproduces the correct single-segment topology.
//
// Returns (cl(w), cl(last live segment)) — the second slot may be w's own
// slot if the self-loop re-fusion above fired, since FuseParallel stores
// its result in its first argument's slot.
func Fiss2(st *structure.Structure, w, a int) [2]int {
	clini := st.Mt[w].Cl
	ind1 := st.Mt[w].G[a-1].Ind
	ind2 := st.Mt[w].G[a].Ind

	var inCycle bool
	if st.Mt[w].NN[segment.End2] != 0 {
		inCycle = updateClFiss(st, w, segment.End2)
	} else {
		st.ClNum++
	}

	mtnum := st.AddSegment(segment.New(0))
	newSeg := st.Mt[mtnum]

	newSeg.G = append(newSeg.G, st.Mt[w].G[a:]...)
	st.Mt[w].G = st.Mt[w].G[:a:a]
	newSeg.NN[segment.End1] = 0

	transform.CopyNeigs(st, w, segment.End2, mtnum, segment.End2)

	if inCycle {
		newSeg.Cl = st.Mt[w].Cl
	} else {
		newSeg.Cl = st.ClNum - 1
	}

	if !inCycle {
		st.UpdateGIndcl(st.Mt[w].Cl)
		st.UpdateGIndcl(st.ClNum - 1)
	}

	st.Mt[w].NN[segment.End2] = 0

	if st.Mt[w].NN[segment.End1] == 1 &&
		newSeg.NN[segment.End2] == 1 &&
		w == newSeg.Neig[segment.End2][newSeg.SingleNeigIndex(segment.End2)] &&
		mtnum == st.Mt[w].Neig[segment.End1][st.Mt[w].SingleNeigIndex(segment.End1)] {
		transform.RemoveNeigs(st, w, segment.End1)
		transform.FuseParallel(st, w, mtnum)
	}

	st.BasicUpdate()
	w1 := st.Glm[ind1]
	w2 := st.Glm[ind2]
	if st.Mt[w1].Cl != clini && st.Mt[w2].Cl != clini {
		panic(&structure.ContractViolation{
			Op:  "Fiss2",
			Msg: fmt.Sprintf("neither half of w=%d retained the original cluster %d", w, clini),
		})
	}

	return [2]int{st.Mt[w].Cl, st.Mt[st.MtNum].Cl}
}

// Fiss3 detaches segment w from the node at end 1 (a==0) or end 2
// (a==length(w)). If that node had two other neighbours, they become
// dangling tips of matching rank; when they in fact held mutual
// single-neighbour records, they are immediately re-fused (parallel or
// antiparallel, by the ends involved) so the cut cleanly separates w
// without leaving a spurious degree-1 pair. Any other combination of
// residual neighbour counts on those two tips is a broken invariant and
// is fatal (open question in spec: whether those combinations are
// reachable from a well-formed run; preserved as-is pending a confirmed
// repro).
//
// Returns the pair of post-cut cluster indices.
func Fiss3(st *structure.Structure, w, a int) [2]int {
	var end segment.End
	if a == 0 {
		end = segment.End1
	} else {
		end = segment.End2
	}

	return fiss3At(st, w, end)
}

func fiss3At(st *structure.Structure, w int, end segment.End) [2]int {
	clini := st.Mt[w].Cl
	s := st.Mt[w]

	var ind1 uint64
	if end == segment.End1 {
		ind1 = s.G[0].Ind
	} else {
		ind1 = s.G[s.Length()-1].Ind
	}

	firstNeig := s.Neig[end][0]
	firstNeigEnd := segment.End(s.Neen[end][0])
	ind2 := st.Mt[firstNeig].G[st.Mt[firstNeig].End2a(firstNeigEnd)].Ind

	var f bool
	var n [2]int
	var e [2]segment.End
	switch s.NN[end] {
	case 2:
		idx := s.DoubleNeigIndexes(end)
		f = true
		for j := 0; j < 2; j++ {
			n[j] = s.Neig[end][idx[j]]
			e[j] = segment.End(s.Neen[end][idx[j]])
		}
	case 1:
		n[0] = s.Neig[end][s.SingleNeigIndex(end)]
	}

	inCycle := updateClFiss(st, w, end)
	if !inCycle {
		st.UpdateGIndcl(clini)
	}

	transform.RemoveNeigs(st, w, end)

	if f && n[0] != n[1] {
		nn0, nn1 := st.Mt[n[0]].NN[e[0]], st.Mt[n[1]].NN[e[1]]
		switch {
		case nn0 == 1 && nn1 == 1:
			idx0 := st.Mt[n[0]].SingleNeigIndex(e[0])
			idx1 := st.Mt[n[1]].SingleNeigIndex(e[1])
			mutual := st.Mt[n[0]].Neig[e[0]][idx0] == n[1] &&
				segment.End(st.Mt[n[0]].Neen[e[0]][idx0]) == e[1] &&
				st.Mt[n[1]].Neig[e[1]][idx1] == n[0] &&
				segment.End(st.Mt[n[1]].Neen[e[1]][idx1]) == e[0]
			if mutual {
				transform.RemoveNeigs(st, n[0], e[0])
				switch {
				case e[0] == e[1]:
					transform.FuseAntiparallel(st, e[0], n[0], n[1])
				case e[0] == segment.End1 && e[1] == segment.End2:
					transform.FuseParallel(st, n[0], n[1])
				default:
					transform.FuseParallel(st, n[1], n[0])
				}
			}
		default:
			panic(&structure.ContractViolation{
				Op: "Fiss3",
				Msg: fmt.Sprintf(
					"unexpected co-neighbour degree pattern at w=%d end=%d: nn[n0]=%d nn[n1]=%d",
					w, end, nn0, nn1),
			})
		}
	}

	st.BasicUpdate()
	w1 := st.Glm[ind1]
	w2 := st.Glm[ind2]
	if st.Mt[w1].Cl != clini && st.Mt[w2].Cl != clini {
		panic(&structure.ContractViolation{
			Op:  "Fiss3",
			Msg: fmt.Sprintf("neither resulting segment retained the original cluster %d", clini),
		})
	}

	return [2]int{st.Mt[w1].Cl, st.Mt[w2].Cl}
}

// updateClFiss decides, via DFS from (w,e) to (w, e.Other()) without
// passing back through w, whether cutting w at e leaves the cluster
// connected. If not, it allocates a new cluster index and assigns it to
// every segment reached during the search.
func updateClFiss(st *structure.Structure, w int, e segment.End) bool {
	vis := make([]bool, st.MtNum+1)
	oe := e.Other()

	stillConnected := dfs(st, vis, w, e, w, oe)
	if !stillConnected {
		st.ClNum++
		var clind uint64
		for i := 1; i <= st.MtNum; i++ {
			if vis[i] {
				clind = st.Mt[i].SetCl(st.ClNum-1, clind)
			}
		}
	}

	return stillConnected
}

// dfs searches the neighbour graph from (w1,e1) for (w2,e2), stepping
// from end x of a segment to end 3-x on arrival and never marking w2
// itself as visited (so a path is only accepted at the exact target end,
// never by passing through w2's interior).
func dfs(st *structure.Structure, vis []bool, w1 int, e1 segment.End, w2 int, e2 segment.End) bool {
	s := st.Mt[w1]
	for i := 0; i < s.NN[e1]; i++ {
		cn := s.Neig[e1][i]
		ce := segment.End(s.Neen[e1][i])
		if cn == w2 {
			if ce == e2 {
				return true
			}

			continue
		}
		if !vis[cn] {
			vis[cn] = true
			if dfs(st, vis, cn, ce.Other(), w2, e2) {
				return true
			}
		}
	}

	return false
}
