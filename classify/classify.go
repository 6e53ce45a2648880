// Package classify implements the Classifier: it enumerates fusion
// candidate pairs per flavour (11/12/1L) from Structure's classification
// buckets, and computes per-cluster fission propensity together with the
// cumulative-weight scan that locates the edge boundary a fission event
// fires at.
package classify

import (
	"github.com/vlaran/mitonet/segment"
	"github.com/vlaran/mitonet/structure"
)

// minLoopLength is the shortest bulk cut distance from a segment's own
// tip that fuse11/fuse12 will consider when the two participants are the
// same segment — below it the two resulting tips would be separated by
// fewer edges than a viable loop can have.
const minLoopLength = 2

// Pair names a fusion participant: segment Seg, and either an end (1 or
// 2) or a bulk cut position, depending on which candidate list it came
// from.
type Pair struct {
	Seg int
	Idx int
}

// FusionCandidates holds parallel U/V participant lists for the 11 and 12
// fusion flavours, where both participants are tip-or-bulk Pairs.
type FusionCandidates struct {
	U []Pair
	V []Pair
}

func (c *FusionCandidates) add(u, v Pair) {
	c.U = append(c.U, u)
	c.V = append(c.V, v)
}

// Size reports the number of candidate pairs.
func (c *FusionCandidates) Size() int { return len(c.U) }

// LoopCandidates holds participant lists for the 1L flavour: U is the
// non-looped tip, V is the looped segment's index (its connecting end is
// always 1 by convention).
type LoopCandidates struct {
	U []Pair
	V []int
}

// Size reports the number of candidate pairs.
func (c *LoopCandidates) Size() int { return len(c.U) }

func (c *LoopCandidates) add(u Pair, v int) {
	c.U = append(c.U, u)
	c.V = append(c.V, v)
}

var bothEnds = [2]segment.End{segment.End1, segment.End2}

// Fusion11 enumerates every tip-to-tip candidate pair: a segment's own
// opposite tip (when long enough to form a viable loop), every pair of
// distinct free-free (11) segment tips, every free-free tip against every
// free end of a one-free-end (13) segment, and every pair of distinct 13
// free ends.
//
// The 13-to-13-via-11 inner loop intentionally adds each 11-against-13
// pair twice, mirroring the enumerator this is grounded on; it is a
// harmless duplicate weighting, not a bug, and is preserved for fidelity.
func Fusion11(st *structure.Structure) *FusionCandidates {
	c := &FusionCandidates{}

	n11 := len(st.Mt11)
	for i1 := 0; i1 < n11; i1++ {
		w1 := st.Mt11[i1]
		if st.Mt[w1].Length() >= minLoopLength {
			c.add(Pair{w1, int(segment.End1)}, Pair{w1, int(segment.End2)})
		}

		for _, e1 := range bothEnds {
			for i2 := i1 + 1; i2 < n11; i2++ {
				for _, e2 := range bothEnds {
					c.add(Pair{w1, int(e1)}, Pair{st.Mt11[i2], int(e2)})
				}
			}
			for _, we2 := range st.Mt13 {
				c.add(Pair{w1, int(e1)}, Pair{we2.Seg, int(we2.FreeEnd)})
			}
			for _, we2 := range st.Mt13 {
				c.add(Pair{w1, int(e1)}, Pair{we2.Seg, int(we2.FreeEnd)})
			}
		}
	}

	n13 := len(st.Mt13)
	for i1 := 0; i1 < n13; i1++ {
		for i2 := i1 + 1; i2 < n13; i2++ {
			c.add(Pair{st.Mt13[i1].Seg, int(st.Mt13[i1].FreeEnd)}, Pair{st.Mt13[i2].Seg, int(st.Mt13[i2].FreeEnd)})
		}
	}

	return c
}

// Fusion12 enumerates every tip-to-bulk candidate: every free tip (from
// the 11 and 13 buckets) against every interior cut position of every
// segment in the 11, 13, 22 and 33 buckets. When the tip and the bulk
// segment are the same 11 segment, positions closer to the tip's own end
// than minLoopLength are excluded (the resulting loop would be too
// short), and that same-segment 11 case is added twice, mirroring the
// enumerator this is grounded on.
func Fusion12(st *structure.Structure) *FusionCandidates {
	c := &FusionCandidates{}

	bulkTargets := func(we1 Pair, w2 int, skipSelf bool) {
		length := st.Mt[w2].Length()
		for a := 1; a < length; a++ {
			if skipSelf && we1.Seg == w2 {
				e1 := segment.End(we1.Idx)
				tooCloseToEnd1 := e1 == segment.End1 && a < minLoopLength
				tooCloseToEnd2 := e1 == segment.End2 && length-a < minLoopLength
				if tooCloseToEnd1 || tooCloseToEnd2 {
					continue
				}
			}
			c.add(we1, Pair{w2, a})
		}
	}

	for _, w1 := range st.Mt11 {
		for _, e1 := range bothEnds {
			we1 := Pair{w1, int(e1)}
			for _, w2 := range st.Mt11 {
				bulkTargets(we1, w2, true)
				bulkTargets(we1, w2, true)
			}
			for _, we2 := range st.Mt13 {
				bulkTargets(we1, we2.Seg, false)
			}
			for _, w2 := range st.Mt33 {
				bulkTargets(we1, w2, false)
			}
			for _, w2 := range st.Mt22 {
				bulkTargets(we1, w2, false)
			}
		}
	}

	for _, we1raw := range st.Mt13 {
		we1 := Pair{we1raw.Seg, int(we1raw.FreeEnd)}
		for _, w2 := range st.Mt11 {
			bulkTargets(we1, w2, false)
		}
		for _, we2 := range st.Mt13 {
			bulkTargets(we1, we2.Seg, true)
		}
		for _, w2 := range st.Mt33 {
			bulkTargets(we1, w2, false)
		}
		for _, w2 := range st.Mt22 {
			bulkTargets(we1, w2, false)
		}
	}

	return c
}

// Fusion1L enumerates every tip (from the 11 and 13 buckets) against
// every separate cycle segment (the 22 bucket).
func Fusion1L(st *structure.Structure) *LoopCandidates {
	c := &LoopCandidates{}

	for _, w2 := range st.Mt22 {
		for _, w1 := range st.Mt11 {
			for _, e1 := range bothEnds {
				c.add(Pair{w1, int(e1)}, w2)
			}
		}
		for _, we1 := range st.Mt13 {
			c.add(Pair{we1.Seg, int(we1.FreeEnd)}, w2)
		}
	}

	return c
}

// FissionPropensityForCluster recomputes the end and inter-edge fission
// weights (via Segment.SetEndFin/SetBulkFin) of every segment in cluster ic
// alone and returns its propensity. Used both by FissionPropensity's
// initial full scan and by a reaction's incremental per-cluster update
// after a single cluster has changed.
func FissionPropensityForCluster(st *structure.Structure, ic int) uint64 {
	var sum uint64
	for w := range st.Clmt[ic] {
		s := st.Mt[w]
		sum += s.SetEndFin(segment.End1) + s.SetEndFin(segment.End2)
		for a := 0; a < s.Length()-1; a++ {
			s.SetBulkFin(a)
			sum += 2
		}
	}

	return sum
}

// FissionPropensity rebuilds the fission weights of every live edge and
// returns the resulting propensity per cluster, indexed by cluster id,
// alongside their sum. The weights it sets are consumed by
// FindFissionNode.
func FissionPropensity(st *structure.Structure) ([]uint64, uint64) {
	pr := make([]uint64, st.ClNum)
	var total uint64

	for ic := 0; ic < st.ClNum; ic++ {
		pr[ic] = FissionPropensityForCluster(st, ic)
		total += pr[ic]
	}

	return pr, total
}

// FindFissionNode scans live segments in index order, accumulating their
// fission weights, and returns the (segment, position) boundary at which
// the k-th weighted unit falls (k in [1, total] from FissionPropensity).
// ok is false if k exceeds the accumulated total, which signals a
// programming error in the caller's sampling.
func FindFissionNode(st *structure.Structure, k uint64) (w, a int, ok bool) {
	var ksum uint64
	for w = 1; w <= st.MtNum; w++ {
		g := st.Mt[w].G
		a = 0
		ksum += g[a].Fin[0]
		if k <= ksum {
			return w, a, true
		}
		for a < len(g)-1 {
			ksum += g[a].Fin[1]
			a++
			ksum += g[a].Fin[0]
			if k <= ksum {
				return w, a, true
			}
		}
		ksum += g[len(g)-1].Fin[1]
		if k <= ksum {
			a++
			return w, a, true
		}
	}

	return 0, 0, false
}
