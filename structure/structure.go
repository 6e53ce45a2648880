// Package structure maintains the segment collection, the cluster
// partition, the edge index tables, and the endpoint-degree classification
// buckets that the rest of the simulator reads from (spec §3, §4.3).
//
// Structure is the sole owner of all segments and, transitively, all edges.
// The transform package holds the shared rewrite primitives; the fission
// and fusion packages also write neighbour records and cluster indices of
// segments directly. Structure itself appends and pops segment slots,
// renumbers IndCl, and rebuilds derived tables from the current Mt array.
package structure

import "github.com/vlaran/mitonet/segment"

// Mt13Entry records a segment classified into the "13" bucket (one free
// end, the other end bound) together with which end is free.
type Mt13Entry struct {
	Seg     int
	FreeEnd segment.End
}

// Structure holds the global tables described in spec §3.
//
// Mt is 1-based: Mt[0] is reserved and always nil; live segments occupy
// Mt[1..MtNum]. This mirrors the source's "slot 0 is empty" convention
// (spec §9) so that a 0-valued segment index in a neighbour record always
// means "no segment" and can never alias a live slot.
type Structure struct {
	Mt    []*segment.Segment
	MtNum int
	ClNum int

	// Glm maps a live edge's Ind to the 1-based slot of the segment that
	// currently owns it. Gla maps the same Ind to its position inside that
	// segment's G slice.
	Glm map[uint64]int
	Gla map[uint64]int

	// Clmt[c] is the set of segment slots belonging to cluster c.
	// Cls[c] is the edge count of cluster c.
	Clmt map[int]map[int]struct{}
	Cls  map[int]int

	// Classification buckets, global and per-cluster, populated by
	// PopulateClusterVectors from the current Mt array.
	Mt11  []int
	Mt22  []int
	Mt33  []int
	Mt13  []Mt13Entry
	Mtc11 map[int][]int
	Mtc22 map[int][]int
	Mtc33 map[int][]int
	Mtc13 map[int][]Mt13Entry

	// NN holds global node counts: NN[0] = degree-1 nodes, NN[1] =
	// degree-2 nodes, NN[2] = degree-3 nodes (spec §3 "Global tables").
	NN [3]int
}

// New returns an empty Structure with the reserved slot-0 sentinel in
// place.
func New() *Structure {
	return &Structure{
		Mt:    []*segment.Segment{nil},
		Glm:   make(map[uint64]int),
		Gla:   make(map[uint64]int),
		Clmt:  make(map[int]map[int]struct{}),
		Cls:   make(map[int]int),
		Mtc11: make(map[int][]int),
		Mtc22: make(map[int][]int),
		Mtc33: make(map[int][]int),
		Mtc13: make(map[int][]Mt13Entry),
	}
}

// MtMass returns the total edge count across all live segments, i.e.
// Σ_s length(s). Spec §3 requires this to equal Σ_c Cls[c].
//
// Complexity: O(MtNum).
func (st *Structure) MtMass() uint64 {
	var total uint64
	for i := 1; i <= st.MtNum; i++ {
		total += uint64(st.Mt[i].Length())
	}

	return total
}

// AddSegment appends s as a new live segment and returns its 1-based slot.
//
// Complexity: O(1) amortized.
func (st *Structure) AddSegment(s *segment.Segment) int {
	st.Mt = append(st.Mt, s)
	st.MtNum++

	return st.MtNum
}

// PopSegment shrinks the live segment array by one slot, assuming the
// caller has already relocated (via rename) whatever used to live in the
// last slot. Precondition: the last slot is no longer referenced.
//
// Complexity: O(1).
func (st *Structure) PopSegment() {
	st.Mt = st.Mt[:st.MtNum]
	st.MtNum--
}
