// Package edge defines the atomic unit of network length: Edge.
//
// An Edge carries a network-wide stable identifier, a cluster-local
// position, the index of the cluster it currently belongs to, and two
// fission weights (one per end). Fission weights are kept as uint64
// counters rather than bool so that they can be summed directly into
// cluster-level fission propensities without branching (spec §4.1).
package edge

import (
	"encoding/binary"
	"io"
)

// Edge is one unit of segment length.
//
// Ind is stable for the lifetime of the edge and unique across all live
// edges in the network. IndCl is the edge's position within its owning
// cluster's dense [0,size) numbering. Cl mirrors the cl of the owning
// segment. Fin[0]/Fin[1] are the end-1/end-2 fission weights, each 0 or 1.
type Edge struct {
	Ind   uint64
	IndCl uint64
	Cl    int
	Fin   [2]uint64
}

// New constructs an Edge from (ind, indcl, cl) with both fission weights
// cleared.
//
// Complexity: O(1).
func New(ind, indcl uint64, cl int) Edge {
	return Edge{Ind: ind, IndCl: indcl, Cl: cl}
}

// Reflect swaps the two fission weights and leaves every other field
// untouched. Used when a Segment reverses its edge order.
//
// Complexity: O(1).
func (e *Edge) Reflect() {
	e.Fin[0], e.Fin[1] = e.Fin[1], e.Fin[0]
}

// wireSize is the serialized byte length of one Edge record:
// (ind, indcl, cl, fin[0], fin[1]) each as a uint64.
const wireSize = 5 * 8

// Write serializes the edge to sink in the wire layout fixed by spec §6:
// (ind, indcl, cl, fin[0], fin[1]).
//
// Complexity: O(1). The only failure mode is an I/O error from sink.
func (e *Edge) Write(sink io.Writer) error {
	var buf [wireSize]byte
	binary.LittleEndian.PutUint64(buf[0:8], e.Ind)
	binary.LittleEndian.PutUint64(buf[8:16], e.IndCl)
	binary.LittleEndian.PutUint64(buf[16:24], uint64(e.Cl))
	binary.LittleEndian.PutUint64(buf[24:32], e.Fin[0])
	binary.LittleEndian.PutUint64(buf[32:40], e.Fin[1])
	_, err := sink.Write(buf[:])

	return err
}
