// Package segment defines Segment, a maximal linear run of edges with up to
// two branching ends, each connected to at most two neighbouring segments
// (max node degree three, spec §3/§4.2).
package segment

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/vlaran/mitonet/edge"
)

// End identifies one of the two ends of a Segment. End 1 is the low-index
// side of G; End 2 is the high-index side.
type End int

const (
	// End1 is the low-index side of G.
	End1 End = 1
	// End2 is the high-index side of G.
	End2 End = 2
)

// Other returns the opposite end.
func (e End) Other() End {
	if e == End1 {
		return End2
	}

	return End1
}

// MaxDeg is the maximum node degree this package supports. A segment end
// with NN[e]==2 sits at a degree-3 node (itself plus two neighbours).
const MaxDeg = 3

// Segment is a linear run of edges with two ends, each carrying up to two
// neighbour records (segment index, end) so that neighbouring nodes never
// exceed degree three.
//
// NN, Neig and Neen are indexed by End (1 or 2); index 0 is unused so that
// the End constants can be used directly as array indices, matching the
// 1-based end convention of the system this package models (spec §9).
type Segment struct {
	G    []edge.Edge
	Cl   int
	NN   [3]int
	Neig [3][]int
	Neen [3][]int
}

// New builds an empty Segment with no edges and no neighbours in cluster cl.
func New(cl int) *Segment {
	return &Segment{Cl: cl}
}

// Length returns the number of edges in the segment.
//
// Complexity: O(1).
func (s *Segment) Length() int { return len(s.G) }

// End2a returns the position index of the boundary edge at end e:
// 0 if e==End1, Length()-1 if e==End2.
//
// Complexity: O(1).
func (s *Segment) End2a(e End) int {
	if e == End1 {
		return 0
	}

	return s.Length() - 1
}

// HasOneFreeEnd returns the free end (the one with no neighbour) when
// exactly one end carries a neighbour, else 0.
//
// Complexity: O(1).
func (s *Segment) HasOneFreeEnd() End {
	switch {
	case s.NN[End1] == 0 && s.NN[End2] > 0:
		return End1
	case s.NN[End2] == 0 && s.NN[End1] > 0:
		return End2
	default:
		return 0
	}
}

// SingleNeigIndex locates the (only) occupied neighbour slot at end e.
// Precondition: NN[e]==1; violation is a programming error and panics.
//
// Complexity: O(1).
func (s *Segment) SingleNeigIndex(e End) int {
	if s.NN[e] != 1 {
		panic(fmt.Sprintf("segment: SingleNeigIndex(%d) precondition violated: NN=%d", e, s.NN[e]))
	}

	return 0
}

// DoubleNeigIndexes locates the two occupied neighbour slots at end e.
// Precondition: NN[e]==2; violation is a programming error and panics.
//
// Complexity: O(1).
func (s *Segment) DoubleNeigIndexes(e End) [2]int {
	if s.NN[e] != 2 {
		panic(fmt.Sprintf("segment: DoubleNeigIndexes(%d) precondition violated: NN=%d", e, s.NN[e]))
	}

	return [2]int{0, 1}
}

// IsCycle reports whether the segment is the entire cluster closed onto
// itself: both ends have exactly one neighbour, and both neighbour records
// name the same segment index (which, for a segment with exactly one
// neighbour per end, can only be itself — spec §3 glossary "Cycle").
//
// Complexity: O(1).
func (s *Segment) IsCycle() bool {
	if s.NN[End1] != 1 || s.NN[End2] != 1 {
		return false
	}

	return s.Neig[End1][s.SingleNeigIndex(End1)] == s.Neig[End2][s.SingleNeigIndex(End2)]
}

// NumNodes returns this segment's contribution to the global count of
// nodes of the given degree (1, 2 or 3), per spec §4.2:
//
//   - deg 1: 0 if both ends are bound, 2 if both are free, 1 otherwise.
//   - deg 2: Length() if IsCycle(), else Length()-1.
//   - deg 3: 0/1/2 depending on how many ends have NN==2.
//
// Complexity: O(1).
func (s *Segment) NumNodes(deg int) int {
	switch deg {
	case 1:
		bound1 := s.NN[End1] > 0
		bound2 := s.NN[End2] > 0
		switch {
		case bound1 && bound2:
			return 0
		case !bound1 && !bound2:
			return 2
		default:
			return 1
		}
	case 2:
		if s.IsCycle() {
			return s.Length()
		}

		return s.Length() - 1
	case 3:
		count := 0
		if s.NN[End1] == 2 {
			count++
		}
		if s.NN[End2] == 2 {
			count++
		}

		return count
	default:
		panic(fmt.Sprintf("segment: NumNodes: unsupported degree %d", deg))
	}
}

// SetGCl renumbers every edge's Cl and IndCl so that the segment's edges
// occupy [base, base+Length()) in newcl. Returns base+Length().
//
// Complexity: O(Length()).
func (s *Segment) SetGCl(newcl int, base uint64) uint64 {
	for i := range s.G {
		s.G[i].Cl = newcl
		s.G[i].IndCl = base + uint64(i)
	}

	return base + uint64(len(s.G))
}

// SetCl is SetGCl plus setting the segment's own Cl.
//
// Complexity: O(Length()).
func (s *Segment) SetCl(newcl int, base uint64) uint64 {
	next := s.SetGCl(newcl, base)
	s.Cl = newcl

	return next
}

// SetEndFin sets the end-e fission weight to 1 iff that end is bound, and
// returns the new value.
//
// Complexity: O(1).
func (s *Segment) SetEndFin(e End) uint64 {
	v := uint64(0)
	if s.NN[e] > 0 {
		v = 1
	}
	if e == End1 {
		s.G[0].Fin[0] = v
	} else {
		s.G[len(s.G)-1].Fin[1] = v
	}

	return v
}

// SetBulkFin sets both sides of the inter-edge boundary between G[a] and
// G[a+1] to 1. Precondition: 0 <= a < Length()-1.
//
// Complexity: O(1).
func (s *Segment) SetBulkFin(a int) {
	s.G[a].Fin[1] = 1
	s.G[a+1].Fin[0] = 1
}

// ReflectG reverses G, reflects every edge, and swaps the end-1/end-2
// neighbour lists (and their NN counts).
//
// Complexity: O(Length() + NN[1] + NN[2]).
func (s *Segment) ReflectG() {
	for i, j := 0, len(s.G)-1; i < j; i, j = i+1, j-1 {
		s.G[i], s.G[j] = s.G[j], s.G[i]
	}
	for i := range s.G {
		s.G[i].Reflect()
	}
	s.NN[End1], s.NN[End2] = s.NN[End2], s.NN[End1]
	s.Neig[End1], s.Neig[End2] = s.Neig[End2], s.Neig[End1]
	s.Neen[End1], s.Neen[End2] = s.Neen[End2], s.Neen[End1]
}

// wireHeaderSize is the serialized size of (length, cluster index) as two
// uint64 words, matching spec §6's per-segment header.
const wireHeaderSize = 2 * 8

// Write emits the segment snapshot per spec §6:
//
//	length, cluster index,
//	NN[1], NN[1] pairs (neig,neen),
//	NN[2], NN[2] pairs (neig,neen),
//	Length() edges.
//
// Complexity: O(Length() + NN[1] + NN[2]).
func (s *Segment) Write(sink io.Writer) error {
	var hdr [wireHeaderSize]byte
	binary.LittleEndian.PutUint64(hdr[0:8], uint64(s.Length()))
	binary.LittleEndian.PutUint64(hdr[8:16], uint64(s.Cl))
	if _, err := sink.Write(hdr[:]); err != nil {
		return err
	}

	for _, e := range []End{End1, End2} {
		if err := writeUint64(sink, uint64(s.NN[e])); err != nil {
			return err
		}
		for i := 0; i < s.NN[e]; i++ {
			neig := s.Neig[e][i]
			if err := writeUint64(sink, uint64(neig)); err != nil {
				return err
			}
			if err := writeUint64(sink, uint64(s.Neen[e][i])); err != nil {
				return err
			}
		}
	}

	for i := range s.G {
		if err := s.G[i].Write(sink); err != nil {
			return err
		}
	}

	return nil
}

func writeUint64(sink io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := sink.Write(buf[:])

	return err
}
