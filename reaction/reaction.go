// Package reaction implements the Gillespie reaction set: the four
// reaction kinds (fission, fusion11, fusion12, fusion1L), each wrapping
// the classify package's candidate/propensity scan behind a cached score
// and event count, plus Set, which wires the cross-reaction dependency
// graph and performs one direct-method Gillespie step.
package reaction

import (
	"errors"
	"fmt"

	"github.com/vlaran/mitonet/classify"
	"github.com/vlaran/mitonet/fission"
	"github.com/vlaran/mitonet/fusion"
	"github.com/vlaran/mitonet/rng"
	"github.com/vlaran/mitonet/segment"
	"github.com/vlaran/mitonet/structure"
)

// Kind identifies one of the four reaction flavours.
type Kind int

const (
	Fission Kind = iota
	Fusion11
	Fusion12
	Fusion1L
)

// String names the reaction, matching the short tags used in logs.
func (k Kind) String() string {
	switch k {
	case Fission:
		return "fiss"
	case Fusion11:
		return "fu11"
	case Fusion12:
		return "fu12"
	case Fusion1L:
		return "fu1L"
	default:
		return "unknown"
	}
}

// Reaction is one Gillespie reaction slot: a rate constant and Active
// flag fixed at construction, plus the cached propensity-derived score
// and candidate state that SetProp/UpdateProp populate and Fire samples
// from.
type Reaction struct {
	Kind       Kind
	Rate       float64
	Active     bool
	Score      float64
	EventCount uint64

	fissPr    []uint64
	fissTotal uint64

	cand11 *classify.FusionCandidates
	cand12 *classify.FusionCandidates
	cand1L *classify.LoopCandidates
}

func newReaction(kind Kind, rate float64, active bool) *Reaction {
	return &Reaction{Kind: kind, Rate: rate, Active: active}
}

// SetProp rebuilds this reaction's candidate/propensity state from the
// current structure, discarding whatever it held before.
func (r *Reaction) SetProp(st *structure.Structure) {
	switch r.Kind {
	case Fission:
		r.fissPr, r.fissTotal = classify.FissionPropensity(st)
	case Fusion11:
		r.cand11 = classify.Fusion11(st)
	case Fusion12:
		r.cand12 = classify.Fusion12(st)
	case Fusion1L:
		r.cand1L = classify.Fusion1L(st)
	}
}

// UpdateProp refreshes this reaction's state after a reaction fired and
// touched clusters c0 and c1 (c1 may equal c0 when only one cluster
// changed). Fission recomputes only the touched clusters, mirroring the
// network's per-cluster fission table; an index at or above ClNum (a
// cluster a fusion merged away) is skipped. The three fusion flavours always
// rebuild in full, since their candidate enumeration scans Structure's
// global classification buckets with no per-cluster filter to narrow by.
func (r *Reaction) UpdateProp(st *structure.Structure, c0, c1 int) {
	if r.Kind != Fission {
		r.SetProp(st)
		return
	}

	if len(r.fissPr) != st.ClNum {
		grown := make([]uint64, st.ClNum)
		copy(grown, r.fissPr)
		r.fissPr = grown
	}

	if c0 < st.ClNum {
		r.fissPr[c0] = classify.FissionPropensityForCluster(st, c0)
	}
	if c1 != c0 && c1 < st.ClNum {
		r.fissPr[c1] = classify.FissionPropensityForCluster(st, c1)
	}

	var total uint64
	for _, v := range r.fissPr {
		total += v
	}
	r.fissTotal = total
}

// PropTotal reports the raw propensity Score is derived from: a
// weighted edge-boundary count for fission, a candidate-pair count for
// the fusion flavours.
func (r *Reaction) PropTotal() uint64 {
	switch r.Kind {
	case Fission:
		return r.fissTotal
	case Fusion11:
		return uint64(r.cand11.Size())
	case Fusion12:
		return uint64(r.cand12.Size())
	case Fusion1L:
		return uint64(r.cand1L.Size())
	default:
		return 0
	}
}

// SetScore recomputes Score = Rate * PropTotal().
func (r *Reaction) SetScore() {
	r.Score = r.Rate * float64(r.PropTotal())
}

// Fire samples a uniformly random candidate from this reaction's current
// state using src, applies the corresponding rewrite, increments
// EventCount, and returns the pair of cluster indices the rewrite
// touched, for the caller to pass on to UpdateProp.
//
// Precondition: PropTotal() > 0; violation is a programming error (the
// selector must never fire a reaction with zero score) and panics.
func (r *Reaction) Fire(st *structure.Structure, src rng.Source) [2]int {
	total := r.PropTotal()
	if total == 0 {
		panic(&structure.ContractViolation{Op: "Reaction.Fire", Msg: fmt.Sprintf("%s fired with zero propensity", r.Kind)})
	}

	r.EventCount++

	switch r.Kind {
	case Fission:
		k := sampleIndex(src, total) + 1
		w, a, ok := classify.FindFissionNode(st, k)
		if !ok {
			panic(&structure.ContractViolation{Op: "Reaction.Fire", Msg: fmt.Sprintf("fission sample k=%d exceeded total %d", k, total)})
		}

		return fission.Fiss(st, w, a)

	case Fusion11:
		i := sampleIndex(src, total)
		u, v := r.cand11.U[i], r.cand11.V[i]

		return fusion.Fuse11(st, u.Seg, segment.End(u.Idx), v.Seg, segment.End(v.Idx))

	case Fusion12:
		i := sampleIndex(src, total)
		u, v := r.cand12.U[i], r.cand12.V[i]

		return fusion.Fuse12(st, u.Seg, segment.End(u.Idx), v.Seg, v.Idx)

	case Fusion1L:
		i := sampleIndex(src, total)
		u, v := r.cand1L.U[i], r.cand1L.V[i]

		return fusion.Fuse1L(st, u.Seg, segment.End(u.Idx), v)

	default:
		panic(&structure.ContractViolation{Op: "Reaction.Fire", Msg: fmt.Sprintf("unknown reaction kind %d", r.Kind)})
	}
}

// sampleIndex draws a uniform integer in [0, n) from src.
func sampleIndex(src rng.Source, n uint64) uint64 {
	u := sampleUnit(src)

	idx := uint64(u * float64(n))
	if idx >= n {
		idx = n - 1
	}

	return idx
}

// sampleUnit draws a value in the half-open [0,1), resampling on the
// (stdlib-unreachable, but not contractually guaranteed by the Source
// interface) edge case of a source returning exactly 1.
func sampleUnit(src rng.Source) float64 {
	u := src.Float64()
	for u >= 1 {
		u = src.Float64()
	}

	return u
}

// kindDependents lists the reaction kinds that need refreshing after a
// reaction of kind k fires. Every kind, fission included, is followed by a
// refresh of all three fusion flavours and of fission, since any rewrite can
// create or remove tips, bulk positions and separate cycles.
func kindDependents(k Kind) []Kind {
	return []Kind{Fusion11, Fusion12, Fusion1L, Fission}
}

// errNoPropensity is returned by Step when every active reaction has a
// zero score, meaning the simulation has reached a quiescent network.
var errNoPropensity = errors.New("reaction: no active reaction has positive propensity")

// Set owns the four reaction slots and runs one Gillespie direct-method
// step over them.
type Set struct {
	byKind map[Kind]*Reaction
	order  []Kind
}

// Rates names one reaction's rate constant and activity flag, used by
// NewSet.
type Rates struct {
	Rate   float64
	Active bool
}

// NewSet builds a reaction set with one slot per kind.
func NewSet(fission, fusion11, fusion12, fusion1L Rates) *Set {
	order := []Kind{Fission, Fusion11, Fusion12, Fusion1L}
	rates := map[Kind]Rates{
		Fission:  fission,
		Fusion11: fusion11,
		Fusion12: fusion12,
		Fusion1L: fusion1L,
	}

	s := &Set{byKind: make(map[Kind]*Reaction, len(order)), order: order}
	for _, k := range order {
		r := rates[k]
		s.byKind[k] = newReaction(k, r.Rate, r.Active)
	}

	return s
}

// Get returns the reaction slot for kind k.
func (s *Set) Get(k Kind) *Reaction { return s.byKind[k] }

// Reactions returns every reaction slot in a fixed kind order, for
// inspection and logging.
func (s *Set) Reactions() []*Reaction {
	rs := make([]*Reaction, len(s.order))
	for i, k := range s.order {
		rs[i] = s.byKind[k]
	}

	return rs
}

// Init populates every active reaction's propensity and score from the
// current structure. Call once before the first Step.
func (s *Set) Init(st *structure.Structure) {
	st.BasicUpdate()
	if err := st.PopulateClusterVectors(); err != nil {
		panic(err)
	}

	for _, k := range s.order {
		r := s.byKind[k]
		if !r.Active {
			continue
		}
		r.SetProp(st)
		r.SetScore()
	}
}

// TotalScore sums the score of every active reaction, i.e. the Gillespie
// propensity sum A.
func (s *Set) TotalScore() float64 {
	var total float64
	for _, k := range s.order {
		r := s.byKind[k]
		if r.Active {
			total += r.Score
		}
	}

	return total
}

// Step picks one active reaction weighted by score using u1 (expected in
// [0,1)), fires it, and refreshes every dependent reaction's propensity
// and score. When u1 lands at or past the cumulative score, it is rejected
// and a fresh value is drawn from src. Returns the fired kind.
func (s *Set) Step(st *structure.Structure, src rng.Source, u1 float64) (Kind, error) {
	total := s.TotalScore()
	if total <= 0 {
		return 0, errNoPropensity
	}

	var chosen *Reaction
	for chosen == nil {
		target := u1 * total
		var cum float64
		for _, k := range s.order {
			r := s.byKind[k]
			if !r.Active || r.Score <= 0 {
				continue
			}
			cum += r.Score
			if target < cum {
				chosen = r
				break
			}
		}
		if chosen == nil {
			u1 = sampleUnit(src)
		}
	}

	cc := chosen.Fire(st, src)

	st.BasicUpdate()
	if err := st.PopulateClusterVectors(); err != nil {
		panic(err)
	}

	for _, dk := range kindDependents(chosen.Kind) {
		dep := s.byKind[dk]
		if !dep.Active {
			continue
		}
		dep.UpdateProp(st, cc[0], cc[1])
		dep.SetScore()
	}

	return chosen.Kind, nil
}
