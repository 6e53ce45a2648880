// Package driver implements the time-bounded Gillespie loop: it seeds an
// initial Structure from config, runs reaction.Set.Step until the time
// budget is exhausted or the network goes quiescent, periodically logs
// and snapshots, and writes a closing snapshot when the loop ends.
package driver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/vlaran/mitonet/edge"
	"github.com/vlaran/mitonet/internal/logging"
	"github.com/vlaran/mitonet/reaction"
	"github.com/vlaran/mitonet/rng"
	"github.com/vlaran/mitonet/segment"
	"github.com/vlaran/mitonet/simconfig"
	"github.com/vlaran/mitonet/snapshot"
	"github.com/vlaran/mitonet/structure"
)

// Summary reports the outcome of one run.
type Summary struct {
	Iterations  uint64
	FinalTime   float64
	EventCounts map[string]uint64
}

// Run executes one Gillespie run: it seeds a fresh network from cfg,
// drives it forward in simulated time using a source seeded from seed,
// streaming periodic snapshots to out, until the time budget elapses or
// no reaction has positive propensity. A closing snapshot is written to
// lastOut whenever the loop ends (time budget, quiescence, cancellation);
// a run that fails to seed its network or hits a contract violation
// returns without one.
//
// A *structure.ContractViolation panic is recovered here, logged, and
// returned as an error rather than left to crash the process, so the
// caller (the CLI) controls the process exit code. Any other panic,
// including the plain-string precondition panics of the transform and
// segment packages, is re-raised.
func Run(ctx context.Context, cfg *simconfig.Config, seed uint32, out, lastOut io.Writer) (summary *Summary, err error) {
	var st *structure.Structure
	defer func() {
		if r := recover(); r != nil {
			cv, ok := r.(*structure.ContractViolation)
			if !ok {
				panic(r)
			}
			segments, clusters := 0, 0
			if st != nil {
				segments, clusters = st.MtNum, st.ClNum
			}
			logging.LogContractViolation(cv, segments, clusters)
			err = cv
		}
	}()

	var genErr error
	st, genErr = seedStructure(cfg.MtMassIni, cfg.SegMassIni)
	if genErr != nil {
		return nil, genErr
	}

	src := rng.NewMathRand(seed)
	set := reaction.NewSet(
		reaction.Rates{Rate: cfg.RateFission, Active: cfg.UseFission},
		reaction.Rates{Rate: cfg.FusionRate11, Active: cfg.Use11Fusion},
		reaction.Rates{Rate: cfg.FusionRate12, Active: cfg.Use12Fusion},
		reaction.Rates{Rate: cfg.FusionRate1L, Active: cfg.Use1LFusion},
	)
	set.Init(st)

	sw := snapshot.NewWriter()
	counts := make(map[string]uint64, 4)

	var t float64
	var it uint64

loop:
	for t < cfg.TimeTotal {
		select {
		case <-ctx.Done():
			break loop
		default:
		}

		total := set.TotalScore()
		if total <= 0 {
			break
		}

		u2 := uniformOpen(src)
		tau := -math.Log(u2) / total
		if t+tau > cfg.TimeTotal {
			t = cfg.TimeTotal
			break
		}
		t += tau

		kind, stepErr := set.Step(st, src, src.Float64())
		if stepErr != nil {
			break
		}
		it++
		counts[kind.String()]++

		if int(it)%cfg.LogFrequency == 0 {
			slog.Info("iteration", "it", it, "time", t, "segments", st.MtNum, "clusters", st.ClNum)
		}
		if int(it)%cfg.SaveFrequency == 0 {
			seq := it / uint64(cfg.SaveFrequency)
			if werr := sw.WriteFrame(out, st, t, seq, false); werr != nil {
				slog.Error("snapshot write failed", "err", werr)
			}
		}
	}

	if werr := sw.WriteFrame(lastOut, st, t, 0, true); werr != nil {
		return nil, fmt.Errorf("driver: writing final snapshot: %w", werr)
	}

	summary = &Summary{Iterations: it, FinalTime: t, EventCounts: counts}
	slog.Info("run complete", "iterations", it, "time", t, "segments", st.MtNum, "clusters", st.ClNum)

	return summary, nil
}

// uniformOpen draws a value in the open interval (0,1), resampling on
// the zero edge case so -log(u) never diverges.
func uniformOpen(src rng.Source) float64 {
	u := src.Float64()
	for u <= 0 {
		u = src.Float64()
	}

	return u
}

// seedStructure builds mtMassIni/segMassIni free, single-segment
// clusters, each of length segMassIni, with edge identifiers assigned a
// running global counter and cluster-local positions starting at 0.
func seedStructure(mtMassIni, segMassIni int) (*structure.Structure, error) {
	mtnum := mtMassIni / segMassIni
	if mtnum < 1 {
		return nil, fmt.Errorf("driver: mtmassini/segmassini must yield at least one segment, got %d/%d", mtMassIni, segMassIni)
	}

	st := structure.New()
	var ei uint64
	for m := 0; m < mtnum; m++ {
		s := segment.New(m)
		for a := 0; a < segMassIni; a++ {
			s.G = append(s.G, edge.New(ei, uint64(a), m))
			ei++
		}
		st.AddSegment(s)
	}
	st.ClNum = mtnum

	return st, nil
}
