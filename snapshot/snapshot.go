// Package snapshot serialises a Structure to the binary stream format the
// driver periodically appends to, and to the separate "last" file written
// once at the end of a run.
package snapshot

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/vlaran/mitonet/segment"
	"github.com/vlaran/mitonet/structure"
)

// Writer tracks the running maxima (segment count, per-segment nn[1] and
// nn[2]) that every frame's trailing triple reports, mirroring the
// original stream's static counters that persist for the lifetime of one
// run's output file.
type Writer struct {
	mtNumMax uint64
	nn1Max   uint64
	nn2Max   uint64
}

// NewWriter returns a Writer with its running maxima reset to zero, for
// the start of a fresh run.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteFrame appends one snapshot record to sink:
//
//	simulated time, segment count N, N segments (segment.Segment.Write),
//	the trailing (mtnummax, nn1max, nn2max) triple, then seq.
//
// last marks the run-closing snapshot: seq is always written as 0 and the
// running maxima are reported but not updated from this frame's content,
// matching the stream the final snapshot file holds exactly one of.
func (sw *Writer) WriteFrame(sink io.Writer, st *structure.Structure, t float64, seq uint64, last bool) error {
	if err := writeFloat64(sink, t); err != nil {
		return err
	}
	if err := writeUint64(sink, uint64(st.MtNum)); err != nil {
		return err
	}

	if !last && uint64(st.MtNum) > sw.mtNumMax {
		sw.mtNumMax = uint64(st.MtNum)
	}

	for q := 1; q <= st.MtNum; q++ {
		s := st.Mt[q]
		if err := s.Write(sink); err != nil {
			return err
		}
		if !last {
			if nn1 := uint64(s.NN[segment.End1]); nn1 > sw.nn1Max {
				sw.nn1Max = nn1
			}
			if nn2 := uint64(s.NN[segment.End2]); nn2 > sw.nn2Max {
				sw.nn2Max = nn2
			}
		}
	}

	if err := writeUint64(sink, sw.mtNumMax); err != nil {
		return err
	}
	if err := writeUint64(sink, sw.nn1Max); err != nil {
		return err
	}
	if err := writeUint64(sink, sw.nn2Max); err != nil {
		return err
	}

	if last {
		seq = 0
	}

	return writeUint64(sink, seq)
}

func writeUint64(sink io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := sink.Write(buf[:])

	return err
}

func writeFloat64(sink io.Writer, v float64) error {
	return writeUint64(sink, math.Float64bits(v))
}
