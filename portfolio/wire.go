// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

package portfolio

import (
	"fmt"
	"io"

	"github.com/irifrance/saturn/saturation"
)

// varuintMask masks the 7 data bits of one varuint byte, directly
// adapted from crisp's vu32io (_examples/go-air-gini/crisp/vu32io.go):
// a little-endian base-128 varint, one continuation bit per byte.
const varuintMask = uint32((1 << 7) - 1)

// Writer buffers uint32 values as crisp-style varuints onto an
// underlying io.Writer, for the wire framing a subprocess worker uses
// to report a saturation.Statistics back to its parent (§5's
// process-wall case: "a worker is a separate OS process reached over a
// pipe or TCP connection").
type Writer struct {
	w   io.Writer
	buf []byte
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer { return &Writer{w: w, buf: make([]byte, 0, 64)} }

func (vw *Writer) putVaruint(d uint32) {
	for {
		b := byte(d & varuintMask)
		d >>= 7
		if d > 0 {
			vw.buf = append(vw.buf, b|(1<<7))
			continue
		}
		vw.buf = append(vw.buf, b)
		return
	}
}

// Flush writes any buffered bytes to the underlying Writer.
func (vw *Writer) Flush() error {
	if len(vw.buf) == 0 {
		return nil
	}
	_, err := vw.w.Write(vw.buf)
	vw.buf = vw.buf[:0]
	return err
}

// Reader decodes crisp-style varuints from an underlying io.Reader.
type Reader struct {
	r   io.Reader
	buf []byte
	pos int
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader { return &Reader{r: r} }

func (vr *Reader) readByte() (byte, error) {
	if vr.pos >= len(vr.buf) {
		tmp := make([]byte, 256)
		n, err := vr.r.Read(tmp)
		if n == 0 && err != nil {
			return 0, err
		}
		vr.buf = tmp[:n]
		vr.pos = 0
	}
	b := vr.buf[vr.pos]
	vr.pos++
	return b, nil
}

func (vr *Reader) getVaruint() (uint32, error) {
	var res, shift uint32
	for i := 0; i < 5; i++ {
		b, err := vr.readByte()
		if err != nil {
			return 0, err
		}
		res |= (uint32(b) & varuintMask) << shift
		if b&(1<<7) == 0 {
			return res, nil
		}
		shift += 7
	}
	return 0, fmt.Errorf("portfolio: varuint exceeds 5 bytes")
}

// EncodeOptions writes the given-clause loop configuration that
// identifies which strategy a subprocess worker should run, the "in"
// half of §5's "problem in, Statistics out" framing. The clause set
// itself never crosses the wire: frontend supplies no parser (per
// Non-goals), so a remote worker is always started already holding its
// own Environment/Arena, built by whatever process embeds it, and only
// needs the strategy parameters to run it under.
func EncodeOptions(w io.Writer, opts *saturation.Options) error {
	vw := NewWriter(w)
	vw.putVaruint(uint32(opts.SaturationAlgorithm))
	vw.putVaruint(uint32(opts.AgeWeightRatio[0]))
	vw.putVaruint(uint32(opts.AgeWeightRatio[1]))
	vw.putVaruint(uint32(opts.AgeLimit))
	vw.putVaruint(uint32(opts.WeightLimit))
	vw.putVaruint(uint32(opts.LrsCheckEveryN))
	var flags uint32
	for i, b := range []bool{
		opts.DemodulationRedundancyCheck,
		opts.ForwardSubsumption,
		opts.ForwardDemodulation,
		opts.BackwardSubsumption,
		opts.BackwardDemodulation,
		opts.Condensation,
		opts.LrsFirstTimeCheck,
		opts.LrsWeightLimitOnly,
	} {
		if b {
			flags |= 1 << uint(i)
		}
	}
	vw.putVaruint(flags)
	return vw.Flush()
}

// DecodeOptions reads back an Options encoded by EncodeOptions. String
// fields (Selection, LiteralComparisonMode, Ordering, the split-queue
// configuration) are left at their zero values: they select amongst a
// fixed, process-compiled-in set of strategies, so a worker process
// picks them from its own defaults rather than receiving free-form
// strings over the wire.
func DecodeOptions(r io.Reader) (*saturation.Options, error) {
	vr := NewReader(r)
	alg, err := vr.getVaruint()
	if err != nil {
		return nil, err
	}
	ratioAge, err := vr.getVaruint()
	if err != nil {
		return nil, err
	}
	ratioWeight, err := vr.getVaruint()
	if err != nil {
		return nil, err
	}
	ageLimit, err := vr.getVaruint()
	if err != nil {
		return nil, err
	}
	weightLimit, err := vr.getVaruint()
	if err != nil {
		return nil, err
	}
	checkEveryN, err := vr.getVaruint()
	if err != nil {
		return nil, err
	}
	flags, err := vr.getVaruint()
	if err != nil {
		return nil, err
	}
	bit := func(i uint) bool { return flags&(1<<i) != 0 }
	return &saturation.Options{
		SaturationAlgorithm:         saturation.Algorithm(alg),
		AgeWeightRatio:              [2]int{int(ratioAge), int(ratioWeight)},
		AgeLimit:                    ageLimit,
		WeightLimit:                 weightLimit,
		LrsCheckEveryN:              int(checkEveryN),
		DemodulationRedundancyCheck: bit(0),
		ForwardSubsumption:          bit(1),
		ForwardDemodulation:         bit(2),
		BackwardSubsumption:         bit(3),
		BackwardDemodulation:        bit(4),
		Condensation:                bit(5),
		LrsFirstTimeCheck:           bit(6),
		LrsWeightLimitOnly:          bit(7),
	}, nil
}

// EncodeStatistics writes stats to w as a fixed sequence of varuints:
// terminationReason, generated, active, passive, discarded, iterations.
// The proof graph (Statistics.Refutation and its Inference chain) is
// process-local and is not shipped over the wire; a remote worker that
// found a refutation reports only the reason, leaving proof replay to
// whichever process wants it, which is always the one that ran the
// Loop.
func EncodeStatistics(w io.Writer, stats *saturation.Statistics) error {
	vw := NewWriter(w)
	vw.putVaruint(uint32(stats.TerminationReason))
	vw.putVaruint(uint32(stats.Generated))
	vw.putVaruint(uint32(stats.Active))
	vw.putVaruint(uint32(stats.Passive))
	vw.putVaruint(uint32(stats.Discarded))
	vw.putVaruint(uint32(stats.Iterations))
	return vw.Flush()
}

// DecodeStatistics reads a Statistics encoded by EncodeStatistics.
// Refutation is left at its zero value; see EncodeStatistics.
func DecodeStatistics(r io.Reader) (*saturation.Statistics, error) {
	vr := NewReader(r)
	reason, err := vr.getVaruint()
	if err != nil {
		return nil, err
	}
	generated, err := vr.getVaruint()
	if err != nil {
		return nil, err
	}
	active, err := vr.getVaruint()
	if err != nil {
		return nil, err
	}
	passive, err := vr.getVaruint()
	if err != nil {
		return nil, err
	}
	discarded, err := vr.getVaruint()
	if err != nil {
		return nil, err
	}
	iterations, err := vr.getVaruint()
	if err != nil {
		return nil, err
	}
	return &saturation.Statistics{
		TerminationReason: saturation.TerminationReason(reason),
		Generated:         int(generated),
		Active:            int(active),
		Passive:           int(passive),
		Discarded:         int(discarded),
		Iterations:        int(iterations),
	}, nil
}
