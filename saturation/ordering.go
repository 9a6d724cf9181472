// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

package saturation

import "github.com/irifrance/saturn/kernel"

// Comparison is the result of comparing two terms under an Ordering.
type Comparison int

const (
	Incomparable Comparison = iota
	Equal
	Less
	Greater
)

// Ordering compares two terms, used to orient equalities for
// superposition/demodulation indexing (spec §4.6 "superposition ...
// ordered by a pluggable Ordering"). Implementations must be a
// simplification ordering: t > s implies tθ > sθ is not required to
// hold in general, but must hold for the ground instances the loop
// actually builds.
type Ordering interface {
	Compare(a *kernel.Arena, lhs, rhs kernel.TermID) Comparison
}

// SimplifiedKBO is a simplified Knuth-Bendix ordering keyed on a
// per-symbol weight table plus a fixed precedence (Design Notes §9:
// "singletons ... model as an explicit environment value" rather than
// global state) — supplied at construction, never read from a package
// global.
type SimplifiedKBO struct {
	arena      *kernel.Arena
	precedence map[uint32]int // sym.Idx() -> precedence rank, higher wins ties
}

// NewSimplifiedKBO builds an ordering over arena. precedence maps a
// symbol's dense signature index to a precedence rank; symbols absent
// from precedence are treated as rank 0.
func NewSimplifiedKBO(a *kernel.Arena, precedence map[uint32]int) *SimplifiedKBO {
	if precedence == nil {
		precedence = make(map[uint32]int)
	}
	return &SimplifiedKBO{arena: a, precedence: precedence}
}

// Compare orders lhs and rhs by symbol-count weight first, breaking
// ties by precedence, then falls back to Incomparable for two distinct
// variables (variables never compare Greater/Less against anything but
// themselves under a simplification ordering).
func (o *SimplifiedKBO) Compare(a *kernel.Arena, lhs, rhs kernel.TermID) Comparison {
	if lhs == rhs {
		return Equal
	}
	if a.IsVar(lhs) || a.IsVar(rhs) {
		return Incomparable
	}
	wl, wr := a.SymbolCount(lhs), a.SymbolCount(rhs)
	if wl != wr {
		if wl > wr {
			return Greater
		}
		return Less
	}
	pl := o.precedence[uint32(a.Sym(lhs).Idx())]
	pr := o.precedence[uint32(a.Sym(rhs).Idx())]
	switch {
	case pl > pr:
		return Greater
	case pr > pl:
		return Less
	default:
		return Incomparable
	}
}
