// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

package index

import "github.com/irifrance/saturn/kernel"

// nonVarSubterms appends every non-variable subterm of t (t included)
// to dst, depth first.
func nonVarSubterms(a *kernel.Arena, t kernel.TermID, dst []kernel.TermID) []kernel.TermID {
	if a.IsVar(t) {
		return dst
	}
	dst = append(dst, t)
	for _, arg := range a.Args(t) {
		dst = nonVarSubterms(a, arg, dst)
	}
	return dst
}

// orientedSides returns the term(s) usable as a superposition/
// demodulation LHS for an equality literal l: the heavier side if the
// simplified symbol-count ordering can orient it, or both sides for an
// equality this ordering leaves unordered (spec §4.4's "or both for
// unordered equalities"). Non-equality literals contribute nothing.
func orientedSides(a *kernel.Arena, l kernel.LitID) []kernel.TermID {
	if !a.IsEquality(l) {
		return nil
	}
	args := a.LitArgs(l)
	lhs, rhs := args[0], args[1]
	if lhs == rhs {
		return nil
	}
	wl, wr := a.SymbolCount(lhs), a.SymbolCount(rhs)
	switch {
	case wl > wr:
		return []kernel.TermID{lhs}
	case wr > wl:
		return []kernel.TermID{rhs}
	default:
		return []kernel.TermID{lhs, rhs}
	}
}

// SuperpositionFrom extracts rewritable non-variable subterms of every
// selected literal (spec §4.4 table, row "Superposition-from
// (backward)").
func SuperpositionFrom(a *kernel.Arena, c kernel.ClauseID) []Entry {
	var out []Entry
	for _, l := range a.SelectedLits(c) {
		for _, arg := range a.LitArgs(l) {
			for _, t := range nonVarSubterms(a, arg, nil) {
				out = append(out, Entry{Term: t, Lit: l, Clause: c})
			}
		}
	}
	return out
}

// SuperpositionInto extracts superposition LHSs of every selected
// literal (spec §4.4 table, row "Superposition-into (forward)").
func SuperpositionInto(a *kernel.Arena, c kernel.ClauseID) []Entry {
	var out []Entry
	for _, l := range a.SelectedLits(c) {
		for _, t := range orientedSides(a, l) {
			out = append(out, Entry{Term: t, Lit: l, Clause: c})
		}
	}
	return out
}

// DemodulationFrom extracts all non-variable subterms of every literal
// (spec §4.4 table, row "Demodulation-from").
func DemodulationFrom(a *kernel.Arena, c kernel.ClauseID) []Entry {
	var out []Entry
	for _, l := range a.Lits(c) {
		for _, arg := range a.LitArgs(l) {
			for _, t := range nonVarSubterms(a, arg, nil) {
				out = append(out, Entry{Term: t, Lit: l, Clause: c})
			}
		}
	}
	return out
}

// DemodulationInto extracts the demodulation-oriented LHS of a unit
// clause's single literal (spec §4.4 table, row "Demodulation-into").
// Non-unit clauses contribute nothing.
func DemodulationInto(a *kernel.Arena, c kernel.ClauseID) []Entry {
	lits := a.Lits(c)
	if len(lits) != 1 {
		return nil
	}
	l := lits[0]
	var out []Entry
	for _, t := range orientedSides(a, l) {
		out = append(out, Entry{Term: t, Lit: l, Clause: c})
	}
	return out
}
