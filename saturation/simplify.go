// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

package saturation

import (
	"github.com/irifrance/saturn/index"
	"github.com/irifrance/saturn/kernel"
)

// demodulateOnce rewrites the first subterm of lits that a generalizing
// unit equation in rules covers, returning the rewritten literals and
// true, or lits unchanged and false if no rule applies. rules holds the
// heavier side of each unit equation, or both sides when they weigh the
// same (index.DemodulationInto), so demodulateTerm only fires a match
// (lhsθ = t, matching, not unifying) whose rhsθ has strictly fewer
// symbols than t; every rewrite is a genuine simplification.
func demodulateOnce(a *kernel.Arena, rules *index.Index, lits []kernel.LitID) ([]kernel.LitID, bool) {
	for i, l := range lits {
		args := a.LitArgs(l)
		for ai, arg := range args {
			if rewritten, ok := demodulateTerm(a, rules, arg); ok {
				newArgs := append([]kernel.TermID{}, args...)
				newArgs[ai] = rewritten
				var newLit kernel.LitID
				if a.IsEquality(l) {
					newLit = a.MkEq(newArgs[0], newArgs[1], a.Positive(l))
				} else {
					newLit = a.MkLit(a.Pred(l), a.Positive(l), newArgs...)
				}
				out := append([]kernel.LitID{}, lits...)
				out[i] = newLit
				return out, true
			}
		}
	}
	return lits, false
}

// demodulateTerm finds the first non-variable subterm of t (t included)
// with a matching rule, rewriting bottom-up so the smallest rewritable
// subterm fires first.
func demodulateTerm(a *kernel.Arena, rules *index.Index, t kernel.TermID) (kernel.TermID, bool) {
	if a.IsVar(t) {
		return t, false
	}
	args := a.Args(t)
	newArgs := append([]kernel.TermID{}, args...)
	changed := false
	for i, arg := range args {
		if rewritten, ok := demodulateTerm(a, rules, arg); ok {
			newArgs[i] = rewritten
			changed = true
			break
		}
	}
	if changed {
		return a.MkApp(a.Sym(t), newArgs...), true
	}
	cur := rules.GetGeneralizations(t, true)
	results, err := cur.All()
	if err != nil || len(results) == 0 {
		return t, false
	}
	for _, r := range results {
		eqArgs := a.LitArgs(r.Entry.Lit)
		var rhs kernel.TermID
		if eqArgs[0] == r.Entry.Term {
			rhs = eqArgs[1]
		} else {
			rhs = eqArgs[0]
		}
		if rewritten := index.Apply(a, rhs, r.Subst); a.SymbolCount(rewritten) < a.SymbolCount(t) {
			return rewritten, true
		}
	}
	return t, false
}

// ForwardDemodulate rewrites lits to a fixpoint against every unit
// equation in rules (spec §4.6 "demodulation"), for use as forward
// simplification of a clause drawn from Unprocessed before it enters
// Passive.
func ForwardDemodulate(a *kernel.Arena, rules *index.Index, lits []kernel.LitID) []kernel.LitID {
	for {
		next, ok := demodulateOnce(a, rules, lits)
		if !ok {
			return lits
		}
		lits = next
	}
}

// BackwardDemodulate reports which clauses indexed in subterms contain
// an instance of either side of the unit equation held in eqLits (a
// single-literal clause just added to Active; if that clause is itself
// indexed in subterms it is among the results), per spec §4.6's
// backward-simplification pass: an Active
// clause rewritable by a brand-new rule must be pulled back out and
// reprocessed rather than left stale.
func BackwardDemodulate(a *kernel.Arena, subterms *index.Index, eqLits []kernel.LitID) []kernel.ClauseID {
	if len(eqLits) != 1 || !a.IsEquality(eqLits[0]) || !a.Positive(eqLits[0]) {
		return nil
	}
	args := a.LitArgs(eqLits[0])
	lhs, rhs := args[0], args[1]
	if lhs == rhs {
		return nil
	}
	var out []kernel.ClauseID
	seen := make(map[kernel.ClauseID]bool)
	for _, side := range [][2]kernel.TermID{{lhs, rhs}, {rhs, lhs}} {
		cur := subterms.GetInstances(side[0], false)
		results, err := cur.All()
		if err != nil {
			continue
		}
		for _, r := range results {
			if !seen[r.Entry.Clause] {
				seen[r.Entry.Clause] = true
				out = append(out, r.Entry.Clause)
			}
		}
	}
	return out
}

// subsumesMultiset reports whether every literal of small has a
// distinct image in big under one common substitution — a bounded
// backtracking matcher over small's literals, per spec §4.6
// "d's literals multiset-embed into c's under some substitution".
func subsumesMultiset(a *kernel.Arena, small, big []kernel.LitID) bool {
	used := make([]bool, len(big))
	return subsumeFrom(a, small, big, used, 0, index.Subst{})
}

func subsumeFrom(a *kernel.Arena, small, big []kernel.LitID, used []bool, i int, s index.Subst) bool {
	if i == len(small) {
		return true
	}
	l := small[i]
	for j, m := range big {
		if used[j] || a.Positive(l) != a.Positive(m) {
			continue
		}
		if a.IsEquality(l) != a.IsEquality(m) {
			continue
		}
		if !a.IsEquality(l) && a.Pred(l) != a.Pred(m) {
			continue
		}
		s2, ok := matchLitArgs(a, l, m, s)
		if !ok {
			continue
		}
		used[j] = true
		if subsumeFrom(a, small, big, used, i+1, s2) {
			return true
		}
		used[j] = false
	}
	return false
}

func matchLitArgs(a *kernel.Arena, pattern, subject kernel.LitID, s index.Subst) (index.Subst, bool) {
	pargs, sargs := a.LitArgs(pattern), a.LitArgs(subject)
	cur := s
	if a.IsEquality(pattern) {
		// equality literals match in either argument order.
		for _, perm := range [][2]int{{0, 1}, {1, 0}} {
			next := cur
			ok := true
			for i := range pargs {
				var okStep bool
				next, okStep = matchTermInto(a, pargs[i], sargs[perm[i]], next)
				if !okStep {
					ok = false
					break
				}
			}
			if ok {
				return next, true
			}
		}
		return nil, false
	}
	for i := range pargs {
		var ok bool
		cur, ok = matchTermInto(a, pargs[i], sargs[i], cur)
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func matchTermInto(a *kernel.Arena, pattern, subject kernel.TermID, s index.Subst) (index.Subst, bool) {
	s2, ok := index.Match(a, pattern, subject)
	if !ok {
		return nil, false
	}
	for v, t := range s2 {
		if bound, exists := s[v]; exists {
			if bound != t {
				return nil, false
			}
			continue
		}
	}
	merged := make(index.Subst, len(s)+len(s2))
	for v, t := range s {
		merged[v] = t
	}
	for v, t := range s2 {
		merged[v] = t
	}
	return merged, true
}

// Subsumes reports whether d subsumes c: every literal of d embeds,
// under one substitution, into a distinct literal of c (spec §4.6).
func Subsumes(a *kernel.Arena, d, c kernel.ClauseID) bool {
	dLits, cLits := a.Lits(d), a.Lits(c)
	if len(dLits) > len(cLits) {
		return false
	}
	return subsumesMultiset(a, dLits, cLits)
}

// ForwardSubsumed reports whether any of candidates subsumes c.
func ForwardSubsumed(a *kernel.Arena, candidates []kernel.ClauseID, c kernel.ClauseID) bool {
	for _, d := range candidates {
		if d == c {
			continue
		}
		if Subsumes(a, d, c) {
			return true
		}
	}
	return false
}

// BackwardSubsumed returns the candidates that c subsumes and which are
// therefore redundant now that c has been derived.
func BackwardSubsumed(a *kernel.Arena, c kernel.ClauseID, candidates []kernel.ClauseID) []kernel.ClauseID {
	var out []kernel.ClauseID
	for _, d := range candidates {
		if d == c {
			continue
		}
		if Subsumes(a, c, d) {
			out = append(out, d)
		}
	}
	return out
}

// Condense removes one literal lj of lits that matches onto another
// literal li of lits (ljθ = li, so lj is the more general of the two
// and li is kept), returning the shortened literal set
// and true, or lits unchanged and false if no such literal exists (spec
// §4.6, supplemented from original_source/Kernel).
func Condense(a *kernel.Arena, lits []kernel.LitID) ([]kernel.LitID, bool) {
	for i, li := range lits {
		for j, lj := range lits {
			if i == j {
				continue
			}
			if a.Positive(li) != a.Positive(lj) {
				continue
			}
			if a.IsEquality(li) != a.IsEquality(lj) {
				continue
			}
			if !a.IsEquality(li) && a.Pred(li) != a.Pred(lj) {
				continue
			}
			if _, ok := matchLitArgs(a, lj, li, index.Subst{}); ok {
				out := make([]kernel.LitID, 0, len(lits)-1)
				for k, l := range lits {
					if k != j {
						out = append(out, l)
					}
				}
				return out, true
			}
		}
	}
	return lits, false
}

// CondenseFixpoint applies Condense until no literal can be removed.
func CondenseFixpoint(a *kernel.Arena, lits []kernel.LitID) []kernel.LitID {
	for {
		next, ok := Condense(a, lits)
		if !ok {
			return lits
		}
		lits = next
	}
}

// SubsumptionResolve looks for a literal l of c and a clause d such
// that d minus one literal m subsumes c minus l, where mθ is the
// complement of l for some θ — in that case l is redundant and can be
// dropped from c (subsumption resolution, supplemented from
// original_source/Kernel). Returns the shortened literal set and true
// on success.
func SubsumptionResolve(a *kernel.Arena, c kernel.ClauseID, candidates []kernel.ClauseID) ([]kernel.LitID, bool) {
	cLits := a.Lits(c)
	for i, l := range cLits {
		compl := a.Complement(l)
		for _, d := range candidates {
			if d == c {
				continue
			}
			dLits := a.Lits(d)
			for _, m := range dLits {
				if a.Positive(m) != a.Positive(compl) || a.IsEquality(m) != a.IsEquality(compl) {
					continue
				}
				if !a.IsEquality(m) && a.Pred(m) != a.Pred(compl) {
					continue
				}
				if _, ok := matchLitArgs(a, m, compl, index.Subst{}); !ok {
					continue
				}
				rest := withoutIndex(dLits, indexOfLit(dLits, m))
				without := withoutIndex(cLits, i)
				if subsumesMultiset(a, rest, without) {
					return without, true
				}
			}
		}
	}
	return cLits, false
}

func indexOfLit(lits []kernel.LitID, target kernel.LitID) int {
	for i, l := range lits {
		if l == target {
			return i
		}
	}
	return -1
}
