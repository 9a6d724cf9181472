// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

package saturation

import (
	"github.com/irifrance/saturn/index"
	"github.com/irifrance/saturn/kernel"
)

// Rule is one generating inference (spec §4.6): given the clause just
// promoted to Active, it queries idx for partners and returns the
// clauses it derives. Each rule is a plain function rather than a
// method on an interface hierarchy (Design Notes §9 "replace
// inheritance with a tagged set of rule variants").
type Rule func(env *Environment, active containerAll, idx *IndexSet, c kernel.ClauseID) []kernel.ClauseID

// containerAll is the minimal read surface Rule needs from
// container.Active — its own package so rules.go does not import
// container just to name a type it only calls All()/Contains() on.
type containerAll interface {
	All() []kernel.ClauseID
	Contains(c kernel.ClauseID) bool
}

// IndexSet bundles the four index variants a rule may query, per spec
// §4.4's table.
type IndexSet struct {
	SuperpositionFrom *index.Index
	SuperpositionInto *index.Index
	DemodulationFrom  *index.Index
	DemodulationInto  *index.Index
}

// GeneratingRules is the dispatch table run over every clause promoted
// to Active (spec §4.6 step 4).
var GeneratingRules = []Rule{
	ResolutionRule,
	FactoringRule,
	EqualityResolutionRule,
	EqualityFactoringRule,
	SuperpositionRule,
}

func applySubstToLit(a *kernel.Arena, l kernel.LitID, s index.Subst) kernel.LitID {
	args := a.LitArgs(l)
	newArgs := make([]kernel.TermID, len(args))
	for i, arg := range args {
		newArgs[i] = index.Apply(a, arg, s)
	}
	if a.IsEquality(l) {
		return a.MkEq(newArgs[0], newArgs[1], a.Positive(l))
	}
	return a.MkLit(a.Pred(l), a.Positive(l), newArgs...)
}

func applySubstToLits(a *kernel.Arena, lits []kernel.LitID, s index.Subst) []kernel.LitID {
	out := make([]kernel.LitID, len(lits))
	for i, l := range lits {
		out[i] = applySubstToLit(a, l, s)
	}
	return out
}

func withoutIndex(lits []kernel.LitID, skip int) []kernel.LitID {
	out := make([]kernel.LitID, 0, len(lits)-1)
	for i, l := range lits {
		if i == skip {
			continue
		}
		out = append(out, l)
	}
	return out
}

func withoutIndices(lits []kernel.LitID, skip1, skip2 int) []kernel.LitID {
	out := make([]kernel.LitID, 0, len(lits)-2)
	for i, l := range lits {
		if i == skip1 || i == skip2 {
			continue
		}
		out = append(out, l)
	}
	return out
}

// isTautologyOrTrivial performs the cheap check spec §4.6 step 4 asks
// for before pushing a generated child into Unprocessed: a clause
// containing both a literal and its complement, or a positive equality
// t = t, is a tautology and never contributes to a refutation.
func isTautologyOrTrivial(a *kernel.Arena, lits []kernel.LitID) bool {
	for _, l := range lits {
		if a.IsEquality(l) && a.Positive(l) {
			args := a.LitArgs(l)
			if args[0] == args[1] {
				return true
			}
		}
	}
	for i, l := range lits {
		compl := a.Complement(l)
		for j, m := range lits {
			if i != j && m == compl {
				return true
			}
		}
	}
	return false
}

// ResolutionRule performs binary resolution between a selected
// non-equality literal of c and a unifiable complementary selected
// literal of another Active clause (spec §4.6 "resolution").
func ResolutionRule(env *Environment, active containerAll, idx *IndexSet, c kernel.ClauseID) []kernel.ClauseID {
	a := env.Arena
	var out []kernel.ClauseID
	for _, d := range active.All() {
		if d == c {
			continue
		}
		offset := env.FreshOffset()
		dLits := a.RenameApart(a.Lits(d), offset)
		dSelected := a.Selected(d)
		for i, l := range a.SelectedLits(c) {
			if a.IsEquality(l) {
				continue
			}
			for j := 0; j < dSelected; j++ {
				m := dLits[j]
				if a.IsEquality(m) {
					continue
				}
				if a.Positive(l) == a.Positive(m) {
					continue
				}
				if a.Pred(l) != a.Pred(m) {
					continue
				}
				s, ok := index.UnifyArgs(a, a.LitArgs(l), a.LitArgs(m))
				if !ok {
					continue
				}
				rest := append(withoutIndex(a.Lits(c), i), withoutIndex(dLits, j)...)
				resolvent := applySubstToLits(a, rest, s)
				if isTautologyOrTrivial(a, resolvent) {
					continue
				}
				out = append(out, a.NewClause(resolvent, kernel.Inference{
					Rule:    "resolution",
					Parents: []kernel.ClauseID{c, d},
				}))
			}
		}
	}
	return out
}

// FactoringRule unifies two selected literals of the same clause and
// polarity, merging them (spec §4.6 "factoring").
func FactoringRule(env *Environment, active containerAll, idx *IndexSet, c kernel.ClauseID) []kernel.ClauseID {
	a := env.Arena
	lits := a.Lits(c)
	selected := a.Selected(c)
	var out []kernel.ClauseID
	for i := 0; i < selected; i++ {
		li := lits[i]
		if a.IsEquality(li) {
			continue
		}
		for j := i + 1; j < selected; j++ {
			lj := lits[j]
			if a.IsEquality(lj) || a.Positive(li) != a.Positive(lj) || a.Pred(li) != a.Pred(lj) {
				continue
			}
			s, ok := index.UnifyArgs(a, a.LitArgs(li), a.LitArgs(lj))
			if !ok {
				continue
			}
			rest := withoutIndex(lits, j)
			factored := applySubstToLits(a, rest, s)
			if isTautologyOrTrivial(a, factored) {
				continue
			}
			out = append(out, a.NewClause(factored, kernel.Inference{
				Rule:    "factoring",
				Parents: []kernel.ClauseID{c},
			}))
		}
	}
	return out
}

// EqualityResolutionRule selects a negative equality literal s != t,
// unifies s and t, and drops the literal (spec §4.6
// "equalityResolution").
func EqualityResolutionRule(env *Environment, active containerAll, idx *IndexSet, c kernel.ClauseID) []kernel.ClauseID {
	a := env.Arena
	lits := a.Lits(c)
	selected := a.Selected(c)
	var out []kernel.ClauseID
	for i := 0; i < selected; i++ {
		l := lits[i]
		if !a.IsEquality(l) || a.Positive(l) {
			continue
		}
		args := a.LitArgs(l)
		s, ok := index.UnifyArgs(a, []kernel.TermID{args[0]}, []kernel.TermID{args[1]})
		if !ok {
			continue
		}
		rest := applySubstToLits(a, withoutIndex(lits, i), s)
		if isTautologyOrTrivial(a, rest) {
			continue
		}
		out = append(out, a.NewClause(rest, kernel.Inference{
			Rule:    "equalityResolution",
			Parents: []kernel.ClauseID{c},
		}))
	}
	return out
}

// EqualityFactoringRule merges two positive equality literals of c that
// share a unifiable side (spec §4.6 "equalityFactoring").
func EqualityFactoringRule(env *Environment, active containerAll, idx *IndexSet, c kernel.ClauseID) []kernel.ClauseID {
	a := env.Arena
	lits := a.Lits(c)
	selected := a.Selected(c)
	var out []kernel.ClauseID
	for i := 0; i < selected; i++ {
		li := lits[i]
		if !a.IsEquality(li) || !a.Positive(li) {
			continue
		}
		argsI := a.LitArgs(li)
		for j := 0; j < len(lits); j++ {
			if i == j {
				continue
			}
			lj := lits[j]
			if !a.IsEquality(lj) || !a.Positive(lj) {
				continue
			}
			argsJ := a.LitArgs(lj)
			// s = t, u = v: unify s with u, rewrite to t != v \/ s = t \/ rest.
			s, ok := index.UnifyArgs(a, []kernel.TermID{argsI[0]}, []kernel.TermID{argsJ[0]})
			if !ok {
				continue
			}
			rest := withoutIndices(lits, i, j)
			neg := a.MkEq(index.Apply(a, argsI[1], s), index.Apply(a, argsJ[1], s), false)
			kept := a.MkEq(index.Apply(a, argsI[0], s), index.Apply(a, argsI[1], s), true)
			merged := append([]kernel.LitID{neg, kept}, applySubstToLits(a, rest, s)...)
			if isTautologyOrTrivial(a, merged) {
				continue
			}
			out = append(out, a.NewClause(merged, kernel.Inference{
				Rule:    "equalityFactoring",
				Parents: []kernel.ClauseID{c},
			}))
		}
	}
	return out
}

// SuperpositionRule rewrites a subterm of an Active clause using an
// oriented equality from c, or a subterm of c using an oriented
// equality of an Active clause (spec §4.6 "superposition"), guided by
// env.Ordering to reject rewrites that would not simplify.
func SuperpositionRule(env *Environment, active containerAll, idx *IndexSet, c kernel.ClauseID) []kernel.ClauseID {
	var out []kernel.ClauseID
	out = append(out, superposeUsingOwnEquation(env, c, idx.SuperpositionFrom)...)
	out = append(out, superposeIntoOwnSubterm(env, c, idx.SuperpositionInto)...)
	return out
}

// superposeUsingOwnEquation takes c's own oriented equalities and
// searches idx.SuperpositionFrom — the index of rewritable subterms
// held by every Active clause's selected literals — for instances of
// the equation's oriented LHS, rewriting them (spec §4.4 table row
// "Superposition-from (backward)": the equation drives the search
// backward into other clauses' subterms).
func superposeUsingOwnEquation(env *Environment, c kernel.ClauseID, from *index.Index) []kernel.ClauseID {
	a := env.Arena
	if from == nil {
		return nil
	}
	var out []kernel.ClauseID
	for _, l := range a.SelectedLits(c) {
		if !a.IsEquality(l) || !a.Positive(l) {
			continue
		}
		args := a.LitArgs(l)
		for _, pair := range [][2]kernel.TermID{{args[0], args[1]}, {args[1], args[0]}} {
			lhs, rhs := pair[0], pair[1]
			if cmp := env.Ordering.Compare(a, lhs, rhs); cmp != Greater && cmp != Incomparable {
				continue
			}
			cur := from.GetInstances(lhs, true)
			results, err := cur.All()
			if err != nil {
				continue
			}
			for _, r := range results {
				if r.Entry.Clause == c {
					continue
				}
				out = append(out, buildSuperposition(env, c, l, lhs, rhs, r)...)
			}
		}
	}
	return out
}

// superposeIntoOwnSubterm takes a non-variable subterm of c's own
// selected literals and searches idx.SuperpositionInto — the index of
// oriented equality LHSs held by every Active clause — for equations
// that generalize it, rewriting c using the matching equation (spec
// §4.4 table row "Superposition-into (forward)").
func superposeIntoOwnSubterm(env *Environment, c kernel.ClauseID, into *index.Index) []kernel.ClauseID {
	a := env.Arena
	if into == nil {
		return nil
	}
	var out []kernel.ClauseID
	for _, l := range a.SelectedLits(c) {
		if a.IsEquality(l) {
			continue
		}
		for _, arg := range a.LitArgs(l) {
			for _, sub := range nonVarSubterms(a, arg) {
				cur := into.GetGeneralizations(sub, true)
				results, err := cur.All()
				if err != nil {
					continue
				}
				for _, r := range results {
					if r.Entry.Clause == c {
						continue
					}
					out = append(out, buildSuperpositionInto(env, c, l, sub, r)...)
				}
			}
		}
	}
	return out
}

func nonVarSubterms(a *kernel.Arena, t kernel.TermID) []kernel.TermID {
	if a.IsVar(t) {
		return nil
	}
	out := []kernel.TermID{t}
	for _, arg := range a.Args(t) {
		out = append(out, nonVarSubterms(a, arg)...)
	}
	return out
}

// buildSuperposition rewrites the subterm at r.Entry.Term inside
// r.Entry.Clause's literal r.Entry.Lit from lhs to rhs, per the
// unifier r.Subst.
func buildSuperposition(env *Environment, from kernel.ClauseID, eqLit kernel.LitID, lhs, rhs kernel.TermID, r index.Result) []kernel.ClauseID {
	a := env.Arena
	into := r.Entry.Clause
	target := r.Entry.Lit
	newSub := index.Apply(a, rhs, r.Subst)
	rewritten := rewriteLitAt(a, target, r.Entry.Term, newSub, r.Subst)
	fromRest := applySubstToLits(a, withoutLit(a.Lits(from), eqLit), r.Subst)
	intoRest := applySubstToLits(a, withoutLit(a.Lits(into), target), r.Subst)
	merged := append(append([]kernel.LitID{rewritten}, fromRest...), intoRest...)
	if isTautologyOrTrivial(a, merged) {
		return nil
	}
	return []kernel.ClauseID{a.NewClause(merged, kernel.Inference{
		Rule:    "superposition",
		Parents: []kernel.ClauseID{from, into},
	})}
}

func buildSuperpositionInto(env *Environment, into kernel.ClauseID, targetLit kernel.LitID, subterm kernel.TermID, r index.Result) []kernel.ClauseID {
	a := env.Arena
	from := r.Entry.Clause
	eqLit := r.Entry.Lit
	eqArgs := a.LitArgs(eqLit)
	var rhs kernel.TermID
	if index.Apply(a, eqArgs[0], r.Subst) == index.Apply(a, r.Entry.Term, r.Subst) {
		rhs = eqArgs[1]
	} else {
		rhs = eqArgs[0]
	}
	newSub := index.Apply(a, rhs, r.Subst)
	rewritten := rewriteLitAt(a, targetLit, subterm, newSub, r.Subst)
	intoRest := applySubstToLits(a, withoutLit(a.Lits(into), targetLit), r.Subst)
	fromRest := applySubstToLits(a, withoutLit(a.Lits(from), eqLit), r.Subst)
	merged := append(append([]kernel.LitID{rewritten}, intoRest...), fromRest...)
	if isTautologyOrTrivial(a, merged) {
		return nil
	}
	return []kernel.ClauseID{a.NewClause(merged, kernel.Inference{
		Rule:    "superposition",
		Parents: []kernel.ClauseID{from, into},
	})}
}

func withoutLit(lits []kernel.LitID, skip kernel.LitID) []kernel.LitID {
	out := make([]kernel.LitID, 0, len(lits))
	removed := false
	for _, l := range lits {
		if !removed && l == skip {
			removed = true
			continue
		}
		out = append(out, l)
	}
	return out
}

// rewriteLitAt substitutes s into l, then replaces every occurrence of
// old (after applying s) with new inside l's arguments.
func rewriteLitAt(a *kernel.Arena, l kernel.LitID, old, new kernel.TermID, s index.Subst) kernel.LitID {
	args := a.LitArgs(l)
	rewritten := make([]kernel.TermID, len(args))
	for i, arg := range args {
		rewritten[i] = rewriteTerm(a, index.Apply(a, arg, s), index.Apply(a, old, s), new)
	}
	if a.IsEquality(l) {
		return a.MkEq(rewritten[0], rewritten[1], a.Positive(l))
	}
	return a.MkLit(a.Pred(l), a.Positive(l), rewritten...)
}

func rewriteTerm(a *kernel.Arena, t, old, new kernel.TermID) kernel.TermID {
	if t == old {
		return new
	}
	if a.IsVar(t) {
		return t
	}
	args := a.Args(t)
	if len(args) == 0 {
		return t
	}
	newArgs := make([]kernel.TermID, len(args))
	changed := false
	for i, arg := range args {
		newArgs[i] = rewriteTerm(a, arg, old, new)
		if newArgs[i] != arg {
			changed = true
		}
	}
	if !changed {
		return t
	}
	return a.MkApp(a.Sym(t), newArgs...)
}
