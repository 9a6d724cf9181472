// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

package index

import (
	"github.com/irifrance/saturn/kernel"
	"github.com/irifrance/saturn/z"
)

// Subst maps variables to terms. Two clauses being unified are assumed
// to already live in disjoint variable spaces (renamed apart by the
// caller); the index itself does no renaming.
type Subst map[z.Var]kernel.TermID

func (s Subst) clone() Subst {
	c := make(Subst, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}

// walk follows variable bindings in s until reaching a non-variable
// term or an unbound variable.
func walk(a *kernel.Arena, t kernel.TermID, s Subst) kernel.TermID {
	for a.IsVar(t) {
		if bound, ok := s[a.Var(t)]; ok {
			t = bound
			continue
		}
		break
	}
	return t
}

func occurs(a *kernel.Arena, v z.Var, t kernel.TermID, s Subst) bool {
	t = walk(a, t, s)
	if a.IsVar(t) {
		return a.Var(t) == v
	}
	for _, arg := range a.Args(t) {
		if occurs(a, v, arg, s) {
			return true
		}
	}
	return false
}

// Unify computes a most general unifier of t1 and t2, if one exists.
func Unify(a *kernel.Arena, t1, t2 kernel.TermID) (Subst, bool) {
	return unify(a, t1, t2, Subst{})
}

func unify(a *kernel.Arena, t1, t2 kernel.TermID, s Subst) (Subst, bool) {
	t1 = walk(a, t1, s)
	t2 = walk(a, t2, s)
	if t1 == t2 {
		return s, true
	}
	if a.IsVar(t1) {
		if occurs(a, a.Var(t1), t2, s) {
			return nil, false
		}
		next := s.clone()
		next[a.Var(t1)] = t2
		return next, true
	}
	if a.IsVar(t2) {
		return unify(a, t2, t1, s)
	}
	if a.Sym(t1) != a.Sym(t2) {
		return nil, false
	}
	args1, args2 := a.Args(t1), a.Args(t2)
	cur := s
	for i := range args1 {
		next, ok := unify(a, args1[i], args2[i], cur)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// UnifyArgs computes a single MGU unifying xs[i] with ys[i] for every i
// simultaneously, threading one substitution across the whole argument
// list. Used by generating inferences that must unify a literal's full
// argument tuple against another's (spec §4.6 resolution/factoring),
// rather than one term pair at a time.
func UnifyArgs(a *kernel.Arena, xs, ys []kernel.TermID) (Subst, bool) {
	if len(xs) != len(ys) {
		return nil, false
	}
	cur := Subst{}
	for i := range xs {
		next, ok := unify(a, xs[i], ys[i], cur)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Match computes a substitution θ such that patternθ == subject, binding
// only variables of pattern (one directional, as required by
// getGeneralizations/getInstances in spec §4.4).
func Match(a *kernel.Arena, pattern, subject kernel.TermID) (Subst, bool) {
	return match(a, pattern, subject, Subst{})
}

func match(a *kernel.Arena, pattern, subject kernel.TermID, s Subst) (Subst, bool) {
	if a.IsVar(pattern) {
		v := a.Var(pattern)
		if bound, ok := s[v]; ok {
			if bound == subject {
				return s, true
			}
			return nil, false
		}
		next := s.clone()
		next[v] = subject
		return next, true
	}
	if a.IsVar(subject) {
		return nil, false
	}
	if a.Sym(pattern) != a.Sym(subject) {
		return nil, false
	}
	pargs, sargs := a.Args(pattern), a.Args(subject)
	cur := s
	for i := range pargs {
		next, ok := match(a, pargs[i], sargs[i], cur)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Apply substitutes s into t, producing an interned result term.
func Apply(a *kernel.Arena, t kernel.TermID, s Subst) kernel.TermID {
	t = walk(a, t, s)
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
		newArgs[i] = Apply(a, arg, s)
		if newArgs[i] != arg {
			changed = true
		}
	}
	if !changed {
		return t
	}
	return a.MkApp(a.Sym(t), newArgs...)
}
