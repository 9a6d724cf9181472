// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

package saturation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irifrance/saturn/index"
	"github.com/irifrance/saturn/kernel"
	"github.com/irifrance/saturn/z"
)

func TestForwardDemodulateRewritesToFixpoint(t *testing.T) {
	sig := z.NewSignature()
	a := kernel.NewArena(sig)
	fun := sig.Intern("f", 1, z.FunctionSymbol)
	gun := sig.Intern("g", 1, z.FunctionSymbol)
	a0 := sig.Intern("a", 0, z.FunctionSymbol)
	b0 := sig.Intern("b", 0, z.FunctionSymbol)
	c0 := sig.Intern("c", 0, z.FunctionSymbol)
	pred := sig.Intern("p", 1, z.PredicateSymbol)

	av := a.MkApp(a0)
	bv := a.MkApp(b0)
	cv := a.MkApp(c0)
	fa := a.MkApp(fun, av)
	gfa := a.MkApp(gun, fa)

	rules := index.New(a, index.DemodulationInto)
	// f(a) = b
	eq1 := a.MkEq(fa, bv, true)
	rc1 := a.NewClause([]kernel.LitID{eq1}, kernel.Inference{})
	rules.Insert(rc1)
	// g(b) = c
	gb := a.MkApp(gun, bv)
	eq2 := a.MkEq(gb, cv, true)
	rc2 := a.NewClause([]kernel.LitID{eq2}, kernel.Inference{})
	rules.Insert(rc2)

	lit := a.MkLit(pred, true, gfa)
	out := ForwardDemodulate(a, rules, []kernel.LitID{lit})

	require.Len(t, out, 1)
	args := a.LitArgs(out[0])
	assert.Equal(t, cv, args[0], "expected p(g(f(a))) to rewrite down to p(c)")
}

func TestBackwardDemodulateFindsRewritableActiveClauses(t *testing.T) {
	sig := z.NewSignature()
	a := kernel.NewArena(sig)
	fun := sig.Intern("f", 1, z.FunctionSymbol)
	a0 := sig.Intern("a", 0, z.FunctionSymbol)
	b0 := sig.Intern("b", 0, z.FunctionSymbol)
	pred := sig.Intern("p", 1, z.PredicateSymbol)

	av := a.MkApp(a0)
	bv := a.MkApp(b0)
	fa := a.MkApp(fun, av)

	subterms := index.New(a, index.DemodulationFrom)
	lit := a.MkLit(pred, true, fa)
	victim := a.NewClause([]kernel.LitID{lit}, kernel.Inference{})
	subterms.Insert(victim)

	eq := a.MkEq(fa, bv, true)
	out := BackwardDemodulate(a, subterms, []kernel.LitID{eq})
	require.Len(t, out, 1)
	assert.Equal(t, victim, out[0])
}

func TestBackwardDemodulateIgnoresNonUnitEquations(t *testing.T) {
	sig := z.NewSignature()
	a := kernel.NewArena(sig)
	pred := sig.Intern("p", 0, z.PredicateSymbol)
	a0 := sig.Intern("a", 0, z.FunctionSymbol)
	b0 := sig.Intern("b", 0, z.FunctionSymbol)
	av := a.MkApp(a0)
	bv := a.MkApp(b0)

	subterms := index.New(a, index.DemodulationFrom)
	eq := a.MkEq(av, bv, true)
	other := a.MkLit(pred, true)
	out := BackwardDemodulate(a, subterms, []kernel.LitID{eq, other})
	assert.Empty(t, out)
}

func TestSubsumesDetectsMultisetEmbedding(t *testing.T) {
	sig := z.NewSignature()
	a := kernel.NewArena(sig)
	p := sig.Intern("p", 1, z.PredicateSymbol)
	x := a.MkVar(0)
	a0 := sig.Intern("a", 0, z.FunctionSymbol)
	av := a.MkApp(a0)

	// d: p(X)   c: p(a) \/ p(a)
	dLit := a.MkLit(p, true, x)
	d := a.NewClause([]kernel.LitID{dLit}, kernel.Inference{})

	cLit1 := a.MkLit(p, true, av)
	cLit2 := a.MkLit(p, true, av)
	c := a.NewClause([]kernel.LitID{cLit1, cLit2}, kernel.Inference{})

	assert.True(t, Subsumes(a, d, c))
	assert.False(t, Subsumes(a, c, d), "c has more literals than d and cannot subsume it")
}

func TestSubsumesRejectsLongerClause(t *testing.T) {
	sig := z.NewSignature()
	a := kernel.NewArena(sig)
	p := sig.Intern("p", 0, z.PredicateSymbol)
	q := sig.Intern("q", 0, z.PredicateSymbol)

	dLit1 := a.MkLit(p, true)
	dLit2 := a.MkLit(q, true)
	d := a.NewClause([]kernel.LitID{dLit1, dLit2}, kernel.Inference{})

	cLit := a.MkLit(p, true)
	c := a.NewClause([]kernel.LitID{cLit}, kernel.Inference{})

	assert.False(t, Subsumes(a, d, c))
}

func TestForwardSubsumedAndBackwardSubsumed(t *testing.T) {
	sig := z.NewSignature()
	a := kernel.NewArena(sig)
	p := sig.Intern("p", 0, z.PredicateSymbol)
	q := sig.Intern("q", 0, z.PredicateSymbol)

	pLit := a.MkLit(p, true)
	d := a.NewClause([]kernel.LitID{pLit}, kernel.Inference{})

	pLit2 := a.MkLit(p, true)
	qLit := a.MkLit(q, true)
	c := a.NewClause([]kernel.LitID{pLit2, qLit}, kernel.Inference{})

	assert.True(t, ForwardSubsumed(a, []kernel.ClauseID{d}, c))
	assert.Equal(t, []kernel.ClauseID{c}, BackwardSubsumed(a, d, []kernel.ClauseID{c}))
}

func TestCondenseFixpointRemovesRedundantLiteral(t *testing.T) {
	sig := z.NewSignature()
	a := kernel.NewArena(sig)
	p := sig.Intern("p", 1, z.PredicateSymbol)
	x := a.MkVar(0)
	a0 := sig.Intern("a", 0, z.FunctionSymbol)
	av := a.MkApp(a0)

	// p(X) \/ p(a): p(X) maps onto p(a) under X := a, so p(X) is dropped
	// and p(a) is kept.
	l1 := a.MkLit(p, true, x)
	l2 := a.MkLit(p, true, av)
	out := CondenseFixpoint(a, []kernel.LitID{l1, l2})
	assert.Len(t, out, 1)
}

func TestCondenseFixpointLeavesIrreducibleClauseAlone(t *testing.T) {
	sig := z.NewSignature()
	a := kernel.NewArena(sig)
	p := sig.Intern("p", 0, z.PredicateSymbol)
	q := sig.Intern("q", 0, z.PredicateSymbol)
	l1 := a.MkLit(p, true)
	l2 := a.MkLit(q, true)
	out := CondenseFixpoint(a, []kernel.LitID{l1, l2})
	assert.Len(t, out, 2)
}

func TestSubsumptionResolveDropsResolvableLiteral(t *testing.T) {
	sig := z.NewSignature()
	a := kernel.NewArena(sig)
	p := sig.Intern("p", 0, z.PredicateSymbol)
	q := sig.Intern("q", 0, z.PredicateSymbol)

	// d: ~p \/ q   c: p \/ q
	dLit1 := a.MkLit(p, false)
	dLit2 := a.MkLit(q, true)
	d := a.NewClause([]kernel.LitID{dLit1, dLit2}, kernel.Inference{})

	cLit1 := a.MkLit(p, true)
	cLit2 := a.MkLit(q, true)
	c := a.NewClause([]kernel.LitID{cLit1, cLit2}, kernel.Inference{})

	out, ok := SubsumptionResolve(a, c, []kernel.ClauseID{d})
	require.True(t, ok)
	assert.Len(t, out, 1)
	assert.Equal(t, cLit2, out[0])
}

func TestSubsumptionResolveNoOpWhenNoCandidateApplies(t *testing.T) {
	sig := z.NewSignature()
	a := kernel.NewArena(sig)
	p := sig.Intern("p", 0, z.PredicateSymbol)
	cLit := a.MkLit(p, true)
	c := a.NewClause([]kernel.LitID{cLit}, kernel.Inference{})

	out, ok := SubsumptionResolve(a, c, nil)
	assert.False(t, ok)
	assert.Equal(t, a.Lits(c), out)
}
