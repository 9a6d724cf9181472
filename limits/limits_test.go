// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

package limits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irifrance/saturn/container"
	"github.com/irifrance/saturn/kernel"
	"github.com/irifrance/saturn/z"
)

func setup(t *testing.T) (*kernel.Arena, z.Sym) {
	sig := z.NewSignature()
	a := kernel.NewArena(sig)
	p := sig.Intern("p", 1, z.PredicateSymbol)
	return a, p
}

// weightedClause builds an active clause of the given age with n
// distinct literals (weight grows monotonically with n; the exact
// per-literal symbol count is an implementation detail tests read back
// via a.Weight rather than assume) with every literal selected.
func weightedClause(a *kernel.Arena, p z.Sym, age uint32, n int) kernel.ClauseID {
	inf := kernel.Inference{}
	parent := kernel.ClauseIDNull
	seedLit := a.MkLit(p, true, a.MkVar(0))
	for i := uint32(0); i < age; i++ {
		if parent == kernel.ClauseIDNull {
			parent = a.NewClause([]kernel.LitID{seedLit}, kernel.Inference{})
		} else {
			parent = a.NewClause([]kernel.LitID{seedLit}, kernel.Inference{Parents: []kernel.ClauseID{parent}})
		}
	}
	if parent != kernel.ClauseIDNull {
		inf.Parents = []kernel.ClauseID{parent}
	}
	var lits []kernel.LitID
	for i := 0; i < n; i++ {
		lits = append(lits, a.MkLit(p, true, a.MkVar(z.Var(100+i))))
	}
	c := a.NewClause(lits, inf)
	a.SetSelected(c, n)
	return c
}

func TestLimitsTightenFiresOnce(t *testing.T) {
	l := New()
	var kinds []ChangeKind
	l.Changed.Subscribe(func(k ChangeKind) { kinds = append(kinds, k) })

	assert.True(t, l.Tighten(10, 50))
	assert.Equal(t, []ChangeKind{TIGHTENED}, kinds)

	al, ok := l.AgeLimit()
	assert.True(t, ok)
	assert.Equal(t, uint32(10), al)
}

func TestLimitsTightenNoOpWhenAlreadyStricter(t *testing.T) {
	l := New()
	require.True(t, l.Tighten(5, 5))
	assert.False(t, l.Tighten(10, 10), "widening the bound is not a tighten")
}

func TestLimitsLoosenClearsBounds(t *testing.T) {
	l := New()
	l.Tighten(5, 5)
	l.Loosen()
	_, ok := l.AgeLimit()
	assert.False(t, ok)
}

// TestSweepDiscardsByWeightAtAgeLimit mirrors spec §8 scenario 5: 100
// active clauses uniformly aged 10, built from 1..100 literals p(X_i);
// each literal counts 2 symbols, so weight is 2n and
// maxSelectedLiteralWeight is 2. (ageLimit=10, weightLimit=50) discards
// exactly those with weight - maxSelected == 2n-2 >= 50, i.e. n >= 26;
// the expectation below is computed from each clause's actual weight
// and maxSelectedLiteralWeight rather than assumed.
func TestSweepDiscardsByWeightAtAgeLimit(t *testing.T) {
	a, p := setup(t)
	act := container.NewActive(a)

	clauses := make([]kernel.ClauseID, 0, 100)
	for w := 1; w <= 100; w++ {
		c := weightedClause(a, p, 10, w)
		require.NoError(t, a.SetStore(c, kernel.StoreUnprocessed))
		require.NoError(t, a.SetStore(c, kernel.StorePassive))
		require.NoError(t, act.Add(c))
		clauses = append(clauses, c)
	}

	l := New()
	l.Tighten(10, 50)
	require.NoError(t, Sweep(a, act, l))

	for _, c := range clauses {
		w := a.Weight(c)
		maxSel := a.MaxSelectedLiteralWeight(c)
		wantDiscarded := w-maxSel >= 50
		isActive := act.Contains(c)
		if wantDiscarded {
			assert.False(t, isActive, "clause with weight %d should have been discarded", w)
		} else {
			assert.True(t, isActive, "clause with weight %d should have survived", w)
		}
	}
}

func TestSweepKeepsClausesBelowAgeLimit(t *testing.T) {
	a, p := setup(t)
	act := container.NewActive(a)

	c := weightedClause(a, p, 3, 1000)
	require.NoError(t, a.SetStore(c, kernel.StoreUnprocessed))
	require.NoError(t, a.SetStore(c, kernel.StorePassive))
	require.NoError(t, act.Add(c))

	l := New()
	l.Tighten(10, 1)
	require.NoError(t, Sweep(a, act, l))
	assert.True(t, act.Contains(c), "age below the limit is always kept regardless of weight")
}

func TestSweepVisitsEachActiveClauseOnce(t *testing.T) {
	a, p := setup(t)
	act := container.NewActive(a)

	// A clause with several literals is still a single entry in
	// active.All(); Sweep must still only decide it once.
	c := weightedClause(a, p, 20, 5)
	require.NoError(t, a.SetStore(c, kernel.StoreUnprocessed))
	require.NoError(t, a.SetStore(c, kernel.StorePassive))
	require.NoError(t, act.Add(c))

	l := New()
	l.Tighten(10, 1)
	require.NoError(t, Sweep(a, act, l))
	assert.False(t, act.Contains(c))
}
