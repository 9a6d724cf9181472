// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irifrance/saturn/kernel"
	"github.com/irifrance/saturn/z"
)

func setup(t *testing.T) (*kernel.Arena, z.Sym, z.Sym) {
	t.Helper()
	sig := z.NewSignature()
	a := kernel.NewArena(sig)
	f := sig.Intern("f", 1, z.FunctionSymbol)
	p := sig.Intern("p", 1, z.PredicateSymbol)
	return a, f, p
}

func activeUnitClause(a *kernel.Arena, lit kernel.LitID) kernel.ClauseID {
	c := a.NewClause([]kernel.LitID{lit}, kernel.Inference{})
	a.SetSelected(c, 1)
	must(a.SetStore(c, kernel.StoreUnprocessed))
	must(a.SetStore(c, kernel.StorePassive))
	must(a.SetStore(c, kernel.StoreActive))
	return c
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func TestGetUnificationsFindsCandidate(t *testing.T) {
	a, f, p := setup(t)
	x := a.MkVar(0)
	fx := a.MkApp(f, x)
	lit := a.MkLit(p, true, fx)
	c := activeUnitClause(a, lit)

	ix := New(a, SuperpositionFrom)
	ix.Insert(c)

	y := a.MkVar(1)
	fy := a.MkApp(f, y)
	results, err := ix.GetUnifications(fy, true).All()
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, c, results[0].Entry.Clause)
}

func TestRemoveDropsAllEntriesForClause(t *testing.T) {
	a, f, p := setup(t)
	x := a.MkVar(0)
	fx := a.MkApp(f, x)
	lit := a.MkLit(p, true, fx)
	c := activeUnitClause(a, lit)

	ix := New(a, SuperpositionFrom)
	ix.Insert(c)
	assert.Equal(t, 1, ix.Size())
	ix.Remove(c)
	assert.Equal(t, 0, ix.Size())

	results, err := ix.GetUnifications(fx, false).All()
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestCursorDetectsStaleness(t *testing.T) {
	a, f, p := setup(t)
	x := a.MkVar(0)
	fx := a.MkApp(f, x)
	lit := a.MkLit(p, true, fx)
	c := activeUnitClause(a, lit)

	ix := New(a, SuperpositionFrom)
	ix.Insert(c)

	cur := ix.GetUnifications(fx, false)
	ix.Remove(c) // mutate while cursor is live

	_, _, err := cur.Next()
	assert.ErrorIs(t, err, ErrStale)
}

func TestDemodulationIntoOnlyIndexesUnitClauses(t *testing.T) {
	a, f, p := setup(t)
	x := a.MkVar(0)
	fx := a.MkApp(f, x)
	eq := a.MkEq(fx, x, true)
	unit := a.NewClause([]kernel.LitID{eq}, kernel.Inference{})
	a.SetSelected(unit, 1)
	must(a.SetStore(unit, kernel.StoreUnprocessed))
	must(a.SetStore(unit, kernel.StorePassive))
	must(a.SetStore(unit, kernel.StoreActive))

	other := a.MkLit(p, true, x)
	nonUnit := a.NewClause([]kernel.LitID{eq, other}, kernel.Inference{})
	a.SetSelected(nonUnit, 2)
	must(a.SetStore(nonUnit, kernel.StoreUnprocessed))
	must(a.SetStore(nonUnit, kernel.StorePassive))
	must(a.SetStore(nonUnit, kernel.StoreActive))

	ix := New(a, DemodulationInto)
	ix.Insert(unit)
	ix.Insert(nonUnit)
	assert.Equal(t, 1, ix.Size(), "only the unit clause should contribute entries")
}

func TestOrientedSidesBothWhenUnordered(t *testing.T) {
	a, _, p := setup(t)
	x, y := a.MkVar(0), a.MkVar(1)
	_ = p
	eq := a.MkEq(x, y, true) // both sides weight 1: unordered
	sides := orientedSides(a, eq)
	assert.Len(t, sides, 2)
}
