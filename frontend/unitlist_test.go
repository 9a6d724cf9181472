// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irifrance/saturn/kernel"
	"github.com/irifrance/saturn/z"
)

func TestUnitListAppendPreservesOrder(t *testing.T) {
	sig := z.NewSignature()
	a := kernel.NewArena(sig)
	p := sig.Intern("p", 0, z.PredicateSymbol)
	lit := a.MkLit(p, true)
	c1 := a.NewClause([]kernel.LitID{lit}, kernel.Inference{})
	c2 := a.NewClause([]kernel.LitID{lit}, kernel.Inference{})

	var l UnitList
	l.Append(Unit{Clause: c1})
	l.Append(Unit{Clause: c2})

	require.Equal(t, 2, l.Len())
	assert.Equal(t, []kernel.ClauseID{c1, c2}, l.Clauses())
}

func TestUnitListClausesSkipsFormulaOnlyUnits(t *testing.T) {
	sig := z.NewSignature()
	a := kernel.NewArena(sig)
	p := sig.Intern("p", 0, z.PredicateSymbol)
	lit := a.MkLit(p, true)
	c1 := a.NewClause([]kernel.LitID{lit}, kernel.Inference{})

	var l UnitList
	l.Append(Unit{Clause: c1})
	l.Append(Unit{Formula: &Formula{Connective: ConnectiveAtom, Atom: lit}})

	assert.Equal(t, []kernel.ClauseID{c1}, l.Clauses())
	assert.Equal(t, 2, l.Len())
}

func TestUnitIsClause(t *testing.T) {
	assert.True(t, Unit{Clause: 1}.IsClause())
	assert.False(t, Unit{Formula: &Formula{}}.IsClause())
}
