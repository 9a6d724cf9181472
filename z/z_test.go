// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

package z

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymPacking(t *testing.T) {
	s := MakeSym(7, 3, PredicateSymbol)
	assert.Equal(t, uint32(7), s.Idx())
	assert.Equal(t, uint8(3), s.Arity())
	assert.True(t, s.IsPredicate())

	f := MakeSym(9, 0, FunctionSymbol)
	assert.Equal(t, uint32(9), f.Idx())
	assert.False(t, f.IsPredicate())
}

func TestSignatureInternIsIdempotent(t *testing.T) {
	sg := NewSignature()
	a := sg.Intern("f", 2, FunctionSymbol)
	b := sg.Intern("f", 2, FunctionSymbol)
	assert.Equal(t, a, b, "same name/arity/kind must intern to one Sym")

	c := sg.Intern("f", 1, FunctionSymbol)
	assert.NotEqual(t, a, c, "differing arity must not collide")
	assert.Equal(t, "f", sg.Name(a))
}

func TestVarString(t *testing.T) {
	assert.Equal(t, "X3", Var(3).String())
	assert.Equal(t, "X!", VarNull.String())
}
