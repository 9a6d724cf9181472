// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

// Package frontend defines the boundary types a parsing collaborator
// hands the saturation core: a stream of already clausified units, one
// per input formula or clause. Parsing TPTP/SMT-LIB/LISP syntax into
// these types is out of scope (spec Non-goals) — frontend supplies only
// the shapes, grounded on the same "collaborator hands the core
// well-formed data" boundary as gini's dimacs.Adder/Assumer visitor
// interface (_examples/go-air-gini/dimacs/icnf_test.go).
package frontend

import "github.com/irifrance/saturn/kernel"

// Connective tags the top-level shape of a Formula that has not yet
// been clausified, when a collaborator wants to hand the core a
// pre-CNF formula for its own clausifier to consume later. Neither
// this package nor the core interprets a Formula's structure; it is an
// opaque record until something downstream clausifies it.
type Connective int

const (
	ConnectiveUnknown Connective = iota
	ConnectiveAnd
	ConnectiveOr
	ConnectiveNot
	ConnectiveImplies
	ConnectiveIff
	ConnectiveForall
	ConnectiveExists
	ConnectiveAtom
)

// Formula is an uninterpreted node of a not-yet-clausified input
// formula: a top-level connective tag plus opaque subformulas and, for
// an atom, the literal it names once interned into an Arena. Nothing in
// this repository walks Sub; it exists so a collaborator's clausifier
// has somewhere to put its output before the core ever sees it.
type Formula struct {
	Connective Connective
	Atom       kernel.LitID
	Sub        []*Formula
}

// Unit is one input item: either an already clausified Clause, or a
// Formula still awaiting clausification. Exactly one of the two is set,
// mirroring spec §6's "Input to the core" framing. Clause is a
// kernel.ClauseID handle rather than a struct pointer — kernel.Clause
// is not an exported type; clauses live only as arena-interned records
// addressed by handle, per Design Notes §9's "no Go pointers into the
// arena" rule, so Unit follows that convention rather than the pointer
// shape spec.md's prose describes.
type Unit struct {
	Clause  kernel.ClauseID
	Formula *Formula
}

// IsClause reports whether u already carries a clausified Clause
// rather than a Formula awaiting clausification.
func (u Unit) IsClause() bool { return u.Formula == nil }

// UnitList is a singly linked list of Units, matching spec §6's
// "singly linked list of input units" shape — a slice would work just
// as well internally, but a collaborator streaming units one at a time
// (e.g. while still parsing) can append to a UnitList node by node
// without holding the whole input in memory at once.
type UnitList struct {
	Head *UnitNode
}

// UnitNode is one link of a UnitList.
type UnitNode struct {
	Unit Unit
	Next *UnitNode
}

// Append adds unit to the end of l, returning the new tail node.
func (l *UnitList) Append(unit Unit) *UnitNode {
	node := &UnitNode{Unit: unit}
	if l.Head == nil {
		l.Head = node
		return node
	}
	cur := l.Head
	for cur.Next != nil {
		cur = cur.Next
	}
	cur.Next = node
	return node
}

// Clauses collects the ClauseID of every Unit in l that is already
// clausified, in list order, ignoring any Formula-only units (those
// belong to a clausifier this repository does not implement).
func (l *UnitList) Clauses() []kernel.ClauseID {
	var out []kernel.ClauseID
	for cur := l.Head; cur != nil; cur = cur.Next {
		if cur.Unit.IsClause() {
			out = append(out, cur.Unit.Clause)
		}
	}
	return out
}

// Len returns the number of units in l.
func (l *UnitList) Len() int {
	n := 0
	for cur := l.Head; cur != nil; cur = cur.Next {
		n++
	}
	return n
}
